package main

import (
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/talent-search/internal/mcp/tools"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List candidates the server has stored",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sync, _ := cmd.Flags().GetBool("sync")

		log := newLogger()
		defer func() { _ = log.Sync() }()

		ctx := cmd.Context()
		session, err := connect(ctx, log)
		if err != nil {
			return err
		}
		defer session.Close()

		res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "candidate_list",
			Arguments: tools.CandidateListParams{Sync: sync},
		})
		if err != nil {
			return fmt.Errorf("candidate_list: %w", err)
		}

		var out tools.CandidateSearchResult
		if err := decodeResult("candidate_list", res, &out); err != nil {
			return err
		}
		printCandidates(cmd.OutOrStdout(), toCandidates(out.Candidates))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a candidate profile with screening questions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, _ := cmd.Flags().GetBool("draft")

		log := newLogger()
		defer func() { _ = log.Sync() }()

		ctx := cmd.Context()
		session, err := connect(ctx, log)
		if err != nil {
			return err
		}
		defer session.Close()

		res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "candidate_detail",
			Arguments: tools.CandidateDetailParams{ID: args[0], Draft: draft},
		})
		if err != nil {
			return fmt.Errorf("candidate_detail: %w", err)
		}

		var out tools.CandidateDetailResult
		if err := decodeResult("candidate_detail", res, &out); err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		c := out.Candidate
		fmt.Fprintf(w, "%s (%s)\n", c.Name, c.ID)
		fmt.Fprintf(w, "Location:   %s\n", out.Location)
		fmt.Fprintf(w, "Experience: %s\n", c.Experience)
		fmt.Fprintf(w, "Skills:     %s\n", strings.Join(c.Skills, ", "))
		if c.Email != "" {
			fmt.Fprintf(w, "Email:      %s\n", c.Email)
		}
		if len(out.Questions) > 0 {
			fmt.Fprintln(w, "\nScreening questions:")
			for i, q := range out.Questions {
				fmt.Fprintf(w, "  %d. %s\n", i+1, q)
			}
		}
		if out.Outreach != "" {
			fmt.Fprintf(w, "\nOutreach draft:\n%s\n", out.Outreach)
		}
		return nil
	},
}

func init() {
	candidatesCmd.Flags().Bool("sync", false, "pull the full list from the search backend first")
	showCmd.Flags().Bool("draft", false, "include an outreach email draft")
	candidatesCmd.AddCommand(showCmd)
	rootCmd.AddCommand(candidatesCmd)
}
