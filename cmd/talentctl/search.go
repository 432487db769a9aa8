package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/domain/facet"
	"github.com/honeycarbs/talent-search/internal/mcp/tools"
)

const doneItem = "Done"

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search candidates by a natural language description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, _ := cmd.Flags().GetStringSlice("filter")
		interactive, _ := cmd.Flags().GetBool("interactive")

		log := newLogger()
		defer func() { _ = log.Sync() }()

		ctx := cmd.Context()
		session, err := connect(ctx, log)
		if err != nil {
			return err
		}
		defer session.Close()

		params := tools.CandidateSearchParams{Query: strings.Join(args, " ")}
		if !interactive {
			params.Filters = filters
		}
		res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "candidate_search",
			Arguments: params,
		})
		if err != nil {
			return fmt.Errorf("candidate_search: %w", err)
		}

		var out tools.CandidateSearchResult
		if err := decodeResult("candidate_search", res, &out); err != nil {
			return err
		}
		log.Debug("search finished", "state", out.State, "total", out.Total)

		w := cmd.OutOrStdout()
		if out.Notice != "" {
			fmt.Fprintln(w, out.Notice)
		}
		if out.Analysis != "" {
			fmt.Fprintln(w, out.Analysis)
		}

		results := toCandidates(out.Candidates)
		if !interactive {
			printCandidates(w, results)
			return nil
		}

		var active []string
		for _, f := range filters {
			active = facet.Toggle(active, f)
		}
		return browse(w, results, out.Chips, active)
	},
}

// browse shows the results and lets the user toggle chips until Done
func browse(w io.Writer, results []domain.Candidate, chips, active []string) error {
	for {
		printCandidates(w, facet.Apply(results, active))

		prompt := promptui.Select{
			Label: "Toggle a filter",
			Items: chipItems(chips, active),
			Size:  len(chips) + 1,
		}
		idx, _, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}
		if idx == len(chips) {
			return nil
		}
		active = facet.Toggle(active, chips[idx])
	}
}

// chipItems labels each chip with its state and appends the Done entry
func chipItems(chips, active []string) []string {
	items := make([]string, 0, len(chips)+1)
	for _, c := range chips {
		mark := "[ ]"
		if facet.Contains(active, c) {
			mark = "[x]"
		}
		items = append(items, mark+" "+c)
	}
	return append(items, doneItem)
}

func init() {
	searchCmd.Flags().StringSliceP("filter", "f", nil, "filter chips to apply (skill, location or \"5+ years\")")
	searchCmd.Flags().BoolP("interactive", "i", false, "toggle filter chips interactively")
	rootCmd.AddCommand(searchCmd)
}
