package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/talent-search/internal/config"
	"github.com/honeycarbs/talent-search/internal/domain/search/providers/backend"
	"github.com/honeycarbs/talent-search/internal/domain/upload"
	"github.com/honeycarbs/talent-search/pkg/talentapi"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <resume.pdf|resume.docx>...",
	Short: "Upload resumes straight to the parsing backend",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		defer func() { _ = log.Sync() }()

		for _, name := range args {
			if err := upload.Validate(filepath.Base(name), ""); err != nil {
				return err
			}
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		client, err := talentapi.NewClient(talentapi.Config{
			BaseURL: cfg.TalentAPI.BaseURL,
			Timeout: cfg.TalentAPI.Timeout,
		})
		if err != nil {
			return err
		}
		provider, err := backend.NewProvider(client)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, name := range args {
			f, err := os.Open(name)
			if err != nil {
				return fmt.Errorf("open %s: %w", name, err)
			}
			c, err := provider.Upload(cmd.Context(), filepath.Base(name), f)
			_ = f.Close()
			if err != nil {
				return fmt.Errorf("upload %s: %w", name, err)
			}
			log.Debug("resume parsed", "file", name, "id", c.ID)
			fmt.Fprintf(w, "%s: %s (%s) %s\n", filepath.Base(name), c.Name, c.ID, c.UploadStatus)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
