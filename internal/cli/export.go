package cli

import (
	"github.com/spf13/cobra"

	"github.com/gravity-note/gravity-note/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export notes as JSON",
		Long:  "Export every note of the current user as a JSON array, most recently updated first.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	s, err := openStore(cfg, newLogger(cfg))
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	notes, err := s.ExportAll(cmd.Context(), cfg.UserID)
	if err != nil {
		exitErr("export", err)
	}
	if notes == nil {
		notes = []model.Note{}
	}
	printJSON(notes)
}
