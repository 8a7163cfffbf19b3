package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a note",
		Run:   runGet,
	}

	cmd.Flags().String("id", "", "Note id (required)")
	cmd.Flags().Bool("lineage", false, "Include rescue history: source notes and rescued copies")
	cmd.MarkFlagRequired("id")

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	lineage, _ := cmd.Flags().GetBool("lineage")

	cfg := loadConfig()
	s, err := openStore(cfg, newLogger(cfg))
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if lineage {
		l, err := s.Lineage(cmd.Context(), cfg.UserID, id)
		if err != nil {
			exitErr("lineage", err)
		}
		if textFormat() {
			renderLineage(cmd.OutOrStdout(), l)
			return
		}
		writeJSON(cmd.OutOrStdout(), l)
		return
	}

	n, err := s.Get(cmd.Context(), cfg.UserID, id)
	if err != nil {
		exitErr("get", err)
	}
	printNote(cmd.OutOrStdout(), n)
}
