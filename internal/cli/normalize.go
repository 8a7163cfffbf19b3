package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Backfill normalized search columns",
		Long:  "Fill the normalized title/content columns for the current user's notes written before normalization existed. Safe to run repeatedly.",
		Run:   runNormalize,
	}

	RootCmd.AddCommand(cmd)
}

func runNormalize(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	s, err := openStore(cfg, newLogger(cfg))
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.Normalize(cmd.Context(), cfg.UserID)
	if err != nil {
		exitErr("normalize", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"normalized":%d}`+"\n", n)
}
