package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rescue",
		Short: "Bring an older note back to the top of the stream",
		Long:  "Copy a note to the top of the stream. The copy is marked as rescued and points back at the original, which is left in place.",
		Run:   runRescue,
	}

	cmd.Flags().String("id", "", "Note id (required)")
	cmd.MarkFlagRequired("id")

	RootCmd.AddCommand(cmd)
}

func runRescue(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")

	cfg := loadConfig()
	s, err := openStore(cfg, newLogger(cfg))
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.Rescue(cmd.Context(), cfg.UserID, id)
	if err != nil {
		exitErr("rescue", err)
	}
	printNote(cmd.OutOrStdout(), n)
}
