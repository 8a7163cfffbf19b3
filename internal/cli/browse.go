package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List the most recent notes grouped by time",
		Args:  cobra.NoArgs,
		Run:   runBrowse,
	}
	addResultFlags(cmd)
	RootCmd.AddCommand(cmd)
}

func runBrowse(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	s, err := openStore(cfg, logger)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	resp, err := newSearchService(s, logger).Browse(userContext(cmd, cfg), resultOptions(cmd, cfg))
	if err != nil {
		exitErr("browse", err)
	}
	printResponse(cmd, resp)
}
