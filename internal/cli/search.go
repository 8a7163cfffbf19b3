package cli

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gravity-note/gravity-note/internal/config"
	"github.com/gravity-note/gravity-note/internal/model"
	"github.com/gravity-note/gravity-note/internal/search"
	"github.com/gravity-note/gravity-note/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search notes",
		Long:  "Search note titles and content. Falls back to looser matching when nothing matches exactly. An empty query browses.",
		Run:   runSearch,
	}
	addResultFlags(cmd)
	RootCmd.AddCommand(cmd)
}

func addResultFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("limit", "l", 0, "Max results (default: max_results from config)")
	cmd.Flags().Bool("no-group", false, "Return a single flat section instead of time groups")
	cmd.Flags().Bool("show-empty", false, "Include time groups with no notes")
	cmd.Flags().Bool("full", false, "Show whole notes instead of excerpts (text format)")
}

// resultOptions applies result flags over the configured defaults.
func resultOptions(cmd *cobra.Command, cfg *config.Config) *model.UnifiedNotesOptions {
	opts := cfg.Options()
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		opts.MaxResults = limit
	}
	if noGroup, _ := cmd.Flags().GetBool("no-group"); noGroup {
		opts.GroupByTime = false
	}
	if cmd.Flags().Changed("show-empty") {
		opts.ShowEmptyGroups, _ = cmd.Flags().GetBool("show-empty")
	}
	return &opts
}

func newSearchService(s store.Client, logger zerolog.Logger) *search.Service {
	return search.NewService(s, search.WithLogger(logger.With().Str("component", "search").Logger()))
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")

	cfg := loadConfig()
	logger := newLogger(cfg)
	s, err := openStore(cfg, logger)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	resp, err := newSearchService(s, logger).Search(userContext(cmd, cfg), query, resultOptions(cmd, cfg))
	if err != nil {
		exitErr("search", err)
	}
	printResponse(cmd, resp)
}

func printResponse(cmd *cobra.Command, resp *model.UnifiedNotesResponse) {
	if textFormat() {
		full, _ := cmd.Flags().GetBool("full")
		renderResponse(cmd.OutOrStdout(), resp, full)
		return
	}
	writeJSON(cmd.OutOrStdout(), resp)
}
