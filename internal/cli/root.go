// Package cli implements the gravity-note CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gravity-note/gravity-note/internal/auth"
	"github.com/gravity-note/gravity-note/internal/config"
	"github.com/gravity-note/gravity-note/internal/store"
)

var (
	dbPath     string
	configPath string
	userFlag   string
	formatFlag string
	debugFlag  bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "gravity-note",
	Short: "A stream of notes, searchable and grouped by time",
	Long:  "Capture notes into a single stream, then search or browse them grouped by when they were last touched. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $GRAVITY_NOTE_DB, db_path from config, or ~/.gravity-note/notes.db)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $GRAVITY_NOTE_CONFIG or ~/.gravity-note/config.toml)")
	RootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "User id notes are scoped to (default: $GRAVITY_NOTE_USER, user_id from config, or $USER)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log debug output to stderr")
}

// loadConfig resolves the config file and applies flag overrides on top of
// the file and environment.
func loadConfig() *config.Config {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		exitErr("config", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if userFlag != "" {
		cfg.UserID = userFlag
	}
	if debugFlag {
		cfg.Log.Level = "debug"
	}
	return cfg
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	p, err := config.DefaultPath()
	if err != nil {
		exitErr("config", err)
	}
	return p
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func openStore(cfg *config.Config, logger zerolog.Logger) (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.DBPath, store.WithLogger(logger.With().Str("component", "store").Logger()))
}

// userContext attaches the configured user to the command context.
func userContext(cmd *cobra.Command, cfg *config.Config) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return auth.WithUser(ctx, cfg.UserID)
}

func textFormat() bool {
	return formatFlag == "text"
}

func printJSON(v interface{}) {
	writeJSON(os.Stdout, v)
}

func writeJSON(w io.Writer, v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		exitErr("encode json", err)
	}
	fmt.Fprintln(w, string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
