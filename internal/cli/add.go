package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravity-note/gravity-note/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Add a note to the top of the stream",
		Long:  "Add a note. Content can be a positional arg or piped via stdin.",
		Run:   runAdd,
	}

	cmd.Flags().StringP("title", "t", "", "Optional title")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")

	content, err := contentArg(args)
	if err != nil {
		exitErr("read stdin", err)
	}
	if strings.TrimSpace(content) == "" {
		exitErr("add", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	cfg := loadConfig()
	logger := newLogger(cfg)
	s, err := openStore(cfg, logger)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.Append(cmd.Context(), store.AppendParams{
		UserID:  cfg.UserID,
		Title:   title,
		Content: content,
	})
	if err != nil {
		exitErr("add", err)
	}
	printNote(cmd.OutOrStdout(), n)
}

// contentArg joins args, or reads piped stdin when there are none.
func contentArg(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	stat, err := os.Stdin.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
		return "", nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
