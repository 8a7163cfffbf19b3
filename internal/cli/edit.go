package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravity-note/gravity-note/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit [content]",
		Short: "Edit a note and move it to the top of the stream",
		Long:  "Edit a note's title and/or content. New content can be a positional arg or piped via stdin.",
		Run:   runEdit,
	}

	cmd.Flags().String("id", "", "Note id (required)")
	cmd.Flags().StringP("title", "t", "", "New title (pass an empty string to clear)")
	cmd.MarkFlagRequired("id")

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	p := store.UpdateParams{ID: id}

	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		p.Title = &title
	}
	content, err := contentArg(args)
	if err != nil {
		exitErr("read stdin", err)
	}
	if content != "" {
		p.Content = &content
	}
	if p.Title == nil && p.Content == nil {
		exitErr("edit", fmt.Errorf("nothing to change: pass --title or new content"))
	}

	cfg := loadConfig()
	s, err := openStore(cfg, newLogger(cfg))
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p.UserID = cfg.UserID
	n, err := s.Update(cmd.Context(), p)
	if err != nil {
		exitErr("edit", err)
	}
	printNote(cmd.OutOrStdout(), n)
}
