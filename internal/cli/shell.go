package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravity-note/gravity-note/internal/model"
	"github.com/gravity-note/gravity-note/internal/search"
	"github.com/gravity-note/gravity-note/internal/searchstate"
)

func init() {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive search prompt",
		Long:  "Read queries line by line and print results. An empty line browses; :q or EOF exits.",
		Args:  cobra.NoArgs,
		Run:   runShell,
	}
	addResultFlags(cmd)
	RootCmd.AddCommand(cmd)
}

func runShell(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	s, err := openStore(cfg, logger)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	full, _ := cmd.Flags().GetBool("full")
	sh := &shell{
		svc:  newSearchService(s, logger),
		opts: resultOptions(cmd, cfg),
		out:  cmd.OutOrStdout(),
		text: textFormat(),
		full: full,
	}
	if err := sh.run(userContext(cmd, cfg), os.Stdin); err != nil {
		exitErr("shell", err)
	}
}

type shell struct {
	svc     *search.Service
	opts    *model.UnifiedNotesOptions
	out     io.Writer
	text    bool
	full    bool
	tracker searchstate.Tracker
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, metaStyle.Render("search> "))
		if !sc.Scan() {
			fmt.Fprintln(sh.out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == ":q" || line == ":quit" {
			return nil
		}
		sh.query(ctx, line)
	}
}

func (sh *shell) query(ctx context.Context, q string) {
	sh.tracker.Run(ctx, q, func(ctx context.Context, q string) (*model.UnifiedNotesResponse, error) {
		return sh.svc.Search(ctx, q, sh.opts)
	})
	st := sh.tracker.Snapshot()
	switch st.Status {
	case searchstate.StatusError:
		fmt.Fprintf(sh.out, "error: %v\n", st.Err)
	case searchstate.StatusSuccess:
		if sh.text {
			renderResponse(sh.out, st.Response, sh.full)
		} else {
			writeJSON(sh.out, st.Response)
		}
	}
}
