package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gravity-note/gravity-note/internal/config"
)

var errConfigExists = errors.New("config file already exists (use --force to overwrite)")

func init() {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		Long:  "Write the resolved settings (defaults, environment and flags such as --db and --user) to the config file.",
		Args:  cobra.NoArgs,
		Run:   runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		Run:   runConfigShow,
	}

	cmd.AddCommand(initCmd, showCmd)
	RootCmd.AddCommand(cmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	force, _ := cmd.Flags().GetBool("force")
	path := resolveConfigPath()
	if err := writeConfig(path, loadConfig(), force); err != nil {
		exitErr("config init", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"path":%q}`+"\n", path)
}

// writeConfig saves cfg to path, refusing to replace an existing file
// unless force is set.
func writeConfig(path string, cfg *config.Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", errConfigExists, path)
		}
	}
	return cfg.Save(path)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	writeJSON(cmd.OutOrStdout(), loadConfig())
}
