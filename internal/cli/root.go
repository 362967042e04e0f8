// Package cli wires configuration, logging and the terminal UI behind the
// duview command.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lumipallolabs/duview/internal/config"
	"github.com/lumipallolabs/duview/internal/fsys"
	"github.com/lumipallolabs/duview/internal/logging"
	"github.com/lumipallolabs/duview/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// RunFunc starts the browser on an absolute directory path
type RunFunc func(ctx context.Context, cfg *config.Config, fs fsys.FS, path string) error

// Execute runs the duview command with the process arguments
func Execute(ctx context.Context) error {
	return NewRootCmd(ui.Run).ExecuteContext(ctx)
}

// NewRootCmd builds the duview command. run is called once the
// configuration is loaded and the path resolved.
func NewRootCmd(run RunFunc) *cobra.Command {
	v := viper.New()
	var configPath string

	cmd := &cobra.Command{
		Use:   "duview [path]",
		Short: "Browse disk usage of a directory tree and delete what you don't need",
		Long: `duview walks a directory tree, shows the size of every entry and lets you
move through it and delete files or whole directories from the terminal.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyNegations(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}

			closer, err := logging.Init(cfg.Debug, cfg.LogFile)
			if err != nil {
				// Reported before the UI takes over the terminal
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, continuing without debug log\n", err)
			}
			defer closer.Close()

			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			root, err := resolve(path)
			if err != nil {
				return err
			}
			logging.Debug.Info().Str("path", root).Int("max_depth", cfg.MaxDepth).Msg("starting")

			return run(cmd.Context(), cfg, fsys.OS{}, root)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "config file (default $HOME/.config/duview/config.yaml)")
	flags.Int("max-depth", 0, "stop descending below this many levels (0 = unlimited)")
	flags.Bool("no-confirm", false, "delete without asking for confirmation")
	flags.Bool("no-color", false, "disable colors")
	flags.Bool("debug", false, "write a debug log")

	// Errors only occur for unknown flag names
	_ = v.BindPFlag("max_depth", flags.Lookup("max-depth"))
	_ = v.BindPFlag("debug", flags.Lookup("debug"))

	return cmd
}

// applyNegations maps the --no-* flags onto their config keys when set
func applyNegations(v *viper.Viper, flags *pflag.FlagSet) error {
	negations := map[string]string{
		"no-confirm": "confirm_delete",
		"no-color":   "color",
	}
	for flag, key := range negations {
		if !flags.Changed(flag) {
			continue
		}
		off, err := flags.GetBool(flag)
		if err != nil {
			return err
		}
		v.Set(key, !off)
	}
	return nil
}

// resolve makes path absolute and checks that it names a directory
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}
