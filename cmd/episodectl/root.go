package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pokerjest/animateRenamer/internal/config"
	"github.com/pokerjest/animateRenamer/internal/logger"
	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/pokerjest/animateRenamer/internal/parser"
	"github.com/pokerjest/animateRenamer/internal/renamer"
	"github.com/pokerjest/animateRenamer/internal/scanner"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	fs      afero.Fs
	cfg     *config.Config
	dir     string
	renamer *renamer.Renamer
	scanner *scanner.Scanner
}

// newRootCmd builds the command tree over fs; nil means the real filesystem.
func newRootCmd(fs afero.Fs) *cobra.Command {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	a := &app{fs: fs}

	root := &cobra.Command{
		Use:           "episodectl",
		Short:         "Batch rename video episodes in one directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringP("dir", "d", ".", "Directory to operate on")
	root.PersistentFlags().String("config", ".", "Directory containing config.yaml")
	root.PersistentFlags().String("log-level", "", "Override the configured log level")

	root.AddCommand(
		newTitlesCmd(a),
		newReplaceCmd(a),
		newRenumberCmd(a),
		newSeasonsCmd(a),
		newScanCmd(a),
		newSizesCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadConfig(lo.Must(cmd.Flags().GetString("config"))); err != nil {
		return err
	}
	a.cfg = config.AppConfig

	level := a.cfg.Log.Level
	if v := lo.Must(cmd.Flags().GetString("log-level")); v != "" {
		level = v
	}
	logger.Setup(level, a.cfg.Log.JSON, cmd.ErrOrStderr())
	parser.SetVideoExtensions(a.cfg.Library.VideoExtensions)

	dir, err := filepath.Abs(lo.Must(cmd.Flags().GetString("dir")))
	if err != nil {
		return err
	}
	info, err := a.fs.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", dir, err)
	}
	if !info.IsDir() {
		return model.InputError("%s is not a directory", dir)
	}
	a.dir = dir

	a.renamer = renamer.New(a.fs)
	a.renamer.MinEpisode = a.cfg.Renumber.MinEpisode
	a.scanner = scanner.New(a.fs, nil)
	if a.cfg.Scanner.SizeWorkers > 0 {
		a.scanner.SizeWorkers = a.cfg.Scanner.SizeWorkers
	}
	return nil
}

// interruptible returns a context cancelled by Ctrl-C.
func interruptible(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
}
