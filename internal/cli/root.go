package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/blog-engagement-api/internal/config"
	"github.com/blog-engagement-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	configDir string
	cfg       *config.Config
}

// load reads configuration and builds a logger writing to w
func (a *app) load(w io.Writer) (zerolog.Logger, error) {
	cfg, err := config.LoadFrom(a.configDir)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg
	return logger.NewWithWriter(w, cfg.Log.Level, cfg.Log.Format, cfg.Env), nil
}

// NewRootCommand builds the blogapi command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "blogapi",
		Short: "Likes and comments API for blog articles",
		Long: `blogapi serves per-article likes and comments over HTTP and
offers maintenance commands for the backing store.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "./configs", "directory holding config.yaml")

	serve := newServeCommand(a)
	root.RunE = serve.RunE

	root.AddCommand(
		serve,
		newMigrateCommand(a),
		newLikesCommand(a),
		newCommentsCommand(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
