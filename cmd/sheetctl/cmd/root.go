// Package cmd implements the sheetctl command tree.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jacentio/sheetstore/internal/app"
	"github.com/jacentio/sheetstore/internal/config"
	"github.com/jacentio/sheetstore/internal/logger"
	"github.com/jacentio/sheetstore/store"
)

// Version information (set via ldflags at build time)
var (
	Version = "dev"
	Commit  = "unknown"
)

// cli holds the state shared by one invocation of the command tree.
type cli struct {
	cfgFile string
	output  string

	cfg     *config.Config
	log     *logger.Logger
	store   *store.Store
	backend *app.Backend
}

// Execute runs sheetctl with os.Args and exits non-zero on error.
func Execute() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	c := &cli{}
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	err := root.ExecuteContext(ctx)
	c.close()
	return err
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "sheetctl",
		Short:             "sheetctl manages a topic / subtopic / question study sheet",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.config/sheetstore/config.yaml)")
	root.PersistentFlags().StringVarP(&c.output, "output", "o", "text", "output format (text, json)")

	root.AddCommand(
		c.versionCmd(),
		c.initCmd(),
		c.loadCmd(),
		c.importCmd(),
		c.showCmd(),
		c.progressCmd(),
		c.topicCmd(),
		c.subTopicCmd(),
		c.questionCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}
	if c.output != "text" && c.output != "json" {
		return fmt.Errorf("invalid output format %q", c.output)
	}

	cfg, err := config.Load(c.cfgFile)
	if err != nil {
		return err
	}
	c.cfg = cfg

	c.log, err = logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	c.store, c.backend, err = app.NewStore(cmd.Context(), cfg, c.log.Logger)
	if err != nil {
		return fmt.Errorf("failed to open %s backend: %w", cfg.Storage.Backend, err)
	}
	c.log.Debug("command started", "command", cmd.CommandPath(), "backend", c.backend.Name)
	return nil
}

func (c *cli) close() {
	if c.backend != nil {
		if err := c.backend.Close(); err != nil && c.log != nil {
			c.log.Warn("failed to close backend", "error", err)
		}
	}
	if c.log != nil {
		c.log.Close()
	}
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sheetctl version %s (%s)\n", Version, Commit)
		},
	}
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseIndices parses the from and to position arguments.
func parseIndices(from, to string) (int, int, error) {
	f, err := strconv.Atoi(from)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid from index %q", from)
	}
	t, err := strconv.Atoi(to)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid to index %q", to)
	}
	return f, t, nil
}
