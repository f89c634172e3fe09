package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/wordgroup/config"
	"github.com/spektr-org/wordgroup/datamuse"
	"github.com/spektr-org/wordgroup/grouping"
	"github.com/spektr-org/wordgroup/logging"
	"github.com/spektr-org/wordgroup/lookup"
	"github.com/spektr-org/wordgroup/render"
)

// app is the state shared by every command, built in PersistentPreRunE.
type app struct {
	// ── Flags ─────────────────────────────────────────────────────────────
	configPath string
	format     string
	order      string
	verbose    bool
	noColor    bool

	// ── Built from config + flags ─────────────────────────────────────────
	cfg      *config.Config
	logger   *zap.Logger
	renderer *render.Renderer
	client   *datamuse.Client
	service  *lookup.Service
	keyOrder grouping.Order
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "wordgroup",
		Short: "wordgroup - rhymes, similar words and record grouping",
		Long: `wordgroup looks words up in the Datamuse API and groups the results.

Rhymes are grouped by syllable count, similar-meaning words are listed in
ranked order, and any JSON or CSV records can be grouped by a field.

Run without arguments to start the interactive shell.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultPath(), "config file")
	flags.StringVarP(&a.format, "format", "f", "", "output format: text, json, pretty, csv (default from config)")
	flags.StringVar(&a.order, "order", "", "group key order: natural, lexical (default from config)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.rhymesCmd(),
		a.synonymsCmd(),
		a.lookupCmd(),
		a.saveCmd(),
		a.savedCmd(),
		a.groupCmd(),
		a.shellCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.format != "" {
		cfg.Output.Format = a.format
	}
	if a.order != "" {
		cfg.Grouping.Order = a.order
	}
	if a.noColor {
		cfg.Output.Color = false
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.Logging.Level, a.verbose)
	if err != nil {
		return err
	}

	a.renderer, err = render.New(cfg.Output.Format, cfg.Output.Color && !color.NoColor)
	if err != nil {
		return err
	}

	a.keyOrder, err = cfg.Order()
	if err != nil {
		return fmt.Errorf("invalid --order: %w", err)
	}

	clientCfg, err := cfg.DatamuseClientConfig()
	if err != nil {
		return err
	}
	a.client = datamuse.New(clientCfg, a.logger)
	a.service = lookup.New(a.client,
		lookup.WithLogger(a.logger),
		lookup.WithOrder(a.keyOrder),
	)

	a.logger.Debug("configured",
		zap.String("config", a.configPath),
		zap.String("endpoint", clientCfg.Endpoint),
		zap.String("format", cfg.Output.Format),
		zap.Stringer("order", a.keyOrder))
	return nil
}
