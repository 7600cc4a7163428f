package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/cellbase-go/cellbase"
	"github.com/inodb/cellbase-go/config"
)

const configFileName = ".cellbase.yaml"

// app carries the state shared by all commands of one invocation.
type app struct {
	v       *viper.Viper
	logger  *zap.Logger
	reg     *prometheus.Registry
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{
		v:      viper.New(),
		logger: zap.NewNop(),
		reg:    prometheus.NewRegistry(),
	}

	cmd := &cobra.Command{
		Use:   "cellbase",
		Short: "Query the CellBase bioinformatics web services",
		Long: `cellbase queries genes, transcripts, proteins, variants, genomic regions,
clinical data and service metadata from a CellBase REST server.

Connection settings are read from ~/.cellbase.yaml, CELLBASE_* environment
variables and the global flags, in increasing order of precedence.`,
		Example: `  cellbase gene info BRCA2,TP53
  cellbase query feature gene search -o biotype=protein_coding -o limit=5
  cellbase annotate input.vcf --format tab
  cellbase meta about`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer a.logger.Sync() //nolint:errcheck
			if stats, _ := cmd.Flags().GetBool("stats"); stats {
				return a.printStats(cmd.ErrOrStderr())
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("host", config.DefaultHost, "CellBase REST base URL")
	flags.String("version-api", config.DefaultVersion, "CellBase API version")
	flags.String("species", config.DefaultSpecies, "species to query")
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ~/"+configFileName+")")
	flags.BoolP("verbose", "v", false, "log requests to stderr")
	flags.Duration("timeout", 30*time.Second, "HTTP request timeout")
	flags.Bool("stats", false, "print request counts to stderr on exit")

	_ = a.v.BindPFlag("host", flags.Lookup("host"))
	_ = a.v.BindPFlag("version", flags.Lookup("version-api"))
	_ = a.v.BindPFlag("species", flags.Lookup("species"))
	_ = a.v.BindPFlag("timeout", flags.Lookup("timeout"))

	cmd.AddCommand(newQueryCmd(a))
	for _, r := range cellbase.Resources() {
		if r == cellbase.ResourceMeta {
			continue
		}
		cmd.AddCommand(newResourceCmd(a, r))
	}
	cmd.AddCommand(newAnnotateCmd(a))
	cmd.AddCommand(newMetaCmd(a))
	cmd.AddCommand(newExportsCmd())
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// createsConfig marks commands that may run before an explicit --config
// file exists.
const createsConfig = "createsConfig"

// init reads the config file and builds the logger. A missing
// ~/.cellbase.yaml is ignored; a missing --config file is an error.
func (a *app) init(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			a.v.SetConfigFile(filepath.Join(home, configFileName))
		}
	}
	a.v.SetConfigType("yaml")
	a.v.SetEnvPrefix(config.EnvPrefix)
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if !missing || (a.cfgFile != "" && cmd.Annotations[createsConfig] == "") {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.logger = logger
	return nil
}

// newLogger returns a development logger writing debug output when verbose
// is set, and a production logger reporting warnings otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}

// configFile returns the config file in use, which may not exist yet.
func (a *app) configFile() (string, error) {
	if f := a.v.ConfigFileUsed(); f != "" {
		return f, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, configFileName), nil
}

// configuration merges flags, environment and config file. Default options
// come from the file only; viper folds their keys to lower case.
func (a *app) configuration() (*config.Client, error) {
	cfg := config.Config{
		Host:    a.v.GetString("host"),
		Version: a.v.GetString("version"),
		Species: a.v.GetString("species"),
	}

	if path := a.v.ConfigFileUsed(); path != "" {
		if _, err := os.Stat(path); err == nil {
			opts, err := config.ReadOptions(path)
			if err != nil {
				return nil, err
			}
			cfg.Options = opts
		}
	}

	return config.New(&cfg)
}

// client builds a facade over the current configuration.
func (a *app) client() (*cellbase.Client, error) {
	cfg, err := a.configuration()
	if err != nil {
		return nil, err
	}
	hc := &http.Client{Timeout: a.v.GetDuration("timeout")}
	return cellbase.New(cfg,
		cellbase.WithHTTPClient(hc),
		cellbase.WithLogger(a.logger),
		cellbase.WithMetrics(a.reg),
		cellbase.WithUserAgent("cellbase-go/"+version),
	)
}

// printStats writes request counters gathered during the run.
func (a *app) printStats(w io.Writer) error {
	families, err := a.reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		if mf.GetName() != "cellbase_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				if lp.GetValue() != "" {
					labels = append(labels, lp.GetName()+"="+lp.GetValue())
				}
			}
			lines = append(lines, fmt.Sprintf("%s\t%.0f", strings.Join(labels, " "), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
