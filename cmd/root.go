package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/agentic-research/nest/edict"
	"github.com/agentic-research/nest/plugin"
	"github.com/agentic-research/nest/plugin/codecs"
	"github.com/agentic-research/nest/plugin/parsers"
	"github.com/agentic-research/nest/tree"
)

var (
	configPath  string
	verbose     bool
	sepFlag     string
	ignoreFlags []string
	parsePolicy string
)

// cliConfig mirrors the optional YAML config file. Flags given on the
// command line win over file values.
type cliConfig struct {
	Sep         string   `yaml:"sep"`
	Ignore      []string `yaml:"ignore"`
	ParseErrors string   `yaml:"parse_errors"`
}

var rootCmd = &cobra.Command{
	Use:   "nest",
	Short: "Explore directory trees of data files as one nested structure",
	Long: `nest treats a directory of heterogeneous data files (JSON, YAML, HCL,
CSV, key-pair text, SQLite) as a single lazily-loaded nested mapping and
provides flatten/merge/diff/filter/unit-conversion operations over it.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&sepFlag, "sep", edict.DefaultSep, "key-path separator")
	rootCmd.PersistentFlags().StringSliceVar(&ignoreFlags, "ignore", nil, "regexes of names to hide")
	rootCmd.PersistentFlags().StringVar(&parsePolicy, "parse-errors", "raise", "raise|ignore|collect")
}

func setup(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if configPath == "" {
		return nil
	}
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var cfg cliConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if cfg.Sep != "" && !cmd.Flags().Changed("sep") {
		sepFlag = cfg.Sep
	}
	if len(cfg.Ignore) > 0 && !cmd.Flags().Changed("ignore") {
		ignoreFlags = cfg.Ignore
	}
	if cfg.ParseErrors != "" && !cmd.Flags().Changed("parse-errors") {
		parsePolicy = cfg.ParseErrors
	}
	return nil
}

// newRegistry builds a registry with every builtin parser and codec.
func newRegistry() (*plugin.Registry, error) {
	r := plugin.NewRegistry()
	if err := parsers.RegisterAll(r); err != nil {
		return nil, err
	}
	if err := codecs.RegisterAll(r); err != nil {
		return nil, err
	}
	return r, nil
}

func treeOptions(r *plugin.Registry) ([]tree.Option, error) {
	opts := []tree.Option{tree.WithRegistry(r), tree.SkipUnknown()}
	for _, pat := range ignoreFlags {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("bad ignore pattern %q: %w", pat, err)
		}
		opts = append(opts, tree.WithIgnore(re))
	}
	switch parsePolicy {
	case "raise":
		opts = append(opts, tree.WithParseErrors(tree.ParseErrorsRaise))
	case "ignore":
		opts = append(opts, tree.WithParseErrors(tree.ParseErrorsIgnore))
	case "collect":
		opts = append(opts, tree.WithParseErrors(tree.ParseErrorsCollect))
	default:
		return nil, fmt.Errorf("unknown parse-errors policy %q", parsePolicy)
	}
	return opts, nil
}

// loadData reads a directory (as a lazy tree, fully materialized) or a
// single data file into plain nested data.
func loadData(path string) (any, error) {
	r, err := newRegistry()
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		opts, err := treeOptions(r)
		if err != nil {
			return nil, err
		}
		t, err := tree.New(tree.NewOSPath(path), opts...)
		if err != nil {
			return nil, err
		}
		return t.ToDict(false)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return r.ParseFile(info.Name(), f, nil)
}

// lookup resolves trailing KEY arguments lazily: on a directory only
// the files along the key-path are parsed. The result may be a *tree.Tree
// when the descent stops on a directory.
func lookup(path string, keys []string) (any, error) {
	r, err := newRegistry()
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		opts, err := treeOptions(r)
		if err != nil {
			return nil, err
		}
		t, err := tree.New(tree.NewOSPath(path), opts...)
		if err != nil {
			return nil, err
		}
		return t.Get(keys...)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := r.ParseFile(info.Name(), f, nil)
	if err != nil {
		return nil, err
	}
	return descend(d, keys)
}

// descend applies trailing KEY arguments to loaded data.
func descend(d any, keys []string) (any, error) {
	if len(keys) == 0 {
		return d, nil
	}
	return edict.Indexes(d, keys, edict.ListOfDicts())
}

func splitKeyPath(arg string) []string {
	return strings.Split(arg, sepFlag)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
