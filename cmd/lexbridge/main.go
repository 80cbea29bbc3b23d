// Command lexbridge resolves phrases between languages from the command line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ZaguanLabs/lexbridge"
	"github.com/ZaguanLabs/lexbridge/internal/config"
	"github.com/ZaguanLabs/lexbridge/internal/logging"
	"github.com/ZaguanLabs/lexbridge/provider"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

// choice is a string flag restricted to a fixed set of values.
type choice struct {
	value   string
	allowed []string
	kind    string
}

func newChoice(def, kind string, allowed []string) *choice {
	return &choice{value: def, allowed: allowed, kind: kind}
}

func (c *choice) Set(val string) error {
	for _, a := range c.allowed {
		if val == a {
			c.value = val
			return nil
		}
	}
	return fmt.Errorf("invalid %s: %s (possible values are %v)", c.kind, val, c.allowed)
}

func (c *choice) String() string {
	return c.value
}

func (c *choice) Type() string {
	return c.kind
}

var _ pflag.Value = (*choice)(nil)

// options holds values shared by all subcommands.
type options struct {
	configFile string
	noColor    bool
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	logLevel := newChoice("warn", "level", logging.Levels)
	logFormat := newChoice("text", "format", []string{"text", "json"})
	backend := newChoice(config.BackendFile, "backend", config.Backends)
	providerName := newChoice(provider.NameNone, "provider", provider.Names)

	root := &cobra.Command{
		Use:           lexbridge.Name,
		Short:         lexbridge.Description,
		Version:       lexbridge.FullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}

			loader, err := config.NewLoader(opts.configFile)
			if err != nil {
				return fmt.Errorf("failed to create config loader: %w", err)
			}

			v := loader.Viper()
			flags := cmd.Root().PersistentFlags()
			bindings := map[string]string{
				"log.level":     "log-level",
				"log.format":    "log-format",
				"cache.backend": "cache-backend",
				"cache.path":    "cache-path",
				"provider.name": "provider",
			}
			for key, flag := range bindings {
				if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
					return fmt.Errorf("binding --%s: %w", flag, err)
				}
			}

			cfg, err := loader.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			opts.cfg = cfg
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: ./lexbridge.yaml or $HOME/.config/lexbridge/lexbridge.yaml)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.Var(logLevel, "log-level", fmt.Sprintf("log level. Possible values are %v", logging.Levels))
	flags.Var(logFormat, "log-format", "log format (text, json)")
	flags.Var(backend, "cache-backend", fmt.Sprintf("cache backend. Possible values are %v", config.Backends))
	flags.String("cache-path", "", "cache file for the file and sqlite backends")
	flags.Var(providerName, "provider", fmt.Sprintf("external provider. Possible values are %v", provider.Names))

	root.AddCommand(
		newTranslateCommand(opts),
		newDetectCommand(),
		newCacheCommand(opts),
		newPhrasebookCommand(opts),
		newLanguagesCommand(),
		newVersionCommand(),
	)

	return root
}
