package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/lexbridge/cache"
)

func newCacheCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the result cache",
	}

	// withCache opens the configured cache for one subcommand and closes it
	// afterwards, flushing any change.
	withCache := func(fn func(cmd *cobra.Command, args []string, c *cache.ResultCache) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts.cfg, cmd.ErrOrStderr(), appOptions{offline: true, needCache: true})
			if err != nil {
				return err
			}
			defer a.Close()
			return fn(cmd, args, a.results)
		}
	}

	var statsJSON bool
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		Args:  cobra.NoArgs,
		RunE: withCache(func(cmd *cobra.Command, args []string, c *cache.ResultCache) error {
			s := c.Stats()
			if statsJSON {
				return printJSON(cmd.OutOrStdout(), s)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "entries\t%d / %d\n", s.TotalEntries, s.MaxSize)
			fmt.Fprintf(w, "accesses\t%d\n", s.TotalAccesses)
			fmt.Fprintf(w, "average confidence\t%.2f\n", s.AverageConfidence)
			fmt.Fprintf(w, "oldest\t%s\n", formatTime(s.OldestEntry))
			fmt.Fprintf(w, "newest\t%s\n", formatTime(s.NewestEntry))
			return w.Flush()
		}),
	}
	stats.Flags().BoolVar(&statsJSON, "json", false, "print statistics as JSON")

	var limit int
	popular := &cobra.Command{
		Use:   "popular",
		Short: "List the most accessed entries",
		Args:  cobra.NoArgs,
		RunE: withCache(func(cmd *cobra.Command, args []string, c *cache.ResultCache) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "HITS\tFROM\tTO\tTEXT\tTRANSLATION\tMETHOD")
			for _, e := range c.Popular(limit) {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					e.AccessCount, e.SourceLanguage, e.TargetLanguage, e.OriginalText, e.TranslatedText, e.Method)
			}
			return w.Flush()
		}),
	}
	popular.Flags().IntVarP(&limit, "limit", "n", cache.DefaultPopularLimit, "number of entries to show")

	export := &cobra.Command{
		Use:   "export FILE",
		Short: "Write the cache to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: withCache(func(cmd *cobra.Command, args []string, c *cache.ResultCache) error {
			if args[0] == "-" {
				return c.ExportTo(cmd.OutOrStdout())
			}
			if err := c.ExportToFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d entries to %s\n", c.Len(), args[0])
			return nil
		}),
	}

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the cache with the contents of a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: withCache(func(cmd *cobra.Command, args []string, c *cache.ResultCache) error {
			var err error
			if args[0] == "-" {
				err = c.ImportFrom(cmd.InOrStdin())
			} else {
				err = c.ImportFromFile(args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "imported %d entries\n", c.Len())
			return nil
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		Args:  cobra.NoArgs,
		RunE: withCache(func(cmd *cobra.Command, args []string, c *cache.ResultCache) error {
			n := c.Len()
			c.Clear()
			fmt.Fprintf(cmd.ErrOrStderr(), "removed %d entries\n", n)
			return nil
		}),
	}

	cmd.AddCommand(stats, popular, export, importCmd, clearCmd)
	return cmd
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
