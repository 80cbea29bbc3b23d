package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/lexbridge"
	"github.com/ZaguanLabs/lexbridge/phrasebook"
)

func newPhrasebookCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phrasebook",
		Short: "Inspect the phrase tables",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "pairs",
		Short: "List the language pairs that have a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := loadTables(opts.cfg.Resolver.PhrasebookFile)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, p := range tables.Pairs() {
				t, _ := tables.Table(p.From, p.To)
				fmt.Fprintf(w, "%s\t→\t%s\t%d phrases\n", p.From, p.To, t.Len())
			}
			return w.Flush()
		},
	})

	var pair string
	audit := &cobra.Command{
		Use:   "audit",
		Short: "Report phrases that do not round-trip through the reverse table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := loadTables(opts.cfg.Resolver.PhrasebookFile)
			if err != nil {
				return err
			}

			results := tables.Audit()
			if pair != "" {
				want, err := parsePairFlag(pair)
				if err != nil {
					return err
				}
				var filtered []*phrasebook.AuditResult
				for _, r := range results {
					if r.Forward == want {
						filtered = append(filtered, r)
					}
				}
				if len(filtered) == 0 {
					return fmt.Errorf("no table pair %s with a reverse table", want)
				}
				results = filtered
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				s := r.Stats()
				header := fmt.Sprintf("%s → %s: %d consistent, %d missing, %d mismatched",
					r.Forward.From, r.Forward.To, s.Consistent, s.Missing, s.Mismatched)
				if r.HasAsymmetry() {
					fmt.Fprintln(out, mediumColor.Sprint(header))
				} else {
					fmt.Fprintln(out, highColor.Sprint(header))
				}
				for _, e := range r.Missing {
					fmt.Fprintf(out, "  missing   %q → %q\n", e.Phrase, e.Translation)
				}
				for _, m := range r.Mismatched {
					fmt.Fprintf(out, "  mismatch  %q → %q → %q\n", m.Phrase, m.Translation, m.RoundTrip)
				}
			}
			return nil
		},
	}
	audit.Flags().StringVar(&pair, "pair", "", "only audit FROM:TO, e.g. english:swahili")

	cmd.AddCommand(audit)
	return cmd
}

func parsePairFlag(s string) (phrasebook.Pair, error) {
	from, to, ok := strings.Cut(s, ":")
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	if !ok || from == "" || to == "" {
		return phrasebook.Pair{}, fmt.Errorf("invalid --pair %q, want FROM:TO", s)
	}
	return phrasebook.Pair{From: from, To: to}, nil
}

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "languages",
		Short:             "List known languages by region",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			regions, groups := lexbridge.LanguagesByRegion()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, region := range regions {
				fmt.Fprintf(w, "%s\n", highColor.Sprint(region))
				for _, l := range groups[region] {
					fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", l.Code, l.Name, l.NativeName, l.ISO, lexbridge.GetDirection(l.Code))
				}
			}
			return w.Flush()
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", lexbridge.Name, lexbridge.FullVersion())
			if lexbridge.GitCommit != "unknown" && lexbridge.GitCommit != "" {
				fmt.Fprintf(out, "  commit:  %s\n", lexbridge.GitCommit)
			}
			if lexbridge.BuildDate != "unknown" && lexbridge.BuildDate != "" {
				fmt.Fprintf(out, "  built:   %s\n", lexbridge.BuildDate)
			}
			fmt.Fprintf(out, "  source:  %s\n", lexbridge.Repository)
			return nil
		},
	}
}
