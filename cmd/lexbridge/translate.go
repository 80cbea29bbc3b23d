package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/lexbridge"
)

func newTranslateCommand(opts *options) *cobra.Command {
	var (
		from       string
		to         string
		offline    bool
		jsonOutput bool
		stdin      bool
	)

	cmd := &cobra.Command{
		Use:   "translate [TEXT...]",
		Short: "Resolve a phrase into another language",
		Long: `Resolve a phrase through the phrase tables, the result cache and, unless
--offline is given, the configured external provider.

With --stdin every input line is resolved as a separate phrase.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !stdin && len(args) == 0 {
				return fmt.Errorf("requires TEXT or --stdin")
			}

			a, err := newApp(cmd.Context(), opts.cfg, cmd.ErrOrStderr(), appOptions{offline: offline})
			if err != nil {
				return err
			}
			defer a.Close()

			if stdin {
				return translateLines(cmd, a, from, to, jsonOutput)
			}

			result, err := a.translator.Translate(cmd.Context(), lexbridge.Request{
				Text: strings.Join(args, " "),
				From: from,
				To:   to,
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), result)
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&from, "from", lexbridge.AutoDetect, "source language, or auto to detect")
	flags.StringVar(&to, "to", "", "target language")
	flags.BoolVar(&offline, "offline", false, "never call the external provider")
	flags.BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	flags.BoolVar(&stdin, "stdin", false, "read one phrase per line from stdin")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

type batchLine struct {
	Text   string                      `json:"text"`
	Result *lexbridge.ResolutionResult `json:"result,omitempty"`
	Error  string                      `json:"error,omitempty"`
}

func translateLines(cmd *cobra.Command, a *app, from, to string, jsonOutput bool) error {
	var reqs []lexbridge.Request
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		reqs = append(reqs, lexbridge.Request{Text: line, From: from, To: to})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	results, stats := a.translator.TranslateBatch(cmd.Context(), reqs)

	out := cmd.OutOrStdout()
	if jsonOutput {
		lines := make([]batchLine, len(results))
		for i, r := range results {
			lines[i] = batchLine{Text: r.Request.Text, Result: r.Result}
			if r.Err != nil {
				lines[i].Error = r.Err.Error()
			}
		}
		return printJSON(out, lines)
	}

	for _, r := range results {
		fmt.Fprintf(out, "%s\t", r.Request.Text)
		if r.Err != nil {
			fmt.Fprintln(out, lowColor.Sprint(r.Err.Error()))
			continue
		}
		printResult(out, r.Result)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), dimColor.Sprintf("%d phrases, %d unique, %d unresolved, %d invalid",
		stats.Total, stats.Unique, stats.Unresolved, stats.Invalid))
	return nil
}

func newDetectCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "detect TEXT...",
		Short: "Guess the language of a phrase",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := lexbridge.DetectLanguage(strings.Join(args, " "))
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), d)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
				lexbridge.GetLanguageName(d.Language),
				dimColor.Sprintf("(%s, %.2f)", d.Language, d.Confidence))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the detection as JSON")

	return cmd
}
