package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ZaguanLabs/lexbridge"
)

var (
	highColor   = color.New(color.FgGreen, color.Bold)
	mediumColor = color.New(color.FgYellow)
	lowColor    = color.New(color.FgRed)
	dimColor    = color.New(color.Faint)
)

func bucketColor(b lexbridge.ConfidenceBucket) *color.Color {
	switch b {
	case lexbridge.BucketHigh:
		return highColor
	case lexbridge.BucketMedium:
		return mediumColor
	default:
		return lowColor
	}
}

// printResult writes "translation  (method, confidence)" with the
// translation colored by confidence bucket.
func printResult(w io.Writer, r *lexbridge.ResolutionResult) {
	fmt.Fprintf(w, "%s  %s\n",
		bucketColor(r.Bucket()).Sprint(r.TranslatedText),
		dimColor.Sprintf("(%s, %.2f, %s → %s)", r.Method, r.Confidence, r.SourceLanguage, r.TargetLanguage),
	)
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
