package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/dictshape/internal/config"
	"github.com/aretw0/dictshape/pkg/merge"
)

// WriteValidation prints validation results in the configured output format.
func WriteValidation(env *Env, results []ValidationResult) error {
	switch env.Config.Output {
	case config.OutputJSON:
		return writeJSON(env, results)
	case config.OutputMarkdown:
		return writeMarkdown(env, ValidationMarkdown(results))
	}

	for _, r := range results {
		status := "ok"
		if !r.Valid {
			status = r.Message
		}
		if _, err := fmt.Fprintf(env.Out, "%s: %s\n", r.File, env.Styler.Status(r.Valid, status)); err != nil {
			return err
		}
	}
	return nil
}

// WriteMerge prints merged counts, highest total first.
func WriteMerge(env *Env, counts *merge.Counts[float64]) error {
	switch env.Config.Output {
	case config.OutputJSON:
		return writeJSON(env, counts)
	case config.OutputMarkdown:
		return writeMarkdown(env, MergeMarkdown(counts))
	}

	tw := tabwriter.NewWriter(env.Out, 0, 0, 2, ' ', 0)
	for _, e := range counts.Entries() {
		fmt.Fprintf(tw, "%s\t%s\n", e.Key, formatTotal(e.Total))
	}
	return tw.Flush()
}

// WriteKinds prints the accepted template type names.
func WriteKinds(env *Env, names []string) error {
	switch env.Config.Output {
	case config.OutputJSON:
		return writeJSON(env, names)
	case config.OutputMarkdown:
		var sb strings.Builder
		sb.WriteString("# Kinds\n\n")
		for _, n := range names {
			fmt.Fprintf(&sb, "- `%s`\n", n)
		}
		return writeMarkdown(env, sb.String())
	}
	_, err := fmt.Fprintln(env.Out, strings.Join(names, "\n"))
	return err
}

// ValidationMarkdown builds a markdown table of validation results.
func ValidationMarkdown(results []ValidationResult) string {
	var sb strings.Builder
	sb.WriteString("# Validation\n\n")
	sb.WriteString("| Record | Result |\n|---|---|\n")
	for _, r := range results {
		result := "ok"
		if !r.Valid {
			result = r.Message
		}
		fmt.Fprintf(&sb, "| %s | %s |\n", escapeCell(r.File), escapeCell(result))
	}
	fmt.Fprintf(&sb, "\n%d of %d records valid.\n", len(results)-countFailed(results), len(results))
	return sb.String()
}

// MergeMarkdown builds a markdown table of merged counts.
func MergeMarkdown(counts *merge.Counts[float64]) string {
	var sb strings.Builder
	sb.WriteString("# Merge\n\n")
	sb.WriteString("| Key | Total |\n|---|---:|\n")
	for _, e := range counts.Entries() {
		fmt.Fprintf(&sb, "| %s | %s |\n", escapeCell(e.Key), formatTotal(e.Total))
	}
	return sb.String()
}

func writeJSON(env *Env, v any) error {
	enc := json.NewEncoder(env.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeMarkdown(env *Env, md string) error {
	if env.Render != nil {
		out, err := env.Render(md)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		md = out
	}
	_, err := fmt.Fprint(env.Out, md)
	return err
}

func formatTotal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
