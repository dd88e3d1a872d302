package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/internal/differ"
)

func newDiffCmd(root *rootOptions) *cobra.Command {
	var (
		outputFormat string
		ignoreOrder  bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "diff <template> [file]",
		Short: "Compare a template with a fresh build",
		Long: `Diff compares an existing template (JSON or YAML) with the template built
from a stack description (default: spec-prod.json). When the second argument
is itself a template, the two templates are compared directly.

Examples:
    wetwire-webstack diff deployed.json
    wetwire-webstack diff deployed.json stack.yaml --ignore-order
    wetwire-webstack diff old.json new.json -f json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger(cmd.ErrOrStderr())
			result, err := runDiff(args[0], stackFile(args[1:]), differ.Options{
				IgnoreOrder: ignoreOrder,
				Verbose:     verbose,
			}, logger)
			if err != nil {
				return err
			}
			return outputDiffResult(cmd.OutOrStdout(), result, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&ignoreOrder, "ignore-order", false, "Ignore the order of list elements")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show property-level diffs of modified resources")

	return cmd
}

func runDiff(templatePath, other string, opts differ.Options, logger *slog.Logger) (*wetwire.DiffResult, error) {
	before, err := differ.LoadTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	after, err := loadOrBuild(other, logger)
	if err != nil {
		return nil, err
	}

	result, err := differ.Compare(before, after, opts)
	if err != nil {
		return nil, err
	}

	return &wetwire.DiffResult{
		Success: true,
		Diff:    result.Diff,
		Summary: result.Summary,
	}, nil
}

// loadOrBuild reads path as a template when it has a Resources section and
// builds it as a stack description otherwise.
func loadOrBuild(path string, logger *slog.Logger) (*wetwire.Template, error) {
	if tmpl, err := differ.LoadTemplate(path); err == nil {
		logger.Debug("comparing against template file", "path", path)
		return tmpl, nil
	}
	return buildTemplate(path, logger)
}

func outputDiffResult(w io.Writer, result *wetwire.DiffResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		if result.Summary.Total == 0 {
			fmt.Fprintln(w, "No differences.")
			return nil
		}

		added := color.New(color.FgGreen)
		removed := color.New(color.FgRed)
		modified := color.New(color.FgYellow)

		for _, e := range result.Diff.Added {
			added.Fprintf(w, "+ %s (%s)\n", e.Resource, e.Type)
		}
		for _, e := range result.Diff.Removed {
			removed.Fprintf(w, "- %s (%s)\n", e.Resource, e.Type)
		}
		for _, e := range result.Diff.Modified {
			modified.Fprintf(w, "~ %s (%s)\n", e.Resource, e.Type)
			for _, change := range e.Changes {
				fmt.Fprintf(w, "    %s\n", change)
			}
			if e.Detail != "" {
				fmt.Fprintln(w, indent(e.Detail, "    "))
			}
		}

		fmt.Fprintf(w, "\nSummary: %d added, %d removed, %d modified\n",
			result.Summary.Added, result.Summary.Removed, result.Summary.Modified)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
