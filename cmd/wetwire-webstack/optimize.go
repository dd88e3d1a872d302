package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/internal/optimizer"
)

// validCategories lists all valid optimization categories.
var validCategories = map[string]bool{
	"all":         true,
	"security":    true,
	"cost":        true,
	"performance": true,
	"reliability": true,
}

// isValidCategory checks if a category is valid.
func isValidCategory(category string) bool {
	return validCategories[category]
}

// newOptimizeCmd creates the "optimize" subcommand for suggesting improvements.
func newOptimizeCmd(root *rootOptions) *cobra.Command {
	var (
		outputFormat string
		category     string
	)

	cmd := &cobra.Command{
		Use:   "optimize [file]",
		Short: "Suggest improvements to the generated template",
		Long: `Optimize builds the template and suggests improvements for security,
cost, performance and reliability. Suggestions never fail the command.

Categories:
    security     - Open SSH, clear text listeners, embedded passwords
    cost         - Previous generation instances, gp2 storage
    performance  - Small gp2 volumes with a low IOPS baseline
    reliability  - Deprecated launch configurations, end-of-life engines

Examples:
    wetwire-webstack optimize
    wetwire-webstack optimize --category security
    wetwire-webstack optimize stack.yaml -f json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isValidCategory(category) {
				return fmt.Errorf("invalid category: %s (valid: all, security, cost, performance, reliability)", category)
			}
			result, err := runOptimize(stackFile(args), category, root.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			return outputOptimizeResult(cmd.OutOrStdout(), result, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().StringVarP(&category, "category", "c", "all", "Category: all, security, cost, performance, or reliability")

	return cmd
}

func runOptimize(path, category string, logger *slog.Logger) (wetwire.OptimizeResult, error) {
	tmpl, err := buildTemplate(path, logger)
	if err != nil {
		return wetwire.OptimizeResult{}, err
	}

	optResult, err := optimizer.Optimize(tmpl, optimizer.Options{Category: category})
	if err != nil {
		return wetwire.OptimizeResult{}, fmt.Errorf("optimize failed: %w", err)
	}

	return wetwire.OptimizeResult{
		Suggestions: optResult.Suggestions,
		Summary:     optResult.Summary,
	}, nil
}

func outputOptimizeResult(w io.Writer, result wetwire.OptimizeResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		if len(result.Suggestions) == 0 {
			fmt.Fprintln(w, "No optimization suggestions.")
			return nil
		}

		fmt.Fprintf(w, "Found %d suggestions:\n\n", result.Summary.Total)

		byCat := map[string][]wetwire.OptimizeSuggestion{}
		for _, s := range result.Suggestions {
			byCat[s.Category] = append(byCat[s.Category], s)
		}

		for _, cat := range []string{"security", "cost", "performance", "reliability"} {
			suggestions := byCat[cat]
			if len(suggestions) == 0 {
				continue
			}

			fmt.Fprintf(w, "=== %s (%d) ===\n", capitalize(cat), len(suggestions))
			for _, s := range suggestions {
				fmt.Fprintf(w, "\n[%s] %s (%s)\n", s.Severity, s.Title, s.Rule)
				fmt.Fprintf(w, "  Resource: %s\n", s.Resource)
				fmt.Fprintf(w, "  %s\n", s.Description)
				fmt.Fprintf(w, "  Suggestion: %s\n", s.Suggestion)
			}
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "Summary: %d security, %d cost, %d performance, %d reliability\n",
			result.Summary.Security, result.Summary.Cost,
			result.Summary.Performance, result.Summary.Reliability)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
