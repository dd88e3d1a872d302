package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-webstack-go"
)

func newListCmd(root *rootOptions) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list [file]",
		Short: "List the resources of the generated template",
		Long: `List builds the template and prints every resource in the order it was
added, with its CloudFormation type.

Examples:
    wetwire-webstack list
    wetwire-webstack list stack.yaml --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger(cmd.ErrOrStderr())
			result, err := runList(stackFile(args), logger)
			if err != nil {
				return err
			}
			return outputListResult(cmd.OutOrStdout(), result, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runList(path string, logger *slog.Logger) (wetwire.ListResult, error) {
	b, err := assemble(path, logger)
	if err != nil {
		return wetwire.ListResult{}, err
	}

	tmpl := b.Build()
	names := b.Names()
	result := wetwire.ListResult{
		Resources: make([]wetwire.ListResource, 0, len(names)),
	}
	for _, name := range names {
		result.Resources = append(result.Resources, wetwire.ListResource{
			Name: name,
			Type: tmpl.Resources[name].Type,
		})
	}
	return result, nil
}

func outputListResult(w io.Writer, result wetwire.ListResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		fmt.Fprintf(w, "Resources (%d):\n\n", len(result.Resources))
		for _, res := range result.Resources {
			fmt.Fprintf(w, "  %s: %s\n", res.Name, res.Type)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
