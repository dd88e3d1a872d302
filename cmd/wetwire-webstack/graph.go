package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-webstack-go/internal/graph"
)

func newGraphCmd(root *rootOptions) *cobra.Command {
	var (
		outputFormat      string
		includeParameters bool
		clusterByType     bool
	)

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Generate DOT graph of resource dependencies",
		Long: `Generate a DOT or Mermaid format graph of the references between the
resources of the generated template.

The output can be rendered with Graphviz:
    wetwire-webstack graph | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    wetwire-webstack graph -f mermaid

Examples:
    wetwire-webstack graph
    wetwire-webstack graph -p              # include parameters
    wetwire-webstack graph -c              # cluster by service
    wetwire-webstack graph stack.yaml -f mermaid`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var graphFormat graph.Format
			switch outputFormat {
			case "dot":
				graphFormat = graph.FormatDOT
			case "mermaid":
				graphFormat = graph.FormatMermaid
			default:
				return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", outputFormat)
			}

			tmpl, err := buildTemplate(stackFile(args), root.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			gen := &graph.Generator{
				Format:            graphFormat,
				IncludeParameters: includeParameters,
				ClusterByType:     clusterByType,
			}
			return gen.Generate(tmpl, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&includeParameters, "include-parameters", "p", false, "Include parameter nodes in the graph")
	cmd.Flags().BoolVarP(&clusterByType, "cluster", "c", false, "Cluster resources by AWS service type")

	return cmd
}
