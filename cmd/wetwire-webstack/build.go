package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/internal/config"
	"github.com/lex00/wetwire-webstack-go/internal/stack"
	"github.com/lex00/wetwire-webstack-go/internal/template"
)

func newBuildCmd(root *rootOptions) *cobra.Command {
	var (
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Generate the CloudFormation template",
		Long: `Build reads a stack description (default: spec-prod.json) and writes the
CloudFormation template. Nothing is written unless the whole template builds.

Examples:
    wetwire-webstack build
    wetwire-webstack build stack.yaml -o template.json
    wetwire-webstack build --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger(cmd.ErrOrStderr())
			return runBuild(cmd.OutOrStdout(), stackFile(args), outputFormat, outputFile, logger)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runBuild(w io.Writer, path, format, outputFile string, logger *slog.Logger) error {
	tmpl, err := buildTemplate(path, logger)
	if err != nil {
		return err
	}

	data, err := encode(tmpl, format)
	if err != nil {
		return err
	}

	if outputFile == "" {
		_, err = w.Write(data)
		return err
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputFile, err)
	}
	logger.Info("template written", "path", outputFile, "resources", len(tmpl.Resources))
	return nil
}

// stackFile returns the stack description named on the command line, or the
// default one.
func stackFile(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.DefaultFile
}

// assemble loads the stack description at path and runs every construction
// step over it.
func assemble(path string, logger *slog.Logger) (*template.Builder, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	b, err := stack.Assemble(cfg, stack.Options{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", path, err)
	}
	return b, nil
}

func buildTemplate(path string, logger *slog.Logger) (*wetwire.Template, error) {
	b, err := assemble(path, logger)
	if err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func encode(tmpl *wetwire.Template, format string) ([]byte, error) {
	switch format {
	case "json":
		return template.ToJSON(tmpl)
	case "yaml":
		return template.ToYAML(tmpl)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
