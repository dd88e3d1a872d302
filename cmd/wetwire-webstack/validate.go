package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/internal/config"
	"github.com/lex00/wetwire-webstack-go/internal/stack"
	"github.com/lex00/wetwire-webstack-go/internal/validation"
)

var errValidationFailed = errors.New("validation failed")

// newValidateCmd creates the "validate" subcommand.
func newValidateCmd(root *rootOptions) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate the stack description and the generated template",
		Long: `Validate loads the stack description, builds the template and lints it.

Checks performed:
  - Stack description: required fields, CIDRs, ports, node counts, tenant names
  - Instance types: unknown EC2 instance types are reported as warnings
  - Template: unique logical names and resolvable references
  - cfn-lint: CloudFormation rules (errors fail, warnings pass)

Examples:
    wetwire-webstack validate
    wetwire-webstack validate stack.yaml --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger(cmd.ErrOrStderr())
			result := runValidate(stackFile(args), logger)
			if err := outputValidateResult(cmd.OutOrStdout(), result, outputFormat); err != nil {
				return err
			}
			if !result.Success {
				return errValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

// runValidate stops at the first stage that reports errors.
func runValidate(path string, logger *slog.Logger) wetwire.ValidateResult {
	fail := func(err error) wetwire.ValidateResult {
		return wetwire.ValidateResult{Errors: []string{err.Error()}}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fail(err)
	}

	tmpl, err := stack.Build(cfg, stack.Options{Logger: logger})
	if err != nil {
		return fail(err)
	}

	lint, err := validation.Lint(tmpl)
	if err != nil {
		return fail(err)
	}

	return wetwire.ValidateResult{
		Success:   lint.Passed,
		Resources: len(tmpl.Resources),
		Errors:    lint.Errors,
		Warnings:  append(cfg.Warnings(), lint.Warnings...),
	}
}

func outputValidateResult(w io.Writer, result wetwire.ValidateResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		if result.Success {
			fmt.Fprintf(w, "Validation passed: %d resources OK\n", result.Resources)
		} else {
			fmt.Fprintln(w, "Validation FAILED:")
		}
		for _, errMsg := range result.Errors {
			fmt.Fprintf(w, "  ERROR: %s\n", errMsg)
		}
		for _, warnMsg := range result.Warnings {
			fmt.Fprintf(w, "  WARNING: %s\n", warnMsg)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
