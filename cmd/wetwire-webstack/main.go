// Command wetwire-webstack generates the CloudFormation template of a
// multi-tenant web stack from a stack description.
//
// Usage:
//
//	wetwire-webstack build                 Generate the template from spec-prod.json
//	wetwire-webstack build stack.yaml -f yaml
//	wetwire-webstack validate              Build and lint the template
//	wetwire-webstack diff template.json    Compare a deployed template with a fresh build
//	wetwire-webstack version               Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "wetwire-webstack",
		Short: "Generate CloudFormation templates for multi-tenant web stacks",
		Long: `wetwire-webstack turns a stack description into a single CloudFormation
template: a VPC with public, web and database subnets, NAT routing, an
application load balancer with one listener rule pair per tenant, web and api
auto scaling groups, bastion hosts and RDS instances.

Describe the stack in JSON or YAML:

    {
        "project":   {"tag": "acme", "env": "prod", ...},
        "customers": {"globex": {"port": 8080, "canonical_name": "globex"}},
        ...
    }

Then generate the template:

    wetwire-webstack build spec-prod.json -o template.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(
		newBuildCmd(opts),
		newValidateCmd(opts),
		newListCmd(opts),
		newGraphCmd(opts),
		newDiffCmd(opts),
		newWatchCmd(opts),
		newOptimizeCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wetwire-webstack %s\n", getVersion())
		},
	}
}
