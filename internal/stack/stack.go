// Package stack maps a stack description onto a CloudFormation template.
//
// Construction is a single ordered pass: parameters, network, security
// groups, routing, bastions, load balancer, tenants, auto scaling, database.
// Every step only references resources created by the steps before it, which
// the template builder verifies as resources are added.
package stack

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	wetwire "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/intrinsics"
	"github.com/lex00/wetwire-webstack-go/internal/config"
	"github.com/lex00/wetwire-webstack-go/internal/template"
)

// Options configures a build.
type Options struct {
	// Logger receives one debug record per construction step and the
	// description warnings. Nil discards everything.
	Logger *slog.Logger
}

// Build assembles the template for cfg.
func Build(cfg *config.Config, opts Options) (*wetwire.Template, error) {
	b, err := Assemble(cfg, opts)
	if err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// Assemble runs every construction step and returns the populated builder,
// which still knows the order resources were added in.
func Assemble(cfg *config.Config, opts Options) (*template.Builder, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	a := &assembler{
		cfg: cfg,
		b:   template.NewBuilder(cfg.Project.Desc),
		log: logger,
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"parameters", a.addParameters},
		{"network", a.addNetwork},
		{"security groups", a.addSecurityGroups},
		{"routing", a.addRouting},
		{"bastion", a.addBastions},
		{"load balancer", a.addLoadBalancer},
		{"tenants", a.addTenants},
		{"auto scaling", a.addAutoScaling},
		{"database", a.addDatabase},
	}

	for _, step := range steps {
		before := a.b.Len()
		if err := step.run(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.name, err)
		}
		logger.Debug("built step", "step", step.name, "resources", a.b.Len()-before)
	}

	logger.Info("template assembled", "resources", a.b.Len(), "tenants", len(cfg.Customers))
	return a.b, nil
}

// assembler carries the handles later steps reference.
type assembler struct {
	cfg *config.Config
	b   *template.Builder
	log *slog.Logger

	params map[string]intrinsics.Ref

	vpc          intrinsics.Ref
	publicSubnet [2]intrinsics.Ref
	webSubnet    [2]intrinsics.Ref
	dbSubnet     [2]intrinsics.Ref

	basSG intrinsics.Ref
	albSG intrinsics.Ref
	feSG  intrinsics.Ref
	rdsSG intrinsics.Ref

	httpsListener      intrinsics.Ref
	defaultTargetGroup intrinsics.Ref
	webTargetGroups    []any
	apiTargetGroups    []any
}

func (a *assembler) add(name string, r wetwire.Resource) (intrinsics.Ref, error) {
	return a.b.AddResource(name, r)
}

// tagValues returns the four tags every taggable resource carries.
func (a *assembler) tagValues(name string) map[string]string {
	p := a.cfg.Project
	return map[string]string{
		"Environment": p.Env,
		"Name":        name,
		"Project":     p.Name,
		"Ticket":      p.Ticket,
	}
}

func (a *assembler) tags(name string) []intrinsics.Tag {
	return intrinsics.Tags(a.tagValues(name))
}

// prefixed returns "{tag}-{suffix}", the display name scheme of the stack.
func (a *assembler) prefixed(suffix string) string {
	return a.cfg.Project.Tag + "-" + suffix
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}

// nodeName zero-pads a 1-based node index to two digits.
func nodeName(prefix string, i int) string {
	return fmt.Sprintf("%s%02d", prefix, i)
}
