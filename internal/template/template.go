// Package template assembles CloudFormation templates one resource at a time.
//
// The Builder enforces the two invariants a template needs to deploy: every
// logical name is unique (parameters and resources share one namespace) and
// every Ref or Fn::GetAtt points at something declared before it.
package template

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/sets"

	wetwire "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/intrinsics"
	"github.com/lex00/wetwire-webstack-go/internal/serialize"
)

// FormatVersion is the only template format version CloudFormation accepts.
const FormatVersion = "2010-09-09"

var (
	// ErrDuplicateName is returned when a logical name is added twice.
	ErrDuplicateName = errors.New("duplicate logical name")
	// ErrDanglingReference is returned when a resource references a name
	// that has not been added yet.
	ErrDanglingReference = errors.New("dangling reference")
	// ErrInvalidName is returned for logical names that are not alphanumeric.
	ErrInvalidName = errors.New("invalid logical name")
)

// Builder constructs a template in insertion order.
type Builder struct {
	description string
	names       sets.Set[string]
	order       []string
	parameters  map[string]wetwire.Parameter
	resources   map[string]wetwire.ResourceDef
}

// NewBuilder creates an empty template builder.
func NewBuilder(description string) *Builder {
	return &Builder{
		description: description,
		names:       sets.New[string](),
		parameters:  make(map[string]wetwire.Parameter),
		resources:   make(map[string]wetwire.ResourceDef),
	}
}

// AddParameter declares a template parameter and returns a Ref to it.
func (b *Builder) AddParameter(name string, p wetwire.Parameter) (intrinsics.Ref, error) {
	if err := b.claim(name); err != nil {
		return intrinsics.Ref{}, err
	}
	if p.Type == "" {
		p.Type = "String"
	}
	b.parameters[name] = p
	return intrinsics.Ref{LogicalName: name}, nil
}

// AddResource serializes r, checks its references and adds it under name.
func (b *Builder) AddResource(name string, r wetwire.Resource) (intrinsics.Ref, error) {
	if err := validName(name); err != nil {
		return intrinsics.Ref{}, err
	}
	if b.names.Has(name) {
		return intrinsics.Ref{}, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	props, err := serialize.Resource(r)
	if err != nil {
		return intrinsics.Ref{}, fmt.Errorf("serializing %s: %w", name, err)
	}

	for _, target := range References(props) {
		if !b.resolves(target) {
			return intrinsics.Ref{}, fmt.Errorf("%w: %s references %s", ErrDanglingReference, name, target)
		}
	}

	def := wetwire.ResourceDef{Type: r.ResourceType()}
	if len(props) > 0 {
		def.Properties = props
	}

	b.names.Insert(name)
	b.order = append(b.order, name)
	b.resources[name] = def
	return intrinsics.Ref{LogicalName: name}, nil
}

// Attr returns the Fn::GetAtt handle for an attribute of a referenced resource.
func (b *Builder) Attr(ref intrinsics.Ref, attribute string) wetwire.AttrRef {
	return wetwire.AttrRef{Resource: ref.LogicalName, Attribute: attribute}
}

// Names returns the resource logical names in the order they were added.
func (b *Builder) Names() []string {
	return append([]string(nil), b.order...)
}

// Len returns the number of resources added so far.
func (b *Builder) Len() int {
	return len(b.order)
}

// Build returns the template. The builder can keep being used afterwards;
// later additions do not leak into an already built template.
func (b *Builder) Build() *wetwire.Template {
	t := &wetwire.Template{
		AWSTemplateFormatVersion: FormatVersion,
		Description:              b.description,
		Resources:                make(map[string]wetwire.ResourceDef, len(b.resources)),
	}
	if len(b.parameters) > 0 {
		t.Parameters = make(map[string]wetwire.Parameter, len(b.parameters))
		for name, p := range b.parameters {
			t.Parameters[name] = p
		}
	}
	for name, def := range b.resources {
		t.Resources[name] = def
	}
	return t
}

func (b *Builder) claim(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if b.names.Has(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	b.names.Insert(name)
	return nil
}

func (b *Builder) resolves(target string) bool {
	return strings.HasPrefix(target, "AWS::") || b.names.Has(target)
}

// validName accepts the logical names CloudFormation accepts: ASCII letters
// and digits only.
func validName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}

// RefKind distinguishes the two reference intrinsics.
type RefKind int

const (
	// KindRef is {"Ref": name}.
	KindRef RefKind = iota
	// KindGetAtt is {"Fn::GetAtt": [name, attribute]}.
	KindGetAtt
)

// Reference is one Ref or Fn::GetAtt found in a property tree.
type Reference struct {
	Target string
	Kind   RefKind
}

// Refs walks a serialized property tree and returns every reference it
// contains, sorted by target then kind, without duplicates.
func Refs(v any) []Reference {
	seen := make(map[Reference]bool)
	collectRefs(v, seen)

	refs := make([]Reference, 0, len(seen))
	for r := range seen {
		refs = append(refs, r)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Target != refs[j].Target {
			return refs[i].Target < refs[j].Target
		}
		return refs[i].Kind < refs[j].Kind
	})
	return refs
}

// References returns the sorted, de-duplicated logical names referenced by a
// serialized property tree.
func References(v any) []string {
	names := sets.New[string]()
	for _, r := range Refs(v) {
		names.Insert(r.Target)
	}
	return sets.List(names)
}

func collectRefs(v any, seen map[Reference]bool) {
	switch val := v.(type) {
	case map[string]any:
		if target, ok := val["Ref"].(string); ok && len(val) == 1 {
			seen[Reference{Target: target, Kind: KindRef}] = true
			return
		}
		if args, ok := val["Fn::GetAtt"].([]any); ok && len(val) == 1 && len(args) > 0 {
			if target, ok := args[0].(string); ok {
				seen[Reference{Target: target, Kind: KindGetAtt}] = true
			}
			return
		}
		for _, child := range val {
			collectRefs(child, seen)
		}
	case []any:
		for _, child := range val {
			collectRefs(child, seen)
		}
	}
}

// ToJSON serializes the template to two-space indented JSON. Map keys are
// emitted sorted, so equal templates always produce equal bytes.
func ToJSON(t *wetwire.Template) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToYAML serializes the template to YAML.
func ToYAML(t *wetwire.Template) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
