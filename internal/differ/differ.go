// Package differ provides semantic comparison of CloudFormation templates.
package differ

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"

	wetwire "github.com/lex00/wetwire-webstack-go"
)

// Options configures the differ.
type Options struct {
	// IgnoreOrder ignores array element order in comparisons.
	IgnoreOrder bool
	// Verbose attaches a property-level diff to every modified resource.
	Verbose bool
}

// Result contains the difference between two templates.
type Result struct {
	Diff    wetwire.TemplateDiff
	Summary wetwire.DiffSummary
}

// Compare compares two templates resource by resource. Both sides are
// normalized through JSON first, so a freshly built template compares equal
// to the same template read back from disk.
func Compare(template1, template2 *wetwire.Template, opts Options) (*Result, error) {
	res1, err := normalize(template1)
	if err != nil {
		return nil, err
	}
	res2, err := normalize(template2)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	for name, def := range res2 {
		if _, exists := res1[name]; !exists {
			result.Diff.Added = append(result.Diff.Added, wetwire.DiffEntry{Resource: name, Type: def.Type})
		}
	}

	for name, def1 := range res1 {
		def2, exists := res2[name]
		if !exists {
			result.Diff.Removed = append(result.Diff.Removed, wetwire.DiffEntry{Resource: name, Type: def1.Type})
			continue
		}

		changes := compareResources(def1, def2, opts)
		if len(changes) == 0 {
			continue
		}
		entry := wetwire.DiffEntry{Resource: name, Type: def1.Type, Changes: changes}
		if opts.Verbose {
			entry.Detail = cmp.Diff(def1, def2, cmpOptions(opts)...)
		}
		result.Diff.Modified = append(result.Diff.Modified, entry)
	}

	sortEntries(result.Diff.Added)
	sortEntries(result.Diff.Removed)
	sortEntries(result.Diff.Modified)

	result.Summary = wetwire.DiffSummary{
		Added:    len(result.Diff.Added),
		Removed:  len(result.Diff.Removed),
		Modified: len(result.Diff.Modified),
	}
	result.Summary.Total = result.Summary.Added + result.Summary.Removed + result.Summary.Modified

	return result, nil
}

// CompareFiles compares two template files.
func CompareFiles(file1, file2 string, opts Options) (*Result, error) {
	t1, err := LoadTemplate(file1)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file1, err)
	}

	t2, err := LoadTemplate(file2)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file2, err)
	}

	return Compare(t1, t2, opts)
}

// LoadTemplate loads a CloudFormation template from a JSON or YAML file.
func LoadTemplate(path string) (*wetwire.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var template wetwire.Template
	if err := json.Unmarshal(data, &template); err != nil {
		if yerr := yaml.Unmarshal(data, &template); yerr != nil {
			return nil, fmt.Errorf("failed to parse as JSON or YAML: %w", yerr)
		}
	}
	if template.Resources == nil {
		return nil, fmt.Errorf("%s: no Resources section", path)
	}

	return &template, nil
}

// normalize returns the resources of t decoded from their JSON encoding,
// leaving only generic maps, slices, strings, float64s and bools.
func normalize(t *wetwire.Template) (map[string]wetwire.ResourceDef, error) {
	data, err := json.Marshal(t.Resources)
	if err != nil {
		return nil, fmt.Errorf("normalizing template: %w", err)
	}
	var resources map[string]wetwire.ResourceDef
	if err := json.Unmarshal(data, &resources); err != nil {
		return nil, fmt.Errorf("normalizing template: %w", err)
	}
	return resources, nil
}

func compareResources(def1, def2 wetwire.ResourceDef, opts Options) []string {
	var changes []string

	if def1.Type != def2.Type {
		changes = append(changes, fmt.Sprintf("Type changed: %s → %s", def1.Type, def2.Type))
	}

	changes = append(changes, compareProperties(def1.Properties, def2.Properties, opts)...)

	if !cmp.Equal(def1.DependsOn, def2.DependsOn, cmpopts.EquateEmpty()) {
		changes = append(changes, "DependsOn changed")
	}

	return changes
}

// compareProperties reports top-level properties that were added, removed
// or modified.
func compareProperties(props1, props2 map[string]any, opts Options) []string {
	var changes []string
	options := cmpOptions(opts)

	for key, val2 := range props2 {
		if val1, exists := props1[key]; exists {
			if !cmp.Equal(val1, val2, options...) {
				changes = append(changes, key+" modified")
			}
		} else {
			changes = append(changes, key+" added")
		}
	}

	for key := range props1 {
		if _, exists := props2[key]; !exists {
			changes = append(changes, key+" removed")
		}
	}

	sort.Strings(changes)
	return changes
}

func cmpOptions(opts Options) []cmp.Option {
	options := []cmp.Option{cmpopts.EquateEmpty()}
	if opts.IgnoreOrder {
		options = append(options, cmpopts.SortSlices(func(a, b any) bool {
			return sortKey(a) < sortKey(b)
		}))
	}
	return options
}

// sortKey orders arbitrary JSON values by their encoding.
func sortKey(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func sortEntries(entries []wetwire.DiffEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Resource < entries[j].Resource
	})
}
