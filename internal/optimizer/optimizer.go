// Package optimizer inspects a generated template and suggests security,
// cost, performance and reliability improvements.
package optimizer

import (
	"cmp"
	"slices"

	wetwire "github.com/lex00/wetwire-webstack-go"
)

// Options configures the optimizer.
type Options struct {
	// Category filters suggestions: "all", "security", "cost", "performance", "reliability"
	Category string
}

// Result contains optimization suggestions.
type Result struct {
	Suggestions []wetwire.OptimizeSuggestion
	Summary     wetwire.OptimizeSummary
}

// Optimize applies every rule matching a resource's type to each resource of
// the template. Suggestions are ordered by resource then rule.
func Optimize(t *wetwire.Template, opts Options) (*Result, error) {
	result := &Result{}

	for name, def := range t.Resources {
		result.Suggestions = append(result.Suggestions, analyzeResource(name, def, opts.Category)...)
	}

	slices.SortFunc(result.Suggestions, func(a, b wetwire.OptimizeSuggestion) int {
		return cmp.Or(cmp.Compare(a.Resource, b.Resource), cmp.Compare(a.Rule, b.Rule))
	})
	result.Summary = calculateSummary(result.Suggestions)

	return result, nil
}

// analyzeResource applies optimization rules to a single resource.
func analyzeResource(name string, def wetwire.ResourceDef, category string) []wetwire.OptimizeSuggestion {
	var suggestions []wetwire.OptimizeSuggestion

	for _, rule := range getRulesForType(def.Type) {
		if category != "" && category != "all" && rule.Category != category {
			continue
		}
		if !rule.Match(def.Properties) {
			continue
		}
		suggestions = append(suggestions, wetwire.OptimizeSuggestion{
			Resource:    name,
			Rule:        rule.ID,
			Category:    rule.Category,
			Severity:    rule.Severity,
			Title:       rule.Title,
			Description: rule.Description,
			Suggestion:  rule.Suggestion,
		})
	}

	return suggestions
}

// calculateSummary tallies suggestions by category.
func calculateSummary(suggestions []wetwire.OptimizeSuggestion) wetwire.OptimizeSummary {
	summary := wetwire.OptimizeSummary{}
	for _, s := range suggestions {
		switch s.Category {
		case "security":
			summary.Security++
		case "cost":
			summary.Cost++
		case "performance":
			summary.Performance++
		case "reliability":
			summary.Reliability++
		}
		summary.Total++
	}
	return summary
}

// Rule represents an optimization rule.
type Rule struct {
	ID          string
	Category    string
	Severity    string
	Title       string
	Description string
	Suggestion  string
	Match       func(props map[string]any) bool
}

// getRulesForType returns applicable rules for a resource type.
func getRulesForType(resourceType string) []Rule {
	switch resourceType {
	case "AWS::EC2::SecurityGroup":
		return securityGroupRules
	case "AWS::EC2::Instance":
		return instanceRules
	case "AWS::AutoScaling::LaunchConfiguration":
		return launchConfigurationRules
	case "AWS::ElasticLoadBalancingV2::Listener":
		return listenerRules
	case "AWS::RDS::DBInstance":
		return rdsInstanceRules
	}
	return nil
}
