// Package intrinsics provides CloudFormation intrinsic functions.
//
// This package re-exports the core intrinsic types from cloudformation-schema-go
// and adds the small helpers the resource types need.
//
// Core intrinsic functions:
//
//	Ref{LogicalName: "VPC"} → {"Ref": "VPC"}
//	Join{Delimiter: ".", Values: []any{"acme", "example.com"}} → {"Fn::Join": [".", ["acme", "example.com"]]}
package intrinsics

import (
	"sort"

	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

// Re-export core intrinsic types from shared package.
type (
	// Ref represents a CloudFormation Ref intrinsic function.
	Ref = intrinsics.Ref

	// Join represents a CloudFormation Fn::Join intrinsic function.
	Join = intrinsics.Join

	// Tag represents a CloudFormation resource tag.
	Tag = intrinsics.Tag
)

// Tags converts a key/value map into a tag list sorted by key, so repeated
// builds emit tags in the same order.
func Tags(kv map[string]string) []Tag {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tags := make([]Tag, 0, len(keys))
	for _, k := range keys {
		tags = append(tags, Tag{Key: k, Value: kv[k]})
	}
	return tags
}

// Helper functions for creating pointers to primitive types.
// These are used for optional resource fields where the zero value must
// still be emitted (e.g. SourceDestCheck: false).

// BoolPtr returns a pointer to the given bool value.
func BoolPtr(b bool) *bool {
	return &b
}
