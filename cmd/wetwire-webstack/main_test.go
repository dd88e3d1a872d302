package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	wetwire "github.com/lex00/wetwire-webstack-go"
)

const (
	prodSpec       = "testdata/spec-prod.json"
	twoTenantsSpec = "testdata/two-tenants.json"
)

// execute runs the root command with args and returns what it printed to
// stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestRootCommands(t *testing.T) {
	cmd := newRootCmd()

	want := []string{"build", "validate", "list", "graph", "diff", "watch", "optimize", "version"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("missing %q subcommand", name)
		}
	}

	for _, flag := range []string{"log-level", "log-format"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing --%s flag", flag)
		}
	}
	if got := cmd.PersistentFlags().Lookup("log-level").DefValue; got != "warn" {
		t.Errorf("log-level default = %q, want 'warn'", got)
	}
}

func TestBuildCommand(t *testing.T) {
	out, err := execute(t, "build", prodSpec)
	if err != nil {
		t.Fatalf("build error = %v", err)
	}

	var tmpl wetwire.Template
	if err := json.Unmarshal([]byte(out), &tmpl); err != nil {
		t.Fatalf("build output is not JSON: %v", err)
	}
	if tmpl.AWSTemplateFormatVersion != "2010-09-09" {
		t.Errorf("AWSTemplateFormatVersion = %q", tmpl.AWSTemplateFormatVersion)
	}
	for _, name := range []string{"VPC", "natGateway", "applicationLoadBalancer", "rds01"} {
		if _, ok := tmpl.Resources[name]; !ok {
			t.Errorf("missing resource %s", name)
		}
	}
}

func TestBuildCommand_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.yaml")

	out, err := execute(t, "build", prodSpec, "-f", "yaml", "-o", path)
	if err != nil {
		t.Fatalf("build error = %v", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty when writing a file, got %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "AWSTemplateFormatVersion: \"2010-09-09\"") {
		t.Errorf("unexpected YAML header: %.60s", data)
	}
}

func TestBuildCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"project": {}}`), 0644); err != nil {
		t.Fatal(err)
	}
	noCustomers := withoutKey(t, prodSpec, "customers")

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"build", filepath.Join(dir, "missing.json")}},
		{"invalid description", []string{"build", bad}},
		{"missing customers", []string{"build", noCustomers}},
		{"unknown format", []string{"build", prodSpec, "-f", "toml"}},
		{"too many args", []string{"build", prodSpec, twoTenantsSpec}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(dir, tt.name+".json")
			out, err := execute(t, append(tt.args, "-o", output)...)
			if err == nil {
				t.Fatal("expected error")
			}
			if out != "" {
				t.Errorf("no output expected on failure, got %q", out)
			}
			if _, err := os.Stat(output); !os.IsNotExist(err) {
				t.Error("output file must not be written on failure")
			}
		})
	}
}

func TestBuildCommand_MissingSections(t *testing.T) {
	for _, key := range []string{"customers", "ops_ips", "customer_ips"} {
		t.Run(key, func(t *testing.T) {
			out, err := execute(t, "build", withoutKey(t, prodSpec, key))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "Required value") {
				t.Errorf("error = %v, want a required field error", err)
			}
			if out != "" {
				t.Errorf("no output expected on failure, got %q", out)
			}
		})
	}
}

// withoutKey copies the JSON stack description at path into a temp dir with
// one top-level key removed.
func withoutKey(t *testing.T, path, key string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	delete(doc, key)

	data, err = json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "no-"+key+".json")
	if err := os.WriteFile(out, data, 0644); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestBuildCommand_Deterministic(t *testing.T) {
	first, err := execute(t, "build", prodSpec)
	if err != nil {
		t.Fatal(err)
	}
	second, err := execute(t, "build", prodSpec)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("two builds of the same description differ")
	}
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list", twoTenantsSpec, "-f", "json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}

	var result wetwire.ListResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("list output is not JSON: %v", err)
	}
	if len(result.Resources) == 0 {
		t.Fatal("no resources listed")
	}

	first := result.Resources[0]
	if first.Name != "VPC" || first.Type != "AWS::EC2::VPC" {
		t.Errorf("first resource = %+v, want VPC", first)
	}

	index := map[string]int{}
	for i, r := range result.Resources {
		index[r.Name] = i
	}
	if index["acmeapiListenerRule"] > index["globexapiListenerRule"] {
		t.Error("tenants should be listed in document order")
	}
	if _, ok := index["rds01"]; ok {
		t.Error("two-tenants description has no RDS section")
	}
}

func TestGraphCommand(t *testing.T) {
	out, err := execute(t, "graph", twoTenantsSpec, "-f", "mermaid")
	if err != nil {
		t.Fatalf("graph error = %v", err)
	}
	if !strings.Contains(out, "natGateway") {
		t.Error("graph should contain natGateway")
	}

	if _, err := execute(t, "graph", twoTenantsSpec, "-f", "svg"); err == nil {
		t.Error("expected error for unknown graph format")
	}
}

func TestDiffCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deployed.json")
	if _, err := execute(t, "build", prodSpec, "-o", path); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "diff", path, prodSpec)
	if err != nil {
		t.Fatalf("diff error = %v", err)
	}
	if !strings.Contains(out, "No differences.") {
		t.Errorf("template should match a fresh build, got:\n%s", out)
	}

	out, err = execute(t, "diff", path, twoTenantsSpec, "-f", "json")
	if err != nil {
		t.Fatalf("diff error = %v", err)
	}
	var result wetwire.DiffResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("diff output is not JSON: %v", err)
	}
	if result.Summary.Removed == 0 {
		t.Error("bastions and RDS instances should show as removed")
	}
}

func TestDiffCommand_TwoTemplates(t *testing.T) {
	dir := t.TempDir()
	prod := filepath.Join(dir, "prod.json")
	demo := filepath.Join(dir, "demo.yaml")
	if _, err := execute(t, "build", prodSpec, "-o", prod); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "build", twoTenantsSpec, "-f", "yaml", "-o", demo); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "diff", prod, demo)
	if err != nil {
		t.Fatalf("diff error = %v", err)
	}
	if !strings.Contains(out, "Summary:") {
		t.Errorf("expected a summary line, got:\n%s", out)
	}
}

func TestNewDiffCmd(t *testing.T) {
	cmd := newDiffCmd(&rootOptions{})

	if cmd.Use != "diff <template> [file]" {
		t.Errorf("Use = %q, want 'diff <template> [file]'", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	for _, flag := range []string{"format", "ignore-order", "verbose"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("missing --%s flag", flag)
		}
	}
}
