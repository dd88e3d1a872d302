// Package config loads and validates the stack description: the JSON or
// YAML document that names the project, its tenants and the instance fleets
// of every layer.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the stack description read when no path is given.
const DefaultFile = "spec-prod.json"

// Config is a decoded stack description.
type Config struct {
	Project     Project   `json:"project" yaml:"project"`
	OpsIPs      IPList    `json:"ops_ips" yaml:"ops_ips"`
	CustomerIPs IPList    `json:"customer_ips" yaml:"customer_ips"`
	Bastion     *Fleet    `json:"bastion" yaml:"bastion"`
	Web         Layer     `json:"web" yaml:"web"`
	API         Layer     `json:"api" yaml:"api"`
	RDS         *Database `json:"rds" yaml:"rds"`
	Customers   Customers `json:"customers" yaml:"customers"`
	Domain      string    `json:"domain" yaml:"domain"`
	SSLCert     string    `json:"ssl_cert" yaml:"ssl_cert"`
	KeyName     string    `json:"key_name" yaml:"key_name"`
}

// Project carries the naming and tagging inputs shared by every resource.
type Project struct {
	Desc   string `json:"desc" yaml:"desc"`
	Tag    string `json:"tag" yaml:"tag"`
	Name   string `json:"name" yaml:"name"`
	Env    string `json:"env" yaml:"env"`
	Ticket string `json:"ticket" yaml:"ticket"`
	AZ1    string `json:"az1" yaml:"az1"`
	AZ2    string `json:"az2" yaml:"az2"`
}

// IPList holds the CIDRs allowed to reach the bastion over SSH. A nil SSH
// list means the key was absent; an empty one allows nobody.
type IPList struct {
	SSH []string `json:"ssh" yaml:"ssh"`
}

// Layer describes the instances launched by one auto scaling group.
type Layer struct {
	CanonicalName   string `json:"canonical_name" yaml:"canonical_name"`
	EC2InstanceType string `json:"ec2_instance_type" yaml:"ec2_instance_type"`
	AMIID           string `json:"ami_id" yaml:"ami_id"`
}

// Fleet is a fixed number of standalone instances (the bastion hosts).
type Fleet struct {
	NumNodes        Int    `json:"num_nodes" yaml:"num_nodes"`
	CanonicalName   string `json:"canonical_name" yaml:"canonical_name"`
	EC2InstanceType string `json:"ec2_instance_type" yaml:"ec2_instance_type"`
	AMIID           string `json:"ami_id" yaml:"ami_id"`
}

// Database describes the RDS instances.
type Database struct {
	NumNodes        Int    `json:"num_nodes" yaml:"num_nodes"`
	CanonicalName   string `json:"canonical_name" yaml:"canonical_name"`
	MasterKey       string `json:"master_key" yaml:"master_key"`
	MasterPassword  string `json:"master_password" yaml:"master_password"`
	EC2InstanceType string `json:"ec2_instance_type" yaml:"ec2_instance_type"`
	AllocationSize  []Int  `json:"allocation_size" yaml:"allocation_size"`
	ParameterGroup  string `json:"parameter_group" yaml:"parameter_group"`
}

// Customer is one tenant served behind the load balancer. Name is the key of
// the customers mapping and becomes the tenant's host name under Domain.
type Customer struct {
	Name          string `json:"-" yaml:"-"`
	Port          Int    `json:"port" yaml:"port"`
	CanonicalName string `json:"canonical_name" yaml:"canonical_name"`
}

// Customers keeps tenants in document order, which decides listener rule
// priorities. Nil means the section was absent or null; an empty mapping
// decodes to a non-nil empty list.
type Customers []Customer

// UnmarshalJSON walks the object with gjson so key order survives decoding.
func (c *Customers) UnmarshalJSON(data []byte) error {
	result := gjson.ParseBytes(data)
	if result.Type == gjson.Null {
		*c = nil
		return nil
	}
	if !result.IsObject() {
		return fmt.Errorf("customers: expected an object, got %s", result.Type)
	}

	var (
		out  = Customers{}
		err  error
		seen = make(map[string]bool)
	)
	result.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if seen[name] {
			err = fmt.Errorf("customers: duplicate tenant %q", name)
			return false
		}
		seen[name] = true

		cust := Customer{Name: name}
		if uerr := json.Unmarshal([]byte(value.Raw), &cust); uerr != nil {
			err = fmt.Errorf("customers.%s: %w", name, uerr)
			return false
		}
		out = append(out, cust)
		return true
	})
	if err != nil {
		return err
	}
	*c = out
	return nil
}

// UnmarshalYAML reads the mapping node pair by pair to keep key order.
func (c *Customers) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*c = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("customers: line %d: expected a mapping", node.Line)
	}

	out := Customers{}
	seen := make(map[string]bool)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if seen[name] {
			return fmt.Errorf("customers: line %d: duplicate tenant %q", node.Content[i].Line, name)
		}
		seen[name] = true

		cust := Customer{Name: name}
		if err := node.Content[i+1].Decode(&cust); err != nil {
			return fmt.Errorf("customers.%s: %w", name, err)
		}
		out = append(out, cust)
	}
	*c = out
	return nil
}

// Int is an integer that may be written as a number or a numeric string
// ("num_nodes": "2").
type Int int

// UnmarshalJSON accepts 2, 2.0 and "2".
func (i *Int) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	n, ok := parseWhole(s)
	if !ok {
		return fmt.Errorf("expected an integer, got %s", string(data))
	}
	*i = n
	return nil
}

// UnmarshalYAML accepts 2, 2.0 and "2".
func (i *Int) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected an integer", node.Line)
	}
	if node.Tag == "!!null" {
		return nil
	}
	n, ok := parseWhole(strings.TrimSpace(node.Value))
	if !ok {
		return fmt.Errorf("line %d: expected an integer, got %q", node.Line, node.Value)
	}
	*i = n
	return nil
}

// parseWhole reads s as a number with no fractional part.
func parseWhole(s string) (Int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return Int(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return Int(f), true
}

// Format is the encoding of a stack description.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for files that are neither JSON nor YAML.
var ErrUnknownFormat = errors.New("unknown stack description format")

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load reads, decodes and validates the stack description at path.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stack description: %w", err)
	}

	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a stack description.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatJSON:
		if !gjson.ValidBytes(data) {
			return nil, errors.New("malformed JSON")
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("decoding JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("decoding YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize treats an empty bastion or rds section like an absent one.
func (c *Config) normalize() {
	if c.Bastion != nil && *c.Bastion == (Fleet{}) {
		c.Bastion = nil
	}
	if c.RDS != nil && c.RDS.isEmpty() {
		c.RDS = nil
	}
}

func (d *Database) isEmpty() bool {
	return d.NumNodes == 0 && d.CanonicalName == "" && d.MasterKey == "" &&
		d.MasterPassword == "" && d.EC2InstanceType == "" &&
		len(d.AllocationSize) == 0 && d.ParameterGroup == ""
}
