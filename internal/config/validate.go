package config

import (
	"fmt"
	"net/netip"
	"slices"
	"strings"

	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Validate reports every defect in the description as one aggregate error.
func (c *Config) Validate() error {
	var errs field.ErrorList

	errs = append(errs, c.Project.validate(field.NewPath("project"))...)
	errs = append(errs, c.OpsIPs.validate(field.NewPath("ops_ips", "ssh"))...)
	errs = append(errs, c.CustomerIPs.validate(field.NewPath("customer_ips", "ssh"))...)

	if c.Bastion != nil {
		errs = append(errs, c.Bastion.validate(field.NewPath("bastion"))...)
	}
	errs = append(errs, c.Web.validate(field.NewPath("web"))...)
	errs = append(errs, c.API.validate(field.NewPath("api"))...)
	if c.RDS != nil {
		errs = append(errs, c.RDS.validate(field.NewPath("rds"))...)
	}
	errs = append(errs, c.Customers.validate(field.NewPath("customers"), c.Project.Tag)...)

	errs = append(errs, required(c.Domain, field.NewPath("domain"))...)
	errs = append(errs, required(c.SSLCert, field.NewPath("ssl_cert"))...)
	errs = append(errs, required(c.KeyName, field.NewPath("key_name"))...)

	if len(errs) == 0 {
		return nil
	}
	return errs.ToAggregate()
}

func (p Project) validate(path *field.Path) field.ErrorList {
	var errs field.ErrorList
	errs = append(errs, required(p.Desc, path.Child("desc"))...)
	errs = append(errs, required(p.Tag, path.Child("tag"))...)
	errs = append(errs, required(p.Name, path.Child("name"))...)
	errs = append(errs, required(p.Env, path.Child("env"))...)
	errs = append(errs, required(p.Ticket, path.Child("ticket"))...)
	errs = append(errs, required(p.AZ1, path.Child("az1"))...)
	errs = append(errs, required(p.AZ2, path.Child("az2"))...)
	return errs
}

func (l Layer) validate(path *field.Path) field.ErrorList {
	var errs field.ErrorList
	errs = append(errs, required(l.CanonicalName, path.Child("canonical_name"))...)
	errs = append(errs, required(l.EC2InstanceType, path.Child("ec2_instance_type"))...)
	errs = append(errs, required(l.AMIID, path.Child("ami_id"))...)
	return errs
}

func (f Fleet) validate(path *field.Path) field.ErrorList {
	var errs field.ErrorList
	if f.NumNodes < 0 || f.NumNodes > 99 {
		errs = append(errs, field.Invalid(path.Child("num_nodes"), int(f.NumNodes), "must be between 0 and 99"))
	}
	errs = append(errs, required(f.CanonicalName, path.Child("canonical_name"))...)
	errs = append(errs, required(f.EC2InstanceType, path.Child("ec2_instance_type"))...)
	errs = append(errs, required(f.AMIID, path.Child("ami_id"))...)
	return errs
}

func (d Database) validate(path *field.Path) field.ErrorList {
	var errs field.ErrorList
	if d.NumNodes < 0 || d.NumNodes > 99 {
		errs = append(errs, field.Invalid(path.Child("num_nodes"), int(d.NumNodes), "must be between 0 and 99"))
	}
	errs = append(errs, required(d.CanonicalName, path.Child("canonical_name"))...)
	errs = append(errs, required(d.MasterKey, path.Child("master_key"))...)
	errs = append(errs, required(d.MasterPassword, path.Child("master_password"))...)
	errs = append(errs, required(d.EC2InstanceType, path.Child("ec2_instance_type"))...)
	errs = append(errs, required(d.ParameterGroup, path.Child("parameter_group"))...)

	sizes := path.Child("allocation_size")
	if len(d.AllocationSize) < int(d.NumNodes) {
		errs = append(errs, field.Invalid(sizes, len(d.AllocationSize),
			fmt.Sprintf("needs one entry per node (%d)", d.NumNodes)))
	}
	for i, size := range d.AllocationSize {
		if size <= 0 {
			errs = append(errs, field.Invalid(sizes.Index(i), int(size), "must be a positive number of GiB"))
		}
	}
	return errs
}

// maxTargetGroupName is the ELBv2 limit on target group names.
const maxTargetGroupName = 32

func (c Customers) validate(path *field.Path, tag string) field.ErrorList {
	if c == nil {
		return field.ErrorList{field.Required(path, "")}
	}

	var errs field.ErrorList
	canonical := make(map[string]string)

	for _, cust := range c {
		p := path.Key(cust.Name)
		switch {
		case cust.Name == "":
			errs = append(errs, field.Required(p, "tenant name"))
		case !isHostLabel(cust.Name):
			errs = append(errs, field.Invalid(p, cust.Name,
				"must contain only letters, digits and '-', and must not start or end with '-'"))
		case len(tag+"-"+cust.Name+"-webLayer") > maxTargetGroupName:
			errs = append(errs, field.Invalid(p, cust.Name,
				fmt.Sprintf("target group name %q exceeds %d characters", tag+"-"+cust.Name+"-webLayer", maxTargetGroupName)))
		}
		if cust.Port < 1 || cust.Port > 65535 {
			errs = append(errs, field.Invalid(p.Child("port"), int(cust.Port), "must be a TCP port (1-65535)"))
		}

		cn := p.Child("canonical_name")
		switch {
		case cust.CanonicalName == "":
			errs = append(errs, field.Required(cn, ""))
		case !isAlphanumeric(cust.CanonicalName):
			errs = append(errs, field.Invalid(cn, cust.CanonicalName, "must contain only letters and digits"))
		case canonical[cust.CanonicalName] != "":
			errs = append(errs, field.Duplicate(cn, cust.CanonicalName))
		default:
			canonical[cust.CanonicalName] = cust.Name
		}
	}
	return errs
}

func (l IPList) validate(path *field.Path) field.ErrorList {
	if l.SSH == nil {
		return field.ErrorList{field.Required(path, "")}
	}

	var errs field.ErrorList
	for i, cidr := range l.SSH {
		if _, err := netip.ParsePrefix(cidr); err != nil {
			errs = append(errs, field.Invalid(path.Index(i), cidr, "must be a CIDR block"))
		}
	}
	return errs
}

func required(value string, path *field.Path) field.ErrorList {
	if strings.TrimSpace(value) == "" {
		return field.ErrorList{field.Required(path, "")}
	}
	return nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return s != ""
}

// isHostLabel reports whether s can be used both as a DNS label in the
// tenant's host header and inside a target group name.
func isHostLabel(s string) bool {
	if s == "" || strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return false
	}
	return isAlphanumeric(strings.ReplaceAll(s, "-", ""))
}

// Warnings lists instance types the EC2 API does not know about. They are
// not fatal: new instance families appear faster than SDK releases.
func (c *Config) Warnings() []string {
	var warnings []string
	check := func(path, instanceType string) {
		if instanceType != "" && !knownInstanceType(instanceType) {
			warnings = append(warnings, fmt.Sprintf("%s: unknown instance type %q", path, instanceType))
		}
	}

	if c.Bastion != nil {
		check("bastion.ec2_instance_type", c.Bastion.EC2InstanceType)
	}
	check("web.ec2_instance_type", c.Web.EC2InstanceType)
	check("api.ec2_instance_type", c.API.EC2InstanceType)
	if c.RDS != nil {
		check("rds.ec2_instance_type", strings.TrimPrefix(c.RDS.EC2InstanceType, "db."))
	}
	return warnings
}

func knownInstanceType(instanceType string) bool {
	return slices.Contains(ec2types.InstanceType("").Values(), ec2types.InstanceType(instanceType))
}
