package optimizer

import (
	"fmt"
	"strconv"
	"strings"

	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
)

const (
	anywhere = "0.0.0.0/0"
	sshPort  = 22

	// Smallest gp2 volume with a 1000 IOPS baseline.
	gp2FullIOPSSize = 334
)

var securityGroupRules = []Rule{
	{
		ID:          "OPT-SG-001",
		Category:    "security",
		Severity:    "high",
		Title:       "SSH is open to the internet",
		Description: "An ingress rule allows TCP/22 from 0.0.0.0/0.",
		Suggestion:  "Restrict ops_ips.ssh and customer_ips.ssh to known address ranges.",
		Match: func(props map[string]any) bool {
			for _, rule := range maps(props["SecurityGroupIngress"]) {
				if rule["CidrIp"] != anywhere {
					continue
				}
				from, okFrom := number(rule["FromPort"])
				to, okTo := number(rule["ToPort"])
				if okFrom && okTo && from <= sshPort && sshPort <= to {
					return true
				}
			}
			return false
		},
	},
}

var instanceRules = []Rule{
	previousGenerationRule("OPT-EC2-001"),
}

var launchConfigurationRules = []Rule{
	previousGenerationRule("OPT-ASG-001"),
	{
		ID:          "OPT-ASG-002",
		Category:    "reliability",
		Severity:    "medium",
		Title:       "Launch configurations are deprecated",
		Description: "AWS no longer adds new instance types to launch configurations.",
		Suggestion:  "Migrate the auto scaling group to an AWS::EC2::LaunchTemplate.",
		Match:       func(map[string]any) bool { return true },
	},
}

var listenerRules = []Rule{
	{
		ID:          "OPT-ELB-001",
		Category:    "security",
		Severity:    "medium",
		Title:       "HTTP listener serves traffic in clear text",
		Description: "The port 80 listener forwards to a target group instead of redirecting to HTTPS.",
		Suggestion:  "Use a redirect default action to HTTPS on port 443.",
		Match: func(props map[string]any) bool {
			if props["Protocol"] != string(elbv2types.ProtocolEnumHttp) {
				return false
			}
			for _, action := range maps(props["DefaultActions"]) {
				if action["Type"] == string(elbv2types.ActionTypeEnumForward) {
					return true
				}
			}
			return false
		},
	},
}

var rdsInstanceRules = []Rule{
	{
		ID:          "OPT-RDS-001",
		Category:    "security",
		Severity:    "high",
		Title:       "Master password is embedded in the template",
		Description: "MasterUserPassword is a literal string, readable by anyone with access to the template.",
		Suggestion:  "Pass the password through a NoEcho parameter or a Secrets Manager dynamic reference.",
		Match: func(props map[string]any) bool {
			password, ok := props["MasterUserPassword"].(string)
			return ok && !strings.HasPrefix(password, "{{resolve:")
		},
	},
	{
		ID:          "OPT-RDS-002",
		Category:    "reliability",
		Severity:    "medium",
		Title:       "MySQL 5.7 has reached end of standard support",
		Description: "RDS bills extended support for MySQL 5.7 instances.",
		Suggestion:  "Upgrade EngineVersion to a MySQL 8.0 release.",
		Match: func(props map[string]any) bool {
			engine, _ := props["Engine"].(string)
			version, _ := props["EngineVersion"].(string)
			return strings.EqualFold(engine, "mysql") && strings.HasPrefix(version, "5.7")
		},
	},
	{
		ID:          "OPT-RDS-003",
		Category:    "cost",
		Severity:    "low",
		Title:       "gp2 storage can move to gp3",
		Description: "gp3 volumes cost less per GB and provide a baseline of 3000 IOPS regardless of size.",
		Suggestion:  "Set StorageType to gp3.",
		Match: func(props map[string]any) bool {
			return props["StorageType"] == "gp2"
		},
	},
	{
		ID:          "OPT-RDS-004",
		Category:    "performance",
		Severity:    "low",
		Title:       "Small gp2 volume has a low IOPS baseline",
		Description: "gp2 delivers 3 IOPS per GB, so volumes under 334 GB stay below 1000 IOPS outside of bursts.",
		Suggestion:  "Raise allocation_size or switch StorageType to gp3.",
		Match: func(props map[string]any) bool {
			if props["StorageType"] != "gp2" {
				return false
			}
			size, err := strconv.Atoi(fmt.Sprint(props["AllocatedStorage"]))
			return err == nil && size < gp2FullIOPSSize
		},
	},
}

// previousGenerationRule flags burstable t2 instances, which cost more than
// the t3 equivalents.
func previousGenerationRule(id string) Rule {
	return Rule{
		ID:          id,
		Category:    "cost",
		Severity:    "low",
		Title:       "Previous generation instance type",
		Description: "t2 instances are priced above the equivalent t3 sizes.",
		Suggestion:  "Switch ec2_instance_type to the matching t3 size.",
		Match: func(props map[string]any) bool {
			instanceType, _ := props["InstanceType"].(string)
			return strings.HasPrefix(instanceType, "t2.")
		},
	}
}

// maps returns the map elements of a serialized list property.
func maps(v any) []map[string]any {
	list, _ := v.([]any)
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// number reads a literal port from either a built template (int64) or one
// decoded from JSON (float64). Refs are not numbers.
func number(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}
