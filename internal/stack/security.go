package stack

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
	"github.com/lex00/wetwire-webstack-go/resources/ec2"
)

const anywhere = "0.0.0.0/0"

func (a *assembler) addSecurityGroups() error {
	var err error

	// One port 22 rule per operator CIDR, then per customer CIDR.
	cidrs := append(append([]string(nil), a.cfg.OpsIPs.SSH...), a.cfg.CustomerIPs.SSH...)
	sshRules := make([]ec2.IngressRule, 0, len(cidrs))
	for _, cidr := range cidrs {
		sshRules = append(sshRules, tcpFromCIDR(22, cidr))
	}

	a.basSG, err = a.add("basSecurityGroup", ec2.SecurityGroup{
		GroupDescription:     "Allow SSH connections from an approved list of IPs",
		SecurityGroupIngress: sshRules,
		VpcId:                a.vpc,
		Tags:                 a.tags(a.prefixed("basSecurityGroup")),
	})
	if err != nil {
		return err
	}

	a.albSG, err = a.add("albSecurityGroup", ec2.SecurityGroup{
		GroupDescription: "Allow all necessary ports from the internet",
		SecurityGroupIngress: []ec2.IngressRule{
			tcpFromCIDR(443, anywhere),
			tcpFromCIDR(80, anywhere),
		},
		VpcId: a.vpc,
		Tags:  a.tags(a.prefixed("albSecurityGroup")),
	})
	if err != nil {
		return err
	}

	tomcat := a.params["tomcatPort"]
	a.feSG, err = a.add("feSecurityGroup", ec2.SecurityGroup{
		GroupDescription: "Allow connections from Bastion and LB",
		SecurityGroupIngress: []ec2.IngressRule{
			tcpFromGroup(22, a.basSG),
			tcpFromGroup(tomcat, a.albSG),
		},
		VpcId: a.vpc,
		Tags:  a.tags(a.prefixed("feSecurityGroup")),
	})
	if err != nil {
		return err
	}

	db := a.params["dbPort"]
	a.rdsSG, err = a.add("rdsSecurityGroup", ec2.SecurityGroup{
		GroupDescription: "RDS security group",
		SecurityGroupIngress: []ec2.IngressRule{
			tcpFromGroup(db, a.basSG),
			tcpFromGroup(db, a.feSG),
		},
		VpcId: a.vpc,
		Tags:  a.tags(a.prefixed("rdsSecurityGroup")),
	})
	return err
}

// tcpFromCIDR allows a single TCP port from a CIDR block. port is a literal
// or a parameter Ref.
func tcpFromCIDR(port any, cidr string) ec2.IngressRule {
	return ec2.IngressRule{IpProtocol: "tcp", FromPort: port, ToPort: port, CidrIp: cidr}
}

// tcpFromGroup allows a single TCP port from members of another group.
func tcpFromGroup(port any, group intrinsics.Ref) ec2.IngressRule {
	return ec2.IngressRule{IpProtocol: "tcp", FromPort: port, ToPort: port, SourceSecurityGroupId: group}
}
