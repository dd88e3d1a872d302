package stack

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
	"github.com/lex00/wetwire-webstack-go/resources/ec2"
)

type subnetSpec struct {
	name    string
	display string
	public  bool
}

func (a *assembler) addNetwork() error {
	var err error
	a.vpc, err = a.add("VPC", ec2.VPC{
		CidrBlock:          a.params["VpcCidr"],
		EnableDnsSupport:   true,
		EnableDnsHostnames: true,
		Tags:               a.tags(a.prefixed(a.cfg.Project.Env + "-VPC")),
	})
	if err != nil {
		return err
	}

	groups := []struct {
		refs  *[2]intrinsics.Ref
		specs [2]subnetSpec
	}{
		{&a.publicSubnet, [2]subnetSpec{
			{"publicSubnet01", "PublicSubnet-01", true},
			{"publicSubnet02", "PublicSubnet-02", true},
		}},
		{&a.webSubnet, [2]subnetSpec{
			{"privateWebSubnet01", "PrivateWebSubnet-01", false},
			{"privateWebSubnet02", "PrivateWebSubnet-02", false},
		}},
		{&a.dbSubnet, [2]subnetSpec{
			{"privateDbSubnet01", "PrivateDbSubnet-01", false},
			{"privateDbSubnet02", "PrivateDbSubnet-02", false},
		}},
	}

	azs := [2]intrinsics.Ref{a.params["AvailabilityZone01"], a.params["AvailabilityZone02"]}
	for _, g := range groups {
		for i, spec := range g.specs {
			g.refs[i], err = a.add(spec.name, ec2.Subnet{
				VpcId:               a.vpc,
				AvailabilityZone:    azs[i],
				CidrBlock:           a.params[cidrParameter(spec.name)],
				MapPublicIpOnLaunch: spec.public,
				Tags:                a.tags(a.prefixed(spec.display)),
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// cidrParameter names the CIDR parameter of a subnet. The public subnet
// parameters are capitalised, the private ones are not.
func cidrParameter(subnet string) string {
	switch subnet {
	case "publicSubnet01":
		return "PublicSubnet01Cidr"
	case "publicSubnet02":
		return "PublicSubnet02Cidr"
	default:
		return subnet + "Cidr"
	}
}
