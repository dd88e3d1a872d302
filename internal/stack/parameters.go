package stack

import (
	wetwire "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/intrinsics"
)

type parameterSpec struct {
	name string
	wetwire.Parameter
}

// parameterSpecs lists the template knobs in declaration order. Defaults
// that depend on the description (availability zones) are filled in by
// addParameters.
func (a *assembler) parameterSpecs() []parameterSpec {
	str := func(name, desc, def string) parameterSpec {
		return parameterSpec{name, wetwire.Parameter{Type: "String", Description: desc, Default: def}}
	}
	num := func(name, desc, def string) parameterSpec {
		return parameterSpec{name, wetwire.Parameter{Type: "Number", Description: desc, Default: def}}
	}

	specs := []parameterSpec{
		str("VpcCidr", "VPC CIDR", "10.0.0.0/16"),
		str("NatGatewayCidr", "Nat Gateway CIDR", "0.0.0.0/0"),
		str("InternetGatewayCidr", "Internet Gateway CIDR", "0.0.0.0/0"),
		str("PublicSubnet01Cidr", "PublicSubnet01 CIDR", "10.0.0.0/24"),
		str("PublicSubnet02Cidr", "PublicSubnet02 CIDR", "10.0.1.0/24"),
		str("privateWebSubnet01Cidr", "PrivateWebSubnet01 CIDR", "10.0.2.0/24"),
		str("privateWebSubnet02Cidr", "PrivateWebSubnet02 CIDR", "10.0.3.0/24"),
		str("privateDbSubnet01Cidr", "PrivateDbSubnet01 CIDR", "10.0.4.0/24"),
		str("privateDbSubnet02Cidr", "PrivateDbSubnet02 CIDR", "10.0.5.0/24"),
		str("AvailabilityZone01", "VPC AvailabilityZone01", a.cfg.Project.AZ1),
		str("AvailabilityZone02", "VPC AvailabilityZone02", a.cfg.Project.AZ2),
		str("tomcatPort", "TCP/IP port of the web server", "80"),
		str("dbPort", "TCP/IP port of the database server", "3306"),
	}

	for _, layer := range []string{"web", "api"} {
		specs = append(specs,
			num(layer+"AsgCapacity", "Desired capacity of AutoScalingGroup", "2"),
			num(layer+"AsgMinSize", "Minimum size of AutoScalingGroup", "2"),
			num(layer+"AsgMaxSize", "Maximum size of AutoScalingGroup", "5"),
			num(layer+"AsgCooldown", "Cooldown before starting/stopping another instance", "360"),
			num(layer+"AsgHealthGrace", "Wait before starting/stopping another instance", "360"),
		)
	}
	return specs
}

func (a *assembler) addParameters() error {
	specs := a.parameterSpecs()
	a.params = make(map[string]intrinsics.Ref, len(specs))
	for _, spec := range specs {
		ref, err := a.b.AddParameter(spec.name, spec.Parameter)
		if err != nil {
			return err
		}
		a.params[spec.name] = ref
	}
	return nil
}
