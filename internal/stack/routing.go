package stack

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
	"github.com/lex00/wetwire-webstack-go/resources/ec2"
)

func (a *assembler) addRouting() error {
	igw, err := a.add("InternetGateway", ec2.InternetGateway{
		Tags: a.tags(a.prefixed("IGW")),
	})
	if err != nil {
		return err
	}
	if _, err := a.add("AttachInternetGatewayToVPC", ec2.VPCGatewayAttachment{
		VpcId:             a.vpc,
		InternetGatewayId: igw,
	}); err != nil {
		return err
	}

	publicRT, err := a.add("publicRouteTable", ec2.RouteTable{
		VpcId: a.vpc,
		Tags:  a.tags(a.prefixed("PublicRouteTable")),
	})
	if err != nil {
		return err
	}
	if err := a.associate(publicRT, []association{
		{"publicSubnet01Association", a.publicSubnet[0]},
		{"publicSubnet02Association", a.publicSubnet[1]},
	}); err != nil {
		return err
	}
	if _, err := a.add("AttachInternetGatewayToPublicRouteTable", ec2.Route{
		DestinationCidrBlock: a.params["InternetGatewayCidr"],
		GatewayId:            igw,
		RouteTableId:         publicRT,
	}); err != nil {
		return err
	}

	natRT, err := a.add("natRouteTable", ec2.RouteTable{
		VpcId: a.vpc,
		Tags:  a.tags(a.prefixed("NatRouteTable")),
	})
	if err != nil {
		return err
	}
	if err := a.associate(natRT, []association{
		{"natRouteWeb01Association", a.webSubnet[0]},
		{"natRouteWeb02Association", a.webSubnet[1]},
		{"natRouteDb01Association", a.dbSubnet[0]},
		{"natRouteDb02Association", a.dbSubnet[1]},
	}); err != nil {
		return err
	}

	eip, err := a.add("natElasticIp", ec2.EIP{Domain: "vpc"})
	if err != nil {
		return err
	}
	nat, err := a.add("natGateway", ec2.NatGateway{
		AllocationId: a.b.Attr(eip, "AllocationId"),
		SubnetId:     a.publicSubnet[0],
	})
	if err != nil {
		return err
	}
	_, err = a.add("AttachNatGatewayToPrivateRouteTable", ec2.Route{
		DestinationCidrBlock: a.params["NatGatewayCidr"],
		NatGatewayId:         nat,
		RouteTableId:         natRT,
	})
	return err
}

type association struct {
	name   string
	subnet intrinsics.Ref
}

// associate links each subnet to the route table.
func (a *assembler) associate(routeTable intrinsics.Ref, assocs []association) error {
	for _, assoc := range assocs {
		if _, err := a.add(assoc.name, ec2.SubnetRouteTableAssociation{
			SubnetId:     assoc.subnet,
			RouteTableId: routeTable,
		}); err != nil {
			return err
		}
	}
	return nil
}
