// Package ec2 contains the AWS::EC2 resource types used by the web stack.
//
// Fields typed any accept either a literal or an intrinsic (Ref, Join,
// AttrRef); everything else is a plain literal.
package ec2

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
)

// VPC is AWS::EC2::VPC.
type VPC struct {
	CidrBlock          any              `json:"CidrBlock,omitempty"`
	EnableDnsHostnames bool             `json:"EnableDnsHostnames,omitempty"`
	EnableDnsSupport   bool             `json:"EnableDnsSupport,omitempty"`
	Tags               []intrinsics.Tag `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (VPC) ResourceType() string { return "AWS::EC2::VPC" }

// Subnet is AWS::EC2::Subnet.
type Subnet struct {
	VpcId               any              `json:"VpcId,omitempty"`
	AvailabilityZone    any              `json:"AvailabilityZone,omitempty"`
	CidrBlock           any              `json:"CidrBlock,omitempty"`
	MapPublicIpOnLaunch bool             `json:"MapPublicIpOnLaunch,omitempty"`
	Tags                []intrinsics.Tag `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Subnet) ResourceType() string { return "AWS::EC2::Subnet" }

// SecurityGroup is AWS::EC2::SecurityGroup.
type SecurityGroup struct {
	GroupDescription     string           `json:"GroupDescription,omitempty"`
	SecurityGroupIngress []IngressRule    `json:"SecurityGroupIngress,omitempty"`
	VpcId                any              `json:"VpcId,omitempty"`
	Tags                 []intrinsics.Tag `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (SecurityGroup) ResourceType() string { return "AWS::EC2::SecurityGroup" }

// IngressRule is one entry of SecurityGroup.SecurityGroupIngress. Exactly one
// of CidrIp and SourceSecurityGroupId is set.
type IngressRule struct {
	IpProtocol            string `json:"IpProtocol,omitempty"`
	FromPort              any    `json:"FromPort,omitempty"`
	ToPort                any    `json:"ToPort,omitempty"`
	CidrIp                string `json:"CidrIp,omitempty"`
	SourceSecurityGroupId any    `json:"SourceSecurityGroupId,omitempty"`
}

// InternetGateway is AWS::EC2::InternetGateway.
type InternetGateway struct {
	Tags []intrinsics.Tag `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (InternetGateway) ResourceType() string { return "AWS::EC2::InternetGateway" }

// VPCGatewayAttachment is AWS::EC2::VPCGatewayAttachment.
type VPCGatewayAttachment struct {
	VpcId             any `json:"VpcId,omitempty"`
	InternetGatewayId any `json:"InternetGatewayId,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (VPCGatewayAttachment) ResourceType() string { return "AWS::EC2::VPCGatewayAttachment" }

// RouteTable is AWS::EC2::RouteTable.
type RouteTable struct {
	VpcId any              `json:"VpcId,omitempty"`
	Tags  []intrinsics.Tag `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (RouteTable) ResourceType() string { return "AWS::EC2::RouteTable" }

// Route is AWS::EC2::Route. Set GatewayId for an internet gateway route or
// NatGatewayId for a NAT route.
type Route struct {
	DestinationCidrBlock any `json:"DestinationCidrBlock,omitempty"`
	GatewayId            any `json:"GatewayId,omitempty"`
	NatGatewayId         any `json:"NatGatewayId,omitempty"`
	RouteTableId         any `json:"RouteTableId,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Route) ResourceType() string { return "AWS::EC2::Route" }

// SubnetRouteTableAssociation is AWS::EC2::SubnetRouteTableAssociation.
type SubnetRouteTableAssociation struct {
	SubnetId     any `json:"SubnetId,omitempty"`
	RouteTableId any `json:"RouteTableId,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (SubnetRouteTableAssociation) ResourceType() string {
	return "AWS::EC2::SubnetRouteTableAssociation"
}

// EIP is AWS::EC2::EIP.
type EIP struct {
	Domain string `json:"Domain,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (EIP) ResourceType() string { return "AWS::EC2::EIP" }

// NatGateway is AWS::EC2::NatGateway.
type NatGateway struct {
	AllocationId any `json:"AllocationId,omitempty"`
	SubnetId     any `json:"SubnetId,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (NatGateway) ResourceType() string { return "AWS::EC2::NatGateway" }

// Instance is AWS::EC2::Instance.
type Instance struct {
	ImageId          string           `json:"ImageId,omitempty"`
	InstanceType     string           `json:"InstanceType,omitempty"`
	KeyName          string           `json:"KeyName,omitempty"`
	SourceDestCheck  *bool            `json:"SourceDestCheck,omitempty"`
	SubnetId         any              `json:"SubnetId,omitempty"`
	SecurityGroupIds []any            `json:"SecurityGroupIds,omitempty"`
	Tags             []intrinsics.Tag `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Instance) ResourceType() string { return "AWS::EC2::Instance" }
