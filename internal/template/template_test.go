package template

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	wetwire "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/intrinsics"
	"github.com/lex00/wetwire-webstack-go/resources/ec2"
)

func TestBuilder_AddResource(t *testing.T) {
	b := NewBuilder("acme stack")

	cidr, err := b.AddParameter("VpcCidr", wetwire.Parameter{Type: "String", Default: "10.0.0.0/16"})
	require.NoError(t, err)
	assert.Equal(t, "VpcCidr", cidr.LogicalName)

	vpc, err := b.AddResource("VPC", ec2.VPC{CidrBlock: cidr, EnableDnsSupport: true})
	require.NoError(t, err)
	assert.Equal(t, intrinsics.Ref{LogicalName: "VPC"}, vpc)

	tmpl := b.Build()
	assert.Equal(t, "2010-09-09", tmpl.AWSTemplateFormatVersion)
	assert.Equal(t, "acme stack", tmpl.Description)
	require.Contains(t, tmpl.Resources, "VPC")

	def := tmpl.Resources["VPC"]
	assert.Equal(t, "AWS::EC2::VPC", def.Type)
	assert.Equal(t, map[string]any{"Ref": "VpcCidr"}, def.Properties["CidrBlock"])
	assert.Equal(t, true, def.Properties["EnableDnsSupport"])
	assert.NotContains(t, def.Properties, "EnableDnsHostnames")
}

func TestBuilder_EmptyPropertiesOmitted(t *testing.T) {
	b := NewBuilder("")
	_, err := b.AddResource("InternetGateway", ec2.InternetGateway{})
	require.NoError(t, err)

	assert.Nil(t, b.Build().Resources["InternetGateway"].Properties)
}

func TestBuilder_ParameterDefaultsToString(t *testing.T) {
	b := NewBuilder("")
	_, err := b.AddParameter("tomcatPort", wetwire.Parameter{Default: "80"})
	require.NoError(t, err)

	assert.Equal(t, "String", b.Build().Parameters["tomcatPort"].Type)
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(b *Builder) error
		wantErr error
	}{
		{
			name: "duplicate resource",
			setup: func(b *Builder) error {
				if _, err := b.AddResource("InternetGateway", ec2.InternetGateway{}); err != nil {
					return err
				}
				_, err := b.AddResource("InternetGateway", ec2.InternetGateway{})
				return err
			},
			wantErr: ErrDuplicateName,
		},
		{
			name: "resource shadows parameter",
			setup: func(b *Builder) error {
				if _, err := b.AddParameter("VPC", wetwire.Parameter{}); err != nil {
					return err
				}
				_, err := b.AddResource("VPC", ec2.VPC{})
				return err
			},
			wantErr: ErrDuplicateName,
		},
		{
			name: "parameter shadows resource",
			setup: func(b *Builder) error {
				if _, err := b.AddResource("VPC", ec2.VPC{}); err != nil {
					return err
				}
				_, err := b.AddParameter("VPC", wetwire.Parameter{})
				return err
			},
			wantErr: ErrDuplicateName,
		},
		{
			name: "ref to unknown name",
			setup: func(b *Builder) error {
				_, err := b.AddResource("publicSubnet01", ec2.Subnet{VpcId: intrinsics.Ref{LogicalName: "VPC"}})
				return err
			},
			wantErr: ErrDanglingReference,
		},
		{
			name: "getatt to unknown name",
			setup: func(b *Builder) error {
				_, err := b.AddResource("natGateway", ec2.NatGateway{
					AllocationId: wetwire.AttrRef{Resource: "natElasticIp", Attribute: "AllocationId"},
				})
				return err
			},
			wantErr: ErrDanglingReference,
		},
		{
			name: "self reference",
			setup: func(b *Builder) error {
				_, err := b.AddResource("publicRouteTable", ec2.RouteTable{VpcId: intrinsics.Ref{LogicalName: "publicRouteTable"}})
				return err
			},
			wantErr: ErrDanglingReference,
		},
		{
			name: "non alphanumeric name",
			setup: func(b *Builder) error {
				_, err := b.AddResource("web-tg", ec2.InternetGateway{})
				return err
			},
			wantErr: ErrInvalidName,
		},
		{
			name: "empty name",
			setup: func(b *Builder) error {
				_, err := b.AddParameter("", wetwire.Parameter{})
				return err
			},
			wantErr: ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup(NewBuilder(""))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestBuilder_FailedAddLeavesNoTrace(t *testing.T) {
	b := NewBuilder("")
	_, err := b.AddResource("natGateway", ec2.NatGateway{SubnetId: intrinsics.Ref{LogicalName: "publicSubnet01"}})
	require.Error(t, err)

	assert.Zero(t, b.Len())
	assert.NotContains(t, b.Build().Resources, "natGateway")

	_, err = b.AddResource("natGateway", ec2.NatGateway{})
	assert.NoError(t, err)
}

func TestBuilder_PseudoParameters(t *testing.T) {
	b := NewBuilder("")
	_, err := b.AddResource("publicSubnet01", ec2.Subnet{AvailabilityZone: intrinsics.Ref{LogicalName: "AWS::Region"}})
	assert.NoError(t, err)
}

func TestBuilder_Attr(t *testing.T) {
	b := NewBuilder("")
	eip, err := b.AddResource("natElasticIp", ec2.EIP{Domain: "vpc"})
	require.NoError(t, err)

	alloc := b.Attr(eip, "AllocationId")
	assert.Equal(t, wetwire.AttrRef{Resource: "natElasticIp", Attribute: "AllocationId"}, alloc)

	_, err = b.AddResource("natGateway", ec2.NatGateway{AllocationId: alloc})
	require.NoError(t, err)

	props := b.Build().Resources["natGateway"].Properties
	assert.Equal(t, map[string]any{"Fn::GetAtt": []any{"natElasticIp", "AllocationId"}}, props["AllocationId"])
}

func TestBuilder_NamesInsertionOrder(t *testing.T) {
	b := NewBuilder("")
	_, err := b.AddParameter("VpcCidr", wetwire.Parameter{})
	require.NoError(t, err)
	for _, name := range []string{"VPC", "InternetGateway", "natElasticIp"} {
		_, err := b.AddResource(name, ec2.InternetGateway{})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"VPC", "InternetGateway", "natElasticIp"}, b.Names())
	assert.Equal(t, 3, b.Len())
}

func TestBuilder_BuildIsSnapshot(t *testing.T) {
	b := NewBuilder("")
	_, err := b.AddResource("VPC", ec2.VPC{})
	require.NoError(t, err)

	tmpl := b.Build()
	_, err = b.AddResource("InternetGateway", ec2.InternetGateway{})
	require.NoError(t, err)

	assert.Len(t, tmpl.Resources, 1)
	assert.Len(t, b.Build().Resources, 2)
}

func TestRefs(t *testing.T) {
	props := map[string]any{
		"VpcId": map[string]any{"Ref": "VPC"},
		"Rules": []any{
			map[string]any{"SourceSecurityGroupId": map[string]any{"Ref": "basSecurityGroup"}},
			map[string]any{"SourceSecurityGroupId": map[string]any{"Ref": "basSecurityGroup"}},
		},
		"AllocationId": map[string]any{"Fn::GetAtt": []any{"natElasticIp", "AllocationId"}},
		"Name":         map[string]any{"Fn::Join": []any{"", []any{"acme", map[string]any{"Ref": "AWS::Region"}}}},
		"Plain":        "Ref",
	}

	refs := Refs(props)
	assert.Equal(t, []Reference{
		{Target: "AWS::Region", Kind: KindRef},
		{Target: "VPC", Kind: KindRef},
		{Target: "basSecurityGroup", Kind: KindRef},
		{Target: "natElasticIp", Kind: KindGetAtt},
	}, refs)

	assert.Equal(t, []string{"AWS::Region", "VPC", "basSecurityGroup", "natElasticIp"}, References(props))
	assert.Empty(t, References(map[string]any{"CidrIp": "0.0.0.0/0"}))
}

func TestToJSON(t *testing.T) {
	b := NewBuilder("acme <prod> & friends")
	_, err := b.AddResource("natElasticIp", ec2.EIP{Domain: "vpc"})
	require.NoError(t, err)

	data, err := ToJSON(b.Build())
	require.NoError(t, err)

	assert.Contains(t, string(data), "\n  \"AWSTemplateFormatVersion\"")
	assert.Contains(t, string(data), "acme <prod> & friends")

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "acme <prod> & friends", parsed["Description"])
}

func TestToJSON_Deterministic(t *testing.T) {
	build := func() []byte {
		b := NewBuilder("")
		for _, name := range []string{"privateDbSubnet02", "VPC", "albSecurityGroup", "natElasticIp"} {
			_, err := b.AddResource(name, ec2.EIP{Domain: "vpc"})
			require.NoError(t, err)
		}
		data, err := ToJSON(b.Build())
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, build(), build())
}

func TestToYAML(t *testing.T) {
	b := NewBuilder("acme stack")
	_, err := b.AddParameter("dbPort", wetwire.Parameter{Type: "String", Default: "3306"})
	require.NoError(t, err)
	_, err = b.AddResource("natElasticIp", ec2.EIP{Domain: "vpc"})
	require.NoError(t, err)

	data, err := ToYAML(b.Build())
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Equal(t, "2010-09-09", parsed["AWSTemplateFormatVersion"])

	resources := parsed["Resources"].(map[string]any)
	eip := resources["natElasticIp"].(map[string]any)
	assert.Equal(t, "AWS::EC2::EIP", eip["Type"])
	assert.Equal(t, map[string]any{"Domain": "vpc"}, eip["Properties"])
}
