package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wetwire "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/intrinsics"
	"github.com/lex00/wetwire-webstack-go/resources/ec2"
	"github.com/lex00/wetwire-webstack-go/resources/elasticloadbalancingv2"
)

type testGroup struct {
	GroupName string            `json:"GroupName,omitempty"`
	Rules     []testRule        `json:"Rules,omitempty"`
	Matcher   *testMatcher      `json:"Matcher,omitempty"`
	Labels    map[string]string `json:"Labels,omitempty"`
	Enabled   *bool             `json:"Enabled,omitempty"`
	Port      any               `json:"Port,omitempty"`
	internal  string
}

type testRule struct {
	FromPort int    `json:"FromPort"`
	CidrIp   string `json:"CidrIp"`
}

type testMatcher struct {
	HttpCode string `json:"HttpCode"`
}

func TestResource_SimpleStruct(t *testing.T) {
	props, err := Resource(testGroup{GroupName: "fe", internal: "hidden"})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"GroupName": "fe"}, props)
}

func TestResource_NestedValues(t *testing.T) {
	group := testGroup{
		GroupName: "bastion",
		Rules: []testRule{
			{FromPort: 22, CidrIp: "10.1.0.0/16"},
			{FromPort: 22, CidrIp: "192.168.0.0/24"},
		},
		Matcher: &testMatcher{HttpCode: "301"},
		Labels:  map[string]string{"layer": "web"},
	}

	props, err := Resource(group)
	require.NoError(t, err)

	rules := props["Rules"].([]any)
	require.Len(t, rules, 2)
	assert.Equal(t, map[string]any{"FromPort": int64(22), "CidrIp": "192.168.0.0/24"}, rules[1])
	assert.Equal(t, map[string]any{"HttpCode": "301"}, props["Matcher"])
	assert.Equal(t, map[string]any{"layer": "web"}, props["Labels"])
}

func TestResource_OmitsZeroValues(t *testing.T) {
	props, err := Resource(&testGroup{})
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestResource_KeepsExplicitFalse(t *testing.T) {
	props, err := Resource(testGroup{Enabled: intrinsics.BoolPtr(false), Port: 0})
	require.NoError(t, err)

	assert.Equal(t, false, props["Enabled"])
	assert.Equal(t, int64(0), props["Port"])
}

func TestResource_Intrinsics(t *testing.T) {
	tests := []struct {
		name     string
		port     any
		expected any
	}{
		{
			name:     "ref",
			port:     intrinsics.Ref{LogicalName: "tomcatPort"},
			expected: map[string]any{"Ref": "tomcatPort"},
		},
		{
			name:     "getatt",
			port:     wetwire.AttrRef{Resource: "natElasticIp", Attribute: "AllocationId"},
			expected: map[string]any{"Fn::GetAtt": []any{"natElasticIp", "AllocationId"}},
		},
		{
			name:     "join",
			port:     intrinsics.Join{Delimiter: "", Values: []any{"acme", ".", "example.com"}},
			expected: map[string]any{"Fn::Join": []any{"", []any{"acme", ".", "example.com"}}},
		},
		{
			name:     "literal",
			port:     8080,
			expected: int64(8080),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props, err := Resource(testGroup{Port: tt.port})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, props["Port"])
		})
	}
}

func TestResource_ResourceTypes(t *testing.T) {
	vpc := intrinsics.Ref{LogicalName: "VPC"}

	props, err := Resource(ec2.SecurityGroup{
		GroupDescription: "RDS security group",
		VpcId:            vpc,
		SecurityGroupIngress: []ec2.IngressRule{{
			IpProtocol:            "tcp",
			FromPort:              intrinsics.Ref{LogicalName: "dbPort"},
			ToPort:                intrinsics.Ref{LogicalName: "dbPort"},
			SourceSecurityGroupId: intrinsics.Ref{LogicalName: "basSecurityGroup"},
		}},
	})
	require.NoError(t, err)

	rule := props["SecurityGroupIngress"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"Ref": "basSecurityGroup"}, rule["SourceSecurityGroupId"])
	assert.NotContains(t, rule, "CidrIp")
	assert.Equal(t, map[string]any{"Ref": "VPC"}, props["VpcId"])

	props, err = Resource(elasticloadbalancingv2.TargetGroup{
		Name:    "acme-default",
		Matcher: &elasticloadbalancingv2.Matcher{HttpCode: "301"},
		Port:    80,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"HttpCode": "301"}, props["Matcher"])
	assert.Equal(t, int64(80), props["Port"])
}

func TestResource_RejectsNonStruct(t *testing.T) {
	_, err := Resource("VPC")
	assert.Error(t, err)

	var group *testGroup
	_, err = Resource(group)
	assert.Error(t, err)
}
