// Package elasticloadbalancingv2 contains the AWS::ElasticLoadBalancingV2
// resource types for the application load balancer and its routing.
package elasticloadbalancingv2

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
)

// LoadBalancer is AWS::ElasticLoadBalancingV2::LoadBalancer.
type LoadBalancer struct {
	Name           string           `json:"Name,omitempty"`
	Scheme         string           `json:"Scheme,omitempty"`
	Subnets        []any            `json:"Subnets,omitempty"`
	SecurityGroups []any            `json:"SecurityGroups,omitempty"`
	Tags           []intrinsics.Tag `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (LoadBalancer) ResourceType() string { return "AWS::ElasticLoadBalancingV2::LoadBalancer" }

// TargetGroup is AWS::ElasticLoadBalancingV2::TargetGroup.
type TargetGroup struct {
	Name                       string           `json:"Name,omitempty"`
	HealthCheckPath            string           `json:"HealthCheckPath,omitempty"`
	HealthCheckIntervalSeconds int              `json:"HealthCheckIntervalSeconds,omitempty"`
	HealthCheckProtocol        string           `json:"HealthCheckProtocol,omitempty"`
	HealthCheckTimeoutSeconds  int              `json:"HealthCheckTimeoutSeconds,omitempty"`
	HealthyThresholdCount      int              `json:"HealthyThresholdCount,omitempty"`
	UnhealthyThresholdCount    int              `json:"UnhealthyThresholdCount,omitempty"`
	Matcher                    *Matcher         `json:"Matcher,omitempty"`
	Port                       int              `json:"Port,omitempty"`
	Protocol                   string           `json:"Protocol,omitempty"`
	VpcId                      any              `json:"VpcId,omitempty"`
	Tags                       []intrinsics.Tag `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (TargetGroup) ResourceType() string { return "AWS::ElasticLoadBalancingV2::TargetGroup" }

// Matcher selects the HTTP codes a healthy target answers with.
type Matcher struct {
	HttpCode string `json:"HttpCode,omitempty"`
}

// Listener is AWS::ElasticLoadBalancingV2::Listener.
type Listener struct {
	Port            int           `json:"Port,omitempty"`
	Protocol        string        `json:"Protocol,omitempty"`
	Certificates    []Certificate `json:"Certificates,omitempty"`
	LoadBalancerArn any           `json:"LoadBalancerArn,omitempty"`
	DefaultActions  []Action      `json:"DefaultActions,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Listener) ResourceType() string { return "AWS::ElasticLoadBalancingV2::Listener" }

// Certificate attaches an ACM certificate to an HTTPS listener.
type Certificate struct {
	CertificateArn string `json:"CertificateArn,omitempty"`
}

// Action is a listener or rule action.
type Action struct {
	Type           string `json:"Type,omitempty"`
	TargetGroupArn any    `json:"TargetGroupArn,omitempty"`
}

// ListenerRule is AWS::ElasticLoadBalancingV2::ListenerRule.
type ListenerRule struct {
	ListenerArn any         `json:"ListenerArn,omitempty"`
	Conditions  []Condition `json:"Conditions,omitempty"`
	Actions     []Action    `json:"Actions,omitempty"`
	Priority    int         `json:"Priority,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (ListenerRule) ResourceType() string { return "AWS::ElasticLoadBalancingV2::ListenerRule" }

// Condition is a listener rule match (host-header, path-pattern).
type Condition struct {
	Field  string `json:"Field,omitempty"`
	Values []any  `json:"Values,omitempty"`
}
