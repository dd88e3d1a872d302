// Package autoscaling contains the AWS::AutoScaling resource types for the
// web and api layers.
package autoscaling

// LaunchConfiguration is AWS::AutoScaling::LaunchConfiguration.
type LaunchConfiguration struct {
	ImageId                  string `json:"ImageId,omitempty"`
	InstanceType             string `json:"InstanceType,omitempty"`
	KeyName                  string `json:"KeyName,omitempty"`
	AssociatePublicIpAddress *bool  `json:"AssociatePublicIpAddress,omitempty"`
	SecurityGroups           []any  `json:"SecurityGroups,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (LaunchConfiguration) ResourceType() string { return "AWS::AutoScaling::LaunchConfiguration" }

// AutoScalingGroup is AWS::AutoScaling::AutoScalingGroup.
type AutoScalingGroup struct {
	LaunchConfigurationName any                 `json:"LaunchConfigurationName,omitempty"`
	DesiredCapacity         any                 `json:"DesiredCapacity,omitempty"`
	MinSize                 any                 `json:"MinSize,omitempty"`
	MaxSize                 any                 `json:"MaxSize,omitempty"`
	Cooldown                any                 `json:"Cooldown,omitempty"`
	HealthCheckGracePeriod  any                 `json:"HealthCheckGracePeriod,omitempty"`
	HealthCheckType         string              `json:"HealthCheckType,omitempty"`
	TargetGroupARNs         []any               `json:"TargetGroupARNs,omitempty"`
	VPCZoneIdentifier       []any               `json:"VPCZoneIdentifier,omitempty"`
	MetricsCollection       []MetricsCollection `json:"MetricsCollection,omitempty"`
	Tags                    []Tag               `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (AutoScalingGroup) ResourceType() string { return "AWS::AutoScaling::AutoScalingGroup" }

// MetricsCollection enables group metrics at the given granularity.
type MetricsCollection struct {
	Granularity string `json:"Granularity,omitempty"`
}

// Tag is an auto scaling group tag. Unlike other resources, group tags carry
// PropagateAtLaunch.
type Tag struct {
	Key               string `json:"Key"`
	Value             string `json:"Value"`
	PropagateAtLaunch bool   `json:"PropagateAtLaunch"`
}

// ScalingPolicy is AWS::AutoScaling::ScalingPolicy.
type ScalingPolicy struct {
	AdjustmentType       string `json:"AdjustmentType,omitempty"`
	AutoScalingGroupName any    `json:"AutoScalingGroupName,omitempty"`
	Cooldown             string `json:"Cooldown,omitempty"`
	ScalingAdjustment    int    `json:"ScalingAdjustment,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (ScalingPolicy) ResourceType() string { return "AWS::AutoScaling::ScalingPolicy" }
