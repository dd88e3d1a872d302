package stack

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
	"github.com/lex00/wetwire-webstack-go/internal/config"
	"github.com/lex00/wetwire-webstack-go/resources/autoscaling"
	"github.com/lex00/wetwire-webstack-go/resources/cloudwatch"
)

const (
	scalingCooldown = "360"
	alarmPeriod     = 1800
)

// alarmSpec is one half of a layer's scale-out/scale-in alarm pair.
type alarmSpec struct {
	name        string
	description string
	threshold   float64
	comparison  string
}

// layerSpec parameterises the web and api auto scaling groups. The web layer
// scales on request count, the api layer on available memory, so their
// comparison operators point in opposite directions.
type layerSpec struct {
	prefix       string
	layer        config.Layer
	targetGroups func() []any
	namespace    string
	metric       string
	scaleOut     alarmSpec
	scaleIn      alarmSpec
}

func (a *assembler) layerSpecs() []layerSpec {
	return []layerSpec{
		{
			prefix:       "web",
			layer:        a.cfg.Web,
			targetGroups: func() []any { return a.webTargetGroups },
			namespace:    "AWS/SQS",
			metric:       "RequestCount",
			scaleOut: alarmSpec{
				name:        "webHighHttpRequestsAlarm",
				description: "Alarm if more than 1000 http requests",
				threshold:   1000,
				comparison:  cloudwatch.GreaterThanThreshold,
			},
			scaleIn: alarmSpec{
				name:        "webLowHttpRequestsAlarm",
				description: "Alarm if less than 1000 http requests",
				threshold:   1000,
				comparison:  cloudwatch.LessThanThreshold,
			},
		},
		{
			prefix:       "api",
			layer:        a.cfg.API,
			targetGroups: func() []any { return a.apiTargetGroups },
			namespace:    "System/Linux",
			metric:       "MemoryAvailable",
			scaleOut: alarmSpec{
				name:        "apiHighMemoryUsageAlarm",
				description: "Alarm if less than 512 MB of available memory",
				threshold:   512,
				comparison:  cloudwatch.LessThanThreshold,
			},
			scaleIn: alarmSpec{
				name:        "apiLowMemoryUsageAlarm",
				description: "Alarm if more than 2048 MB of available memory",
				threshold:   2048,
				comparison:  cloudwatch.GreaterThanThreshold,
			},
		},
	}
}

func (a *assembler) addAutoScaling() error {
	for _, spec := range a.layerSpecs() {
		if err := a.addLayer(spec); err != nil {
			return err
		}
	}
	return nil
}

func (a *assembler) addLayer(spec layerSpec) error {
	p := func(knob string) intrinsics.Ref { return a.params[spec.prefix+"Asg"+knob] }

	launchConfig, err := a.add(spec.prefix+"EC2LaunchConfiguration", autoscaling.LaunchConfiguration{
		ImageId:                  spec.layer.AMIID,
		InstanceType:             spec.layer.EC2InstanceType,
		KeyName:                  a.cfg.KeyName,
		AssociatePublicIpAddress: intrinsics.BoolPtr(false),
		SecurityGroups:           []any{a.feSG},
	})
	if err != nil {
		return err
	}

	group, err := a.add(spec.prefix+"AutoScalingGroup", autoscaling.AutoScalingGroup{
		LaunchConfigurationName: launchConfig,
		DesiredCapacity:         p("Capacity"),
		MinSize:                 p("MinSize"),
		MaxSize:                 p("MaxSize"),
		Cooldown:                p("Cooldown"),
		HealthCheckGracePeriod:  p("HealthGrace"),
		HealthCheckType:         "EC2",
		TargetGroupARNs:         spec.targetGroups(),
		VPCZoneIdentifier:       []any{a.webSubnet[0], a.webSubnet[1]},
		MetricsCollection:       []autoscaling.MetricsCollection{{Granularity: "1Minute"}},
		Tags:                    a.propagatedTags(a.prefixed(spec.layer.CanonicalName)),
	})
	if err != nil {
		return err
	}

	out, err := a.add(spec.prefix+"AsgScalingOut", scalingPolicy(group, 1))
	if err != nil {
		return err
	}
	in, err := a.add(spec.prefix+"AsgScalingIn", scalingPolicy(group, -1))
	if err != nil {
		return err
	}

	for _, alarm := range []struct {
		alarmSpec
		policy intrinsics.Ref
	}{
		{spec.scaleOut, out},
		{spec.scaleIn, in},
	} {
		if _, err := a.add(alarm.name, cloudwatch.Alarm{
			AlarmDescription:   alarm.description,
			Namespace:          spec.namespace,
			MetricName:         spec.metric,
			Dimensions:         []cloudwatch.Dimension{{Name: "AutoScalingGroupName", Value: group}},
			Statistic:          "Average",
			Period:             alarmPeriod,
			EvaluationPeriods:  1,
			Threshold:          alarm.threshold,
			ComparisonOperator: alarm.comparison,
			AlarmActions:       []any{alarm.policy},
		}); err != nil {
			return err
		}
	}
	return nil
}

func scalingPolicy(group intrinsics.Ref, adjustment int) autoscaling.ScalingPolicy {
	return autoscaling.ScalingPolicy{
		AdjustmentType:       "ChangeInCapacity",
		AutoScalingGroupName: group,
		Cooldown:             scalingCooldown,
		ScalingAdjustment:    adjustment,
	}
}

// propagatedTags returns the standard tags with PropagateAtLaunch set, so
// instances launched by the group inherit them.
func (a *assembler) propagatedTags(name string) []autoscaling.Tag {
	values := a.tagValues(name)
	tags := make([]autoscaling.Tag, 0, len(values))
	for _, key := range sortedKeys(values) {
		tags = append(tags, autoscaling.Tag{Key: key, Value: values[key], PropagateAtLaunch: true})
	}
	return tags
}
