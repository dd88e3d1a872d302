package stack

import (
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"github.com/lex00/wetwire-webstack-go/intrinsics"
	elbv2 "github.com/lex00/wetwire-webstack-go/resources/elasticloadbalancingv2"
)

// Health check settings shared by every target group.
const (
	healthCheckInterval = 20
	healthCheckTimeout  = 10
	healthyThreshold    = 4
	unhealthyThreshold  = 3

	apiHealthCheckPath = "/api/1.0/robo/version"
)

var (
	protocolHTTP  = string(elbv2types.ProtocolEnumHttp)
	protocolHTTPS = string(elbv2types.ProtocolEnumHttps)
	actionForward = string(elbv2types.ActionTypeEnumForward)
)

func (a *assembler) addLoadBalancer() error {
	alb, err := a.add("applicationLoadBalancer", elbv2.LoadBalancer{
		Name:           a.prefixed("ALB"),
		Scheme:         string(elbv2types.LoadBalancerSchemeEnumInternetFacing),
		Subnets:        []any{a.publicSubnet[0], a.publicSubnet[1]},
		SecurityGroups: []any{a.albSG},
		Tags:           a.tags(a.prefixed("ALB")),
	})
	if err != nil {
		return err
	}

	a.defaultTargetGroup, err = a.add("defaultTargetGroup", a.targetGroup(a.cfg.Project.Tag+"default", "/", "301", 80))
	if err != nil {
		return err
	}
	a.webTargetGroups = []any{a.defaultTargetGroup}

	if _, err := a.add("albHttpListener", elbv2.Listener{
		Port:            80,
		Protocol:        protocolHTTP,
		LoadBalancerArn: alb,
		DefaultActions:  forward(a.defaultTargetGroup),
	}); err != nil {
		return err
	}

	a.httpsListener, err = a.add("albHttpsListener", elbv2.Listener{
		Port:            443,
		Protocol:        protocolHTTPS,
		Certificates:    []elbv2.Certificate{{CertificateArn: a.cfg.SSLCert}},
		LoadBalancerArn: alb,
		DefaultActions:  forward(a.defaultTargetGroup),
	})
	return err
}

// targetGroup builds an HTTP target group in the VPC named and tagged name.
func (a *assembler) targetGroup(name, healthPath, httpCode string, port int) elbv2.TargetGroup {
	return elbv2.TargetGroup{
		Name:                       name,
		HealthCheckPath:            healthPath,
		HealthCheckIntervalSeconds: healthCheckInterval,
		HealthCheckProtocol:        protocolHTTP,
		HealthCheckTimeoutSeconds:  healthCheckTimeout,
		HealthyThresholdCount:      healthyThreshold,
		UnhealthyThresholdCount:    unhealthyThreshold,
		Matcher:                    &elbv2.Matcher{HttpCode: httpCode},
		Port:                       port,
		Protocol:                   protocolHTTP,
		VpcId:                      a.vpc,
		Tags:                       a.tags(name),
	}
}

func forward(targetGroup intrinsics.Ref) []elbv2.Action {
	return []elbv2.Action{{Type: actionForward, TargetGroupArn: targetGroup}}
}
