package stack

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
	"github.com/lex00/wetwire-webstack-go/internal/config"
	elbv2 "github.com/lex00/wetwire-webstack-go/resources/elasticloadbalancingv2"
)

// addTenants fans out target groups and HTTPS listener rules per tenant, in
// document order. Priorities start at 1; each tenant takes two, API rule
// first.
func (a *assembler) addTenants() error {
	priority := 1
	for _, cust := range a.cfg.Customers {
		next, err := a.addTenant(cust, priority)
		if err != nil {
			return err
		}
		a.log.Debug("added tenant", "tenant", cust.Name, "priorities", []int{priority, next - 1})
		priority = next
	}
	return nil
}

// addTenant adds one tenant starting at priority and returns the next free
// priority.
func (a *assembler) addTenant(cust config.Customer, priority int) (int, error) {
	port := int(cust.Port)

	web, err := a.add(cust.CanonicalName+"WebTargetGroup",
		a.targetGroup(a.prefixed(cust.Name+"-webLayer"), "/", "200", port))
	if err != nil {
		return 0, err
	}
	a.webTargetGroups = append(a.webTargetGroups, web)

	api, err := a.add(cust.CanonicalName+"ApiTargetGroup",
		a.targetGroup(a.prefixed(cust.Name+"-apiLayer"), apiHealthCheckPath, "200", port))
	if err != nil {
		return 0, err
	}
	a.apiTargetGroups = append(a.apiTargetGroups, api)

	host := a.hostHeader(cust.Name)

	if _, err := a.add(cust.CanonicalName+"apiListenerRule", elbv2.ListenerRule{
		ListenerArn: a.httpsListener,
		Conditions: []elbv2.Condition{
			host,
			{Field: "path-pattern", Values: []any{"/api/*"}},
		},
		Actions:  forward(api),
		Priority: priority,
	}); err != nil {
		return 0, err
	}
	priority++

	if _, err := a.add(cust.CanonicalName+"webListenerRule", elbv2.ListenerRule{
		ListenerArn: a.httpsListener,
		Conditions:  []elbv2.Condition{host},
		Actions:     forward(web),
		Priority:    priority,
	}); err != nil {
		return 0, err
	}
	priority++

	return priority, nil
}

// hostHeader matches {tenant}.{domain}.
func (a *assembler) hostHeader(tenant string) elbv2.Condition {
	return elbv2.Condition{
		Field: "host-header",
		Values: []any{intrinsics.Join{
			Delimiter: "",
			Values:    []any{tenant, ".", a.cfg.Domain},
		}},
	}
}
