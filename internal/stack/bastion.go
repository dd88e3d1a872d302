package stack

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
	"github.com/lex00/wetwire-webstack-go/resources/ec2"
)

// addBastions launches bas01..basNN in the first public subnet. Source/dest
// checking is off so the hosts can forward traffic.
func (a *assembler) addBastions() error {
	bastion := a.cfg.Bastion
	if bastion == nil {
		a.log.Debug("no bastion section, skipping bastion hosts")
		return nil
	}

	for i := 1; i <= int(bastion.NumNodes); i++ {
		_, err := a.add(nodeName("bas", i), ec2.Instance{
			ImageId:          bastion.AMIID,
			InstanceType:     bastion.EC2InstanceType,
			KeyName:          a.cfg.KeyName,
			SourceDestCheck:  intrinsics.BoolPtr(false),
			SubnetId:         a.publicSubnet[0],
			SecurityGroupIds: []any{a.basSG},
			Tags:             a.tags(nodeName(a.prefixed(bastion.CanonicalName+"-"), i)),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
