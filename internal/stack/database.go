package stack

import (
	"fmt"
	"strconv"

	"github.com/lex00/wetwire-webstack-go/intrinsics"
	"github.com/lex00/wetwire-webstack-go/resources/rds"
)

const (
	dbName                = "PlanPlus"
	dbEngine              = "MySQL"
	dbEngineVersion       = "5.7.19"
	dbStorageType         = "gp2"
	backupRetentionPeriod = 35
)

// addDatabase adds the subnet group, which exists even without an rds
// section, then rds01..rdsNN.
func (a *assembler) addDatabase() error {
	subnetGroup, err := a.add("privateDbSubnetGroup", rds.DBSubnetGroup{
		DBSubnetGroupDescription: "Subnets available for the RDS DB Instances",
		SubnetIds:                []any{a.dbSubnet[0], a.dbSubnet[1]},
	})
	if err != nil {
		return err
	}

	db := a.cfg.RDS
	if db == nil {
		a.log.Debug("no rds section, skipping database instances")
		return nil
	}

	if len(db.AllocationSize) < int(db.NumNodes) {
		return fmt.Errorf("rds: %d nodes but %d allocation sizes", db.NumNodes, len(db.AllocationSize))
	}

	for i := 1; i <= int(db.NumNodes); i++ {
		identifier := nodeName(a.prefixed(db.CanonicalName+"-"), i)
		_, err := a.add(nodeName("rds", i), rds.DBInstance{
			DBName:                  dbName,
			DBInstanceIdentifier:    identifier,
			AllocatedStorage:        strconv.Itoa(int(db.AllocationSize[i-1])),
			DBInstanceClass:         db.EC2InstanceType,
			StorageType:             dbStorageType,
			Engine:                  dbEngine,
			EngineVersion:           dbEngineVersion,
			AutoMinorVersionUpgrade: intrinsics.BoolPtr(false),
			KmsKeyId:                db.MasterKey,
			MasterUsername:          masterUsername(i),
			MasterUserPassword:      db.MasterPassword,
			StorageEncrypted:        true,
			DBParameterGroupName:    db.ParameterGroup,
			DBSubnetGroupName:       subnetGroup,
			VPCSecurityGroups:       []any{a.rdsSG},
			PubliclyAccessible:      intrinsics.BoolPtr(false),
			MultiAZ:                 true,
			BackupRetentionPeriod:   backupRetentionPeriod,
			Tags:                    a.tags(identifier),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// masterUsername is rdsgroup{N}master with an unpadded node index.
func masterUsername(i int) intrinsics.Join {
	return intrinsics.Join{Delimiter: "", Values: []any{"rdsgroup", strconv.Itoa(i), "master"}}
}
