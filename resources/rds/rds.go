// Package rds contains the AWS::RDS resource types for the database tier.
package rds

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
)

// DBSubnetGroup is AWS::RDS::DBSubnetGroup.
type DBSubnetGroup struct {
	DBSubnetGroupDescription string `json:"DBSubnetGroupDescription,omitempty"`
	SubnetIds                []any  `json:"SubnetIds,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (DBSubnetGroup) ResourceType() string { return "AWS::RDS::DBSubnetGroup" }

// DBInstance is AWS::RDS::DBInstance.
type DBInstance struct {
	DBName                  string           `json:"DBName,omitempty"`
	DBInstanceIdentifier    string           `json:"DBInstanceIdentifier,omitempty"`
	AllocatedStorage        string           `json:"AllocatedStorage,omitempty"`
	DBInstanceClass         string           `json:"DBInstanceClass,omitempty"`
	StorageType             string           `json:"StorageType,omitempty"`
	Engine                  string           `json:"Engine,omitempty"`
	EngineVersion           string           `json:"EngineVersion,omitempty"`
	AutoMinorVersionUpgrade *bool            `json:"AutoMinorVersionUpgrade,omitempty"`
	KmsKeyId                string           `json:"KmsKeyId,omitempty"`
	MasterUsername          any              `json:"MasterUsername,omitempty"`
	MasterUserPassword      string           `json:"MasterUserPassword,omitempty"`
	StorageEncrypted        bool             `json:"StorageEncrypted,omitempty"`
	DBParameterGroupName    string           `json:"DBParameterGroupName,omitempty"`
	DBSubnetGroupName       any              `json:"DBSubnetGroupName,omitempty"`
	VPCSecurityGroups       []any            `json:"VPCSecurityGroups,omitempty"`
	PubliclyAccessible      *bool            `json:"PubliclyAccessible,omitempty"`
	MultiAZ                 bool             `json:"MultiAZ,omitempty"`
	BackupRetentionPeriod   int              `json:"BackupRetentionPeriod,omitempty"`
	Tags                    []intrinsics.Tag `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (DBInstance) ResourceType() string { return "AWS::RDS::DBInstance" }
