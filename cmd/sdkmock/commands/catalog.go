package commands

import (
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/openkcm/sdkmock/fixtures"
)

// Catalog knows the output types of the operations a KMS keystore issues.
func Catalog() *fixtures.Catalog {
	return fixtures.NewCatalog().
		Add("KMS", "CreateKey", fixtures.OutputOf[kms.CreateKeyOutput]()).
		Add("KMS", "CreateAlias", fixtures.OutputOf[kms.CreateAliasOutput]()).
		Add("KMS", "UpdateAlias", fixtures.OutputOf[kms.UpdateAliasOutput]()).
		Add("KMS", "DescribeKey", fixtures.OutputOf[kms.DescribeKeyOutput]()).
		Add("KMS", "EnableKey", fixtures.OutputOf[kms.EnableKeyOutput]()).
		Add("KMS", "DisableKey", fixtures.OutputOf[kms.DisableKeyOutput]()).
		Add("KMS", "ScheduleKeyDeletion", fixtures.OutputOf[kms.ScheduleKeyDeletionOutput]()).
		Add("KMS", "GetPublicKey", fixtures.OutputOf[kms.GetPublicKeyOutput]()).
		Add("STS", "GetCallerIdentity", fixtures.OutputOf[sts.GetCallerIdentityOutput]()).
		Add("STS", "AssumeRole", fixtures.OutputOf[sts.AssumeRoleOutput]())
}
