/*
Package awsmock answers aws-sdk-go-v2 operations from a registry of overrides.

Build clients from a config returned by Config (or NewConfig) and register the
operations the code under test calls:

	cfg, err := awsmock.Config(ctx)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(awsmock.ResetAll)

	entry := awsmock.Mock("KMS", "DescribeKey", nil).Returns(&kms.DescribeKeyOutput{
		KeyMetadata: &types.KeyMetadata{KeyId: aws.String("k-1")},
	})

	out, err := kms.NewFromConfig(cfg).DescribeKey(ctx, &kms.DescribeKeyInput{KeyId: aws.String("k-1")})

Service and operation names match the SDK's service ID and operation name,
ignoring case. Data returned by an override must be the operation's output
type, for example *kms.DescribeKeyOutput for DescribeKey.

Calling an operation that has no override fails with
intercept.ErrUnmockedOperation. sdkmock never falls back to the network: the
HTTP client installed by NewConfig rejects every request with
ErrRealNetworkCall.
*/
package awsmock
