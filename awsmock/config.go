package awsmock

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/smithy-go/middleware"

	"github.com/openkcm/sdkmock/intercept"
	"github.com/openkcm/sdkmock/internal/constants"
	"github.com/openkcm/sdkmock/internal/errs"
)

// ErrRealNetworkCall is returned when a request reaches the HTTP layer.
var ErrRealNetworkCall = errors.New("sdkmock refused a real network call")

// GuardHTTPClient fails every request it is handed.
type GuardHTTPClient struct{}

func (GuardHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return nil, errs.Wrapf(ErrRealNetworkCall, "%s %s", req.Method, req.URL)
}

// NewConfig loads an aws.Config whose clients are answered by a. Shared config
// files are ignored, credentials are static dummies, retries are disabled and
// the HTTP client refuses to send anything. optFns are applied last.
func NewConfig(
	ctx context.Context,
	a *intercept.Adapter,
	optFns ...func(*config.LoadOptions) error,
) (aws.Config, error) {
	loadOptions := []func(*config.LoadOptions) error{
		config.WithSharedConfigFiles([]string{}),
		config.WithSharedCredentialsFiles([]string{}),
		config.WithRegion(constants.DefaultRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			constants.DefaultAccessKeyID,
			constants.DefaultSecretAccessKey,
			"",
		)),
		config.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
		config.WithHTTPClient(GuardHTTPClient{}),
		config.WithAPIOptions([]func(*middleware.Stack) error{APIOption(a)}),
	}

	loadOptions = append(loadOptions, optFns...)

	return config.LoadDefaultConfig(ctx, loadOptions...)
}

// Configure adds the sdkmock middleware to an existing config.
func Configure(cfg *aws.Config, a *intercept.Adapter) {
	cfg.APIOptions = append(cfg.APIOptions, APIOption(a))
}
