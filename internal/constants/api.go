package constants

const (
	AppName   = "sdkmock"
	EnvPrefix = "SDKMOCK"
)

// MiddlewareID identifies the sdkmock middleware inside a smithy stack.
const MiddlewareID = "SDKMockIntercept"

// ServiceMetadataMiddlewareID is the Initialize step middleware that publishes
// the service ID and operation name. sdkmock runs right after it.
const ServiceMetadataMiddlewareID = "RegisterServiceMetadata"

const (
	DefaultRegion          = "us-east-1"
	DefaultAccessKeyID     = "sdkmock"
	DefaultSecretAccessKey = "sdkmock"
)

const (
	DefaultConfigPath1 = "/etc/sdkmock"
	DefaultConfigPath2 = "$HOME/.sdkmock"
)
