package cmd

import (
	"context"
	"log/slog"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/openkcm/common-sdk/pkg/logger"
	"github.com/samber/oops"

	"github.com/openkcm/sdkmock/internal/config"
	"github.com/openkcm/sdkmock/internal/constants"
	"github.com/openkcm/sdkmock/internal/log"
)

const (
	errMsgLoadConfig    = "Failed to load the configuration"
	errMsgUpdateVersion = "Failed to update the version configuration"
	errMsgLoggerInit    = "Failed to initialise the logger"
)

// Bootstrap loads the configuration, stamps the build version into it and
// installs the configured logger as the slog default. Environment variables
// prefixed with SDKMOCK override file values.
func Bootstrap(ctx context.Context, buildInfo string, opts ...commoncfg.Option) (*config.Config, error) {
	opts = append([]commoncfg.Option{commoncfg.WithEnvOverride(constants.EnvPrefix)}, opts...)

	cfg, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, oops.In("main").Wrapf(err, errMsgLoadConfig)
	}

	err = commoncfg.UpdateConfigVersion(&cfg.BaseConfig, buildInfo)
	if err != nil {
		return nil, oops.In("main").Wrapf(err, errMsgUpdateVersion)
	}

	err = logger.InitAsDefault(cfg.Logger, cfg.Application)
	if err != nil {
		return nil, oops.In("main").Wrapf(err, errMsgLoggerInit)
	}

	log.Debug(ctx, "Starting the application", slog.Any("config", *cfg))

	return cfg, nil
}
