package commands

import (
	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/openkcm/common-sdk/pkg/utils"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the sdkmock command tree. opts are handed to the
// configuration loader of the commands that need a configuration.
func NewRootCmd(buildInfo string, opts ...commoncfg.Option) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sdkmock",
		Short: "sdkmock - AWS SDK operation mocks",
		Long:  `sdkmock answers aws-sdk-go-v2 operations from registered overrides and checks the fixture documents that declare them.`,
	}

	cmd.AddCommand(
		NewVersionCmd(buildInfo),
		NewFixturesCmd(buildInfo, opts...),
	)

	return cmd
}

func NewVersionCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "sdkmock Version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			value, err := utils.ExtractFromComplexValue(buildInfo)
			if err != nil {
				return err
			}

			cmd.Println(value)

			return nil
		},
	}
}
