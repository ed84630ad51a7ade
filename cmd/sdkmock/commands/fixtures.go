package commands

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/openkcm/sdkmock/fixtures"
	"github.com/openkcm/sdkmock/internal/config"
	"github.com/openkcm/sdkmock/internal/log"
	cmdutils "github.com/openkcm/sdkmock/utils/cmd"
)

var ErrNoFixtureFiles = errors.New("no fixture files found")

var fixtureExtensions = []string{"*.yaml", "*.yml"}

type fixturesState struct {
	cfg    *config.Config
	strict bool
}

func NewFixturesCmd(buildInfo string, opts ...commoncfg.Option) *cobra.Command {
	state := &fixturesState{}

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Inspect fixture documents",
		Long:  "Validate fixture documents and list the operations they mock. Files named as arguments replace fixtures.paths from the configuration.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cmdutils.Bootstrap(cmd.Context(), buildInfo, opts...)
			if err != nil {
				return err
			}

			state.cfg = cfg

			if !cmd.Flags().Changed("strict") {
				state.strict = cfg.Fixtures.Strict
			}

			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&state.strict, "strict", false,
		"reject outputs of unknown operations and duplicate keys")

	cmd.AddCommand(
		newValidateCmd(state),
		newKeysCmd(state),
	)

	return cmd
}

func newValidateCmd(state *fixturesState) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate fixture documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := resolveFiles(args, state.cfg.Fixtures.Paths)
			if err != nil {
				return err
			}

			cat := Catalog()
			failed := 0

			for _, file := range files {
				ctx := log.InjectFixture(cmd.Context(), file)

				set, err := fixtures.Load(file)
				if err == nil {
					err = set.Validate(cat, state.strict)
				}

				if err != nil {
					failed++

					log.Error(ctx, "fixture document is invalid", err)
					cmd.PrintErrf("FAIL %s\n%v\n", file, err)

					continue
				}

				for _, key := range set.Duplicates() {
					cmd.PrintErrf("WARN %s: %s is declared more than once, the last declaration wins\n", file, key)
				}

				cmd.Printf("ok   %s (%d mocks)\n", file, len(set.Fixtures))
			}

			log.Info(cmd.Context(), "validated fixture documents",
				slog.Int("files", len(files)),
				slog.Int("invalid", failed),
			)

			if failed > 0 {
				return oops.In("fixtures").
					With("files", len(files)).
					Errorf("%d of %d fixture documents are invalid", failed, len(files))
			}

			return nil
		},
	}
}

func newKeysCmd(state *fixturesState) *cobra.Command {
	return &cobra.Command{
		Use:   "keys [files...]",
		Short: "List the operations mocked by fixture documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := resolveFiles(args, state.cfg.Fixtures.Paths)
			if err != nil {
				return err
			}

			for _, file := range files {
				set, err := fixtures.Load(file)
				if err != nil {
					return oops.In("fixtures").Wrapf(err, "failed to load %s", file)
				}

				log.Debug(log.InjectFixture(cmd.Context(), file), "listing fixture keys",
					slog.Int("count", len(set.Fixtures)))

				for _, key := range set.Keys() {
					cmd.Printf("%s\t%s\n", key, file)
				}
			}

			return nil
		},
	}
}

// resolveFiles expands directories into the fixture documents they contain.
// args take precedence over the configured paths.
func resolveFiles(args, configured []string) ([]string, error) {
	paths := args
	if len(paths) == 0 {
		paths = configured
	}

	var files []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, oops.In("fixtures").Wrapf(err, "failed to read %s", p)
		}

		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		var found []string

		for _, pattern := range fixtureExtensions {
			matches, err := filepath.Glob(filepath.Join(p, pattern))
			if err != nil {
				return nil, oops.In("fixtures").Wrapf(err, "failed to list %s", p)
			}

			found = append(found, matches...)
		}

		slices.Sort(found)
		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, oops.In("fixtures").Wrap(ErrNoFixtureFiles)
	}

	return files, nil
}
