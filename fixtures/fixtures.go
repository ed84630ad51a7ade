package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/smithy-go"
	"gopkg.in/yaml.v3"

	"github.com/openkcm/sdkmock/internal/errs"
	"github.com/openkcm/sdkmock/internal/log"
	"github.com/openkcm/sdkmock/registry"
)

var (
	ErrInvalidFixture    = errors.New("invalid fixture")
	ErrUnknownOutputType = errors.New("no output type known for operation")
	ErrDecodeOutput      = errors.New("failed to decode fixture output")
	ErrReadFixtures      = errors.New("failed to read fixtures")
)

const (
	FaultClient = "client"
	FaultServer = "server"
)

// Fixture declares the answer of one operation.
type Fixture struct {
	Service   string        `yaml:"service"`
	Operation string        `yaml:"operation"`
	Output    *yaml.Node    `yaml:"output,omitempty"`
	Error     *Error        `yaml:"error,omitempty"`
	Delay     time.Duration `yaml:"delay,omitempty"`
}

// Error describes an API error returned instead of an output.
type Error struct {
	Code    string `yaml:"code"`
	Message string `yaml:"message"`
	Fault   string `yaml:"fault,omitempty"`
}

// Key returns the registry key of the fixture.
func (f Fixture) Key() registry.Key {
	return registry.NewKey(f.Service, f.Operation)
}

func (f Fixture) validate(cat *Catalog, strict bool) error {
	var problems []string

	if f.Service == "" {
		problems = append(problems, "missing service")
	}

	if f.Operation == "" {
		problems = append(problems, "missing operation")
	}

	if f.Output != nil && f.Error != nil {
		problems = append(problems, "output and error are mutually exclusive")
	}

	if f.Delay < 0 {
		problems = append(problems, "negative delay")
	}

	if f.Error != nil {
		if f.Error.Code == "" {
			problems = append(problems, "missing error code")
		}

		if _, err := toFault(f.Error.Fault); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		return errs.Wrapf(ErrInvalidFixture, "%s", strings.Join(problems, ", "))
	}

	if strict && f.Output != nil && !cat.Has(f.Service, f.Operation) {
		return errs.Wrapf(ErrUnknownOutputType, "%s.%s", f.Service, f.Operation)
	}

	return nil
}

func (f Fixture) apiError() (*smithy.GenericAPIError, error) {
	fault, err := toFault(f.Error.Fault)
	if err != nil {
		return nil, err
	}

	return &smithy.GenericAPIError{
		Code:    f.Error.Code,
		Message: f.Error.Message,
		Fault:   fault,
	}, nil
}

// respond builds the outcome of one call. Every call decodes a fresh output so
// callers never share a value.
func (f Fixture) respond(cat *Catalog) (func() (any, error), error) {
	if f.Error != nil {
		apiErr, err := f.apiError()
		if err != nil {
			return nil, err
		}

		return func() (any, error) { return nil, apiErr }, nil
	}

	key := f.Key()

	if f.Output == nil {
		return func() (any, error) {
			out, _ := cat.newOutput(key)
			return out, nil
		}, nil
	}

	if !cat.Has(f.Service, f.Operation) {
		return nil, errs.Wrapf(ErrUnknownOutputType, "%s.%s", f.Service, f.Operation)
	}

	decode := func() (any, error) {
		out, _ := cat.newOutput(key)

		err := f.Output.Decode(out)
		if err != nil {
			return nil, errs.Wrap(ErrDecodeOutput, err)
		}

		return out, nil
	}

	_, err := decode()
	if err != nil {
		return nil, errs.Wrapf(err, "%s.%s", f.Service, f.Operation)
	}

	return decode, nil
}

func (f Fixture) override(cat *Catalog) (registry.OverrideFunc, error) {
	respond, err := f.respond(cat)
	if err != nil {
		return nil, err
	}

	delay := f.Delay

	return func(_ context.Context, _ any, done registry.Callback) any {
		data, err := respond()

		if delay > 0 {
			time.AfterFunc(delay, func() { done(err, data) })
			return nil
		}

		done(err, data)

		return nil
	}, nil
}

func toFault(s string) (smithy.ErrorFault, error) {
	switch strings.ToLower(s) {
	case "":
		return smithy.FaultUnknown, nil
	case FaultClient:
		return smithy.FaultClient, nil
	case FaultServer:
		return smithy.FaultServer, nil
	default:
		return smithy.FaultUnknown, fmt.Errorf("unknown fault %q", s)
	}
}

type document struct {
	Mocks []Fixture `yaml:"mocks"`
}

// Set is the content of one fixtures document.
type Set struct {
	Source   string
	Fixtures []Fixture
}

// Parse decodes a fixtures document. An empty document yields an empty Set.
func Parse(r io.Reader) (*Set, error) {
	var doc document

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	err := dec.Decode(&doc)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.Wrap(ErrInvalidFixture, err)
	}

	return &Set{Fixtures: doc.Mocks}, nil
}

// Load parses the fixtures document at path.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(ErrReadFixtures, err)
	}
	defer f.Close()

	set, err := Parse(f)
	if err != nil {
		return nil, errs.Wrapf(err, "%s", path)
	}

	set.Source = path

	return set, nil
}

// Validate checks every fixture and joins the problems found. Strict mode also
// rejects outputs the catalog cannot type and duplicate keys.
func (s *Set) Validate(cat *Catalog, strict bool) error {
	var all []error

	for i, f := range s.Fixtures {
		err := f.validate(cat, strict)
		if err != nil {
			all = append(all, fmt.Errorf("mocks[%d]: %w", i, err))
		}
	}

	if strict {
		for _, key := range s.Duplicates() {
			all = append(all, errs.Wrapf(ErrInvalidFixture, "duplicate key %s", key))
		}
	}

	return errors.Join(all...)
}

// Keys lists the keys of the set in order of first appearance.
func (s *Set) Keys() []registry.Key {
	seen := make(map[registry.Key]bool, len(s.Fixtures))
	keys := make([]registry.Key, 0, len(s.Fixtures))

	for _, f := range s.Fixtures {
		key := f.Key()
		if seen[key] {
			continue
		}

		seen[key] = true
		keys = append(keys, key)
	}

	return keys
}

// Duplicates lists keys declared more than once. The last declaration wins
// when the set is applied.
func (s *Set) Duplicates() []registry.Key {
	counts := make(map[registry.Key]int, len(s.Fixtures))

	var dups []registry.Key

	for _, f := range s.Fixtures {
		key := f.Key()

		counts[key]++
		if counts[key] == 2 {
			dups = append(dups, key)
		}
	}

	return dups
}

// Apply registers every fixture in reg and returns the live entries in the
// order of Keys. Nothing is registered if a fixture is invalid.
func (s *Set) Apply(ctx context.Context, reg *registry.Registry, cat *Catalog) ([]*registry.Entry, error) {
	err := s.Validate(cat, false)
	if err != nil {
		return nil, err
	}

	overrides := make([]registry.OverrideFunc, len(s.Fixtures))

	for i, f := range s.Fixtures {
		overrides[i], err = f.override(cat)
		if err != nil {
			return nil, fmt.Errorf("mocks[%d]: %w", i, err)
		}
	}

	if s.Source != "" {
		ctx = log.InjectFixture(ctx, s.Source)
	}

	live := make(map[registry.Key]*registry.Entry, len(s.Fixtures))

	for i, f := range s.Fixtures {
		live[f.Key()] = reg.Register(f.Service, f.Operation, overrides[i])

		log.Debug(ctx, "registered fixture",
			slog.String("service", f.Service),
			slog.String("operation", f.Operation),
		)
	}

	keys := s.Keys()
	entries := make([]*registry.Entry, 0, len(keys))

	for _, key := range keys {
		entries = append(entries, live[key])
	}

	return entries, nil
}
