package envspec

import (
	"context"
	"fmt"

	"github.com/outofforest/parallel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/envspec/config"
	"github.com/outofforest/envspec/infra"
	"github.com/outofforest/envspec/infra/render"
	"github.com/outofforest/envspec/infra/serialize"
)

// CheckResult describes successfully checked descriptor
type CheckResult struct {
	Source string `json:"source" yaml:"source"`
	Base   string `json:"base" yaml:"base"`
	Steps  int    `json:"steps" yaml:"steps"`
}

// String returns string representation of result
func (r CheckResult) String() string {
	return fmt.Sprintf("%s\t%s\t%d steps", r.Source, r.Base, r.Steps)
}

// Check parses and validates all the sources concurrently
func Check(ctx context.Context, input config.Input, logging config.Logging, validation config.Validation,
	loader *infra.Loader) ([]CheckResult, error) {
	log := logging.Logger(ctx)
	results := make([]CheckResult, len(input.Sources))
	err := parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		for i, source := range input.Sources {
			spawn(fmt.Sprintf("check-%d", i), parallel.Continue, func(ctx context.Context) error {
				log.Debug("Checking descriptor", zap.String("source", source))
				d, err := loader.Load(source, validation.Options()...)
				if err != nil {
					log.Error("Descriptor is invalid", zap.String("source", source), zap.Error(err))
					return errors.WithMessagef(err, "checking %s failed", source)
				}
				results[i] = CheckResult{
					Source: source,
					Base:   d.Base().String(),
					Steps:  len(d.Steps()),
				}
				log.Info("Descriptor is valid", zap.String("source", source), zap.Int("steps", len(d.Steps())))
				return nil
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Render expands descriptor into instructions, FROM goes first
func Render(ctx context.Context, input config.Input, logging config.Logging, r config.Render,
	loader *infra.Loader) ([]render.Instruction, error) {
	source, err := single(input)
	if err != nil {
		return nil, err
	}
	d, err := loader.Load(source, r.Validation.Options()...)
	if err != nil {
		return nil, err
	}
	plan, err := render.Render(d, r.Options()...)
	if err != nil {
		return nil, err
	}
	logging.Logger(ctx).Debug("Descriptor rendered", zap.String("source", source),
		zap.Int("instructions", len(plan.Instructions)), zap.Bool("cleanup", r.Cleanup))
	return plan.All(), nil
}

// Format returns canonical textual form of descriptor
func Format(input config.Input, validation config.Validation, loader *infra.Loader) (string, error) {
	source, err := single(input)
	if err != nil {
		return "", err
	}
	d, err := loader.Load(source, validation.Options()...)
	if err != nil {
		return "", err
	}
	return serialize.Serialize(d), nil
}

// Presets returns information about built-in environments
func Presets(repo *infra.Repository) []infra.Preset {
	return repo.Presets()
}

func single(input config.Input) (string, error) {
	if len(input.Sources) != 1 {
		return "", errors.Errorf("exactly one source is expected, %d provided", len(input.Sources))
	}
	return input.Sources[0], nil
}
