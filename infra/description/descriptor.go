package description

import (
	"github.com/outofforest/envspec/infra/types"
)

// Describe creates descriptor of environment. Steps are copied so later
// changes to the passed slice do not affect the descriptor.
func Describe(base types.BaseImage, steps ...Step) *Descriptor {
	return &Descriptor{
		base:  base,
		steps: append([]Step{}, steps...),
	}
}

// Descriptor describes environment
type Descriptor struct {
	base  types.BaseImage
	steps []Step
}

// Base returns base image of the environment
func (d *Descriptor) Base() types.BaseImage {
	return d.base
}

// Steps returns provisioning steps in declaration order
func (d *Descriptor) Steps() []Step {
	return append([]Step{}, d.steps...)
}

// Apply passes steps to visitor in declaration order, stopping on first error
func (d *Descriptor) Apply(v StepVisitor) error {
	for _, step := range d.steps {
		if err := step.Apply(v); err != nil {
			return err
		}
	}
	return nil
}
