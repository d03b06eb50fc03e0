package config

import (
	"github.com/outofforest/envspec/infra/render"
)

// RenderFactory collects data for render config
type RenderFactory struct {
	// NoCleanup disables removal of package index after packages are installed
	NoCleanup bool
}

// Config returns new render config
func (f *RenderFactory) Config(validation Validation) Render {
	return Render{
		Cleanup:    !f.NoCleanup,
		Validation: validation,
	}
}

// Render stores configuration of rendering
type Render struct {
	// Cleanup enables removal of package index after packages are installed
	Cleanup bool

	// Validation is the configuration of validation executed before rendering
	Validation Validation
}

// Options returns options passed to renderer
func (r Render) Options() []render.Option {
	opts := []render.Option{render.WithValidation(r.Validation.Options()...)}
	if !r.Cleanup {
		opts = append(opts, render.WithoutCleanup())
	}
	return opts
}
