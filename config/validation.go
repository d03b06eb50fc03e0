package config

import (
	"github.com/outofforest/envspec/infra/description"
)

// ValidationFactory collects data for validation config
type ValidationFactory struct {
	// BaseUsers are users existing in base image
	BaseUsers []string
}

// Config returns new validation config
func (f *ValidationFactory) Config() Validation {
	return Validation{
		BaseUsers: f.BaseUsers,
	}
}

// Validation stores configuration of descriptor validation
type Validation struct {
	// BaseUsers are users existing in base image
	BaseUsers []string
}

// Options returns options passed to validation
func (v Validation) Options() []description.ValidateOption {
	return []description.ValidateOption{description.WithBaseUsers(v.BaseUsers...)}
}
