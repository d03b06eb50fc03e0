package infra

import (
	"sort"

	"github.com/samber/lo"

	"github.com/outofforest/envspec/infra/description"
)

// NewRepository creates new descriptor repository
func NewRepository() *Repository {
	return &Repository{
		descriptors: map[string]*description.Descriptor{},
	}
}

// Repository is a descriptor repository
type Repository struct {
	descriptors map[string]*description.Descriptor
}

// Store stores descriptor in repository
func (r *Repository) Store(name string, d *description.Descriptor) {
	r.descriptors[name] = d
}

// Retrieve retrieves descriptor from repository, nil is returned if it does not exist
func (r *Repository) Retrieve(name string) *description.Descriptor {
	return r.descriptors[name]
}

// Names returns sorted names of stored descriptors
func (r *Repository) Names() []string {
	names := lo.Keys(r.descriptors)
	sort.Strings(names)
	return names
}

// Presets returns information about stored descriptors
func (r *Repository) Presets() []Preset {
	return lo.Map(r.Names(), func(name string, _ int) Preset {
		d := r.descriptors[name]
		return Preset{
			Name:  name,
			Image: ImageName(name),
			Base:  d.Base().String(),
			Steps: len(d.Steps()),
		}
	})
}

// ImageName returns the name of image built from preset
func ImageName(preset string) string {
	return "compiler-server-" + preset + ":latest"
}

// Preset describes stored descriptor
type Preset struct {
	Name  string `json:"name" yaml:"name"`
	Image string `json:"image" yaml:"image"`
	Base  string `json:"base" yaml:"base"`
	Steps int    `json:"steps" yaml:"steps"`
}

// String returns string representation of preset
func (p Preset) String() string {
	return p.Name + "\t" + p.Image + "\t" + p.Base
}
