package parser

import "github.com/outofforest/envspec/infra/description"

// Parser parses environment descriptor from file
type Parser interface {
	// Parse parses file and converts it to validated descriptor
	Parse(filePath string, opts ...description.ValidateOption) (*description.Descriptor, error)
}
