package infra

import (
	"os"

	"github.com/pkg/errors"

	"github.com/outofforest/envspec/infra/description"
	"github.com/outofforest/envspec/infra/parser"
)

// NewLoader creates new descriptor loader.
func NewLoader(repo *Repository, parser parser.Parser) *Loader {
	return &Loader{
		repo:   repo,
		parser: parser,
	}
}

// Loader loads validated descriptors from files and repository.
type Loader struct {
	repo   *Repository
	parser parser.Parser
}

// Load returns validated descriptor. Existing file takes precedence over
// repository, otherwise source is resolved by parser.
func (l *Loader) Load(source string, opts ...description.ValidateOption) (*description.Descriptor, error) {
	info, err := os.Stat(source)
	switch {
	case err == nil && !info.IsDir():
		return l.parser.Parse(source, opts...)
	case err != nil && !os.IsNotExist(err):
		return nil, errors.WithStack(err)
	}

	if d := l.repo.Retrieve(source); d != nil {
		if err := description.Validate(d, opts...); err != nil {
			return nil, errors.WithMessagef(err, "preset %s is invalid", source)
		}
		return d, nil
	}
	return l.parser.Parse(source, opts...)
}
