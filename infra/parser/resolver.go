package parser

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/outofforest/envspec/infra/description"
	"github.com/outofforest/ioc/v2"
)

// ErrSpecFileDoesNotExist is returned if no spec file matches the requested path
var ErrSpecFileDoesNotExist = errors.New("spec file does not exist")

// NewResolvingParser returns new auto resolving parser
func NewResolvingParser(c *ioc.Container) Parser {
	return &resolvingParser{
		c: c,
	}
}

type resolvingParser struct {
	c *ioc.Container
}

// Parse parses file using parser matching the kind of a file. If path has no
// extension and does not exist, files with extensions of registered parsers are tried.
func (p *resolvingParser) Parse(filePath string, opts ...description.ValidateOption) (*description.Descriptor, error) {
	kind := Kind(filePath)
	if kind == "" {
	loop:
		for _, k := range p.c.Names((*Parser)(nil)) {
			f := filePath + "." + k
			info, err := os.Stat(f)
			switch {
			case err != nil && !os.IsNotExist(err):
				return nil, errors.WithStack(err)
			case err == nil && !info.IsDir():
				filePath = f
				kind = k
				break loop
			}
		}
	}

	if !p.c.NameExists(kind, (*Parser)(nil)) {
		return nil, errors.Wrapf(ErrSpecFileDoesNotExist, "parser not found for file %s", filePath)
	}

	var parser Parser
	p.c.ResolveNamed(kind, &parser)
	return parser.Parse(filePath, opts...)
}

// Kind returns the kind of spec file derived from its name: "dockerfile" for
// Dockerfile and Containerfile variants, extension otherwise.
func Kind(filePath string) string {
	base := filepath.Base(filePath)
	lower := strings.ToLower(base)
	for _, prefix := range []string{"dockerfile", "containerfile"} {
		if lower == prefix || strings.HasPrefix(lower, prefix+".") {
			return "dockerfile"
		}
	}

	ext := strings.ToLower(filepath.Ext(base))
	switch ext {
	case "":
		return ""
	case ".dockerfile", ".containerfile":
		return "dockerfile"
	default:
		return ext[1:]
	}
}
