package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outofforest/ioc/v2"
)

func newResolvingParser() Parser {
	c := ioc.New()
	c.SingletonNamed("spec", NewSpecFileParser)
	c.SingletonNamed("dockerfile", NewSpecFileParser)
	return NewResolvingParser(c)
}

func TestResolvingParser(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cpp.spec"), []byte(scenario), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte(scenario), 0o600))

	p := newResolvingParser()
	for _, file := range []string{"cpp.spec", "cpp", "Dockerfile"} {
		t.Run(file, func(t *testing.T) {
			d, err := p.Parse(filepath.Join(dir, file))
			require.NoError(t, err)
			assert.Len(t, d.Steps(), 7)
		})
	}
}

func TestResolvingParserUnknownKind(t *testing.T) {
	dir := t.TempDir()
	_, err := newResolvingParser().Parse(filepath.Join(dir, "cpp.yaml"))
	assert.True(t, errors.Is(err, ErrSpecFileDoesNotExist))

	_, err = newResolvingParser().Parse(filepath.Join(dir, "missing"))
	assert.True(t, errors.Is(err, ErrSpecFileDoesNotExist))
}
