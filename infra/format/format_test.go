package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type row struct {
	Name     string   `json:"name" yaml:"name"`
	Packages []string `json:"packages" yaml:"packages"`
	Steps    int      `json:"steps" yaml:"steps"`
	internal bool
}

func (r row) String() string {
	return r.Name
}

var rows = []row{
	{Name: "cpp", Packages: []string{"git", "cmake"}, Steps: 7},
	{Name: "go", Steps: 8, internal: true},
}

func TestTableFormatter(t *testing.T) {
	assert.Equal(t, ""+
		" NAME  PACKAGES   STEPS \n"+
		" cpp   git cmake  7     \n"+
		" go               8     ", NewTableFormatter().Format(rows))
}

func TestJSONFormatter(t *testing.T) {
	assert.Equal(t, `[
  {
    "name": "cpp",
    "packages": [
      "git",
      "cmake"
    ],
    "steps": 7
  },
  {
    "name": "go",
    "packages": null,
    "steps": 8
  }
]`, NewJSONFormatter().Format(rows))
}

func TestYAMLFormatter(t *testing.T) {
	var decoded []row
	require.NoError(t, yaml.Unmarshal([]byte(NewYAMLFormatter().Format(rows)), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, row{Name: "cpp", Packages: []string{"git", "cmake"}, Steps: 7}, decoded[0])
	assert.Equal(t, "go", decoded[1].Name)
	assert.Equal(t, 8, decoded[1].Steps)
	assert.Empty(t, decoded[1].Packages)
}

func TestTextFormatter(t *testing.T) {
	assert.Equal(t, "cpp\ngo", NewTextFormatter().Format(rows))
	assert.Equal(t, "", NewTextFormatter().Format([]row{}))
}
