package format

import (
	"strings"

	"github.com/ridge/must"
	"gopkg.in/yaml.v3"
)

// NewYAMLFormatter returns formatter converting slice into yaml document
func NewYAMLFormatter() Formatter {
	return &yamlFormatter{}
}

type yamlFormatter struct {
}

// Format formats slice into yaml document
func (f *yamlFormatter) Format(slice interface{}) string {
	return strings.TrimSuffix(string(must.Bytes(yaml.Marshal(slice))), "\n")
}
