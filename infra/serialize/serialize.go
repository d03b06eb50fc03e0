// Package serialize converts descriptors into canonical spec text.
//
// Canonical text contains one directive per line, no comments, JSON form of
// CMD and the shortest shell form of typed RUN steps. Parsing canonical text
// of a valid descriptor gives back an equivalent descriptor.
package serialize

import (
	"encoding/json"
	"strings"

	"github.com/ridge/must"

	"github.com/outofforest/envspec/infra/description"
)

// Serialize returns canonical text of descriptor. Descriptor is expected to be valid.
func Serialize(d *description.Descriptor) string {
	s := &serializer{}
	s.line("FROM", d.Base().String())
	must.OK(d.Apply(s))
	return s.sb.String()
}

var _ description.StepVisitor = &serializer{}

type serializer struct {
	sb strings.Builder
}

func (s *serializer) line(directive, args string) {
	s.sb.WriteString(directive)
	s.sb.WriteString(" ")
	s.sb.WriteString(args)
	s.sb.WriteString("\n")
}

// WorkingDirectory serializes WORKDIR step
func (s *serializer) WorkingDirectory(step *description.WorkingDirectoryStep) error {
	s.line("WORKDIR", step.Path)
	return nil
}

// InstallPackages serializes package installation
func (s *serializer) InstallPackages(step *description.InstallPackagesStep) error {
	s.line("RUN", step.Manager.InstallCommand(step.Packages))
	return nil
}

// CreateUser serializes user creation
func (s *serializer) CreateUser(step *description.CreateUserStep) error {
	s.line("RUN", step.Tool.Command(step))
	return nil
}

// ActiveUser serializes USER step
func (s *serializer) ActiveUser(step *description.ActiveUserStep) error {
	s.line("USER", step.Name)
	return nil
}

// EnvVar serializes ENV step
func (s *serializer) EnvVar(step *description.EnvVarStep) error {
	s.line("ENV", step.Key+"="+description.EncodeEnvValue(step.Value))
	return nil
}

// DefaultCommand serializes CMD step
func (s *serializer) DefaultCommand(step *description.DefaultCommandStep) error {
	s.line("CMD", JSONArray(step.Argv))
	return nil
}

// RunShell serializes RUN step
func (s *serializer) RunShell(step *description.RunShellStep) error {
	s.line("RUN", step.Script)
	return nil
}

// JSONArray encodes strings as JSON array without escaping HTML characters
func JSONArray(values []string) string {
	if values == nil {
		values = []string{}
	}
	var sb strings.Builder
	encoder := json.NewEncoder(&sb)
	encoder.SetEscapeHTML(false)
	must.OK(encoder.Encode(values))
	return strings.TrimSuffix(sb.String(), "\n")
}
