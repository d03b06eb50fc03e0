package description

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/pkg/errors"
	"mvdan.cc/sh/v3/syntax"

	"github.com/outofforest/envspec/infra/types"
)

// ValidateOption configures validation
type ValidateOption func(v *validator)

// WithBaseUsers declares users existing in the base image, root is always assumed
func WithBaseUsers(users ...string) ValidateOption {
	return func(v *validator) {
		for _, user := range users {
			v.users[user] = true
		}
	}
}

// Validate verifies that descriptor satisfies all its invariants. The first
// violation is returned as *types.ValidationError.
func Validate(d *Descriptor, opts ...ValidateOption) error {
	if err := d.base.Validate(); err != nil {
		return errors.WithStack(&types.ValidationError{
			Index:  types.BaseImageIndex,
			Reason: err.Error(),
		})
	}

	v := &validator{
		last:    len(d.steps) - 1,
		users:   map[string]bool{"root": true},
		created: map[string]bool{},
	}
	for _, opt := range opts {
		opt(v)
	}

	for i, step := range d.steps {
		v.index = i
		if err := step.Apply(v); err != nil {
			return err
		}
	}
	return nil
}

var _ StepVisitor = &validator{}

type validator struct {
	index   int
	last    int
	users   map[string]bool
	created map[string]bool
}

func (v *validator) fail(format string, args ...interface{}) error {
	return errors.WithStack(&types.ValidationError{
		Index:  v.index,
		Reason: fmt.Sprintf(format, args...),
	})
}

// WorkingDirectory validates WORKDIR step
func (v *validator) WorkingDirectory(step *WorkingDirectoryStep) error {
	if step.Path == "" {
		return v.fail("working directory is empty")
	}
	if strings.ContainsAny(step.Path, "\n\r") {
		return v.fail("working directory must be a single line")
	}
	if !isBareArgument(step.Path) {
		return v.fail("working directory must not start or end with whitespace or end with backslash")
	}
	return nil
}

// InstallPackages validates package installation step
func (v *validator) InstallPackages(step *InstallPackagesStep) error {
	if !step.Manager.IsValid() {
		return v.fail("package manager %q is not supported", step.Manager)
	}
	if len(step.Packages) == 0 {
		return v.fail("no packages to install")
	}
	seen := map[string]bool{}
	for _, pkg := range step.Packages {
		if !types.IsPackageNameValid(pkg) {
			return v.fail("package name %q is invalid", pkg)
		}
		if seen[pkg] {
			return v.fail("package %q is listed twice", pkg)
		}
		seen[pkg] = true
	}
	return nil
}

// CreateUser validates user creation step
func (v *validator) CreateUser(step *CreateUserStep) error {
	if !step.Tool.IsValid() {
		return v.fail("user tool %q is not supported", step.Tool)
	}
	if !types.IsUserNameValid(step.Name) {
		return v.fail("user name %q is invalid", step.Name)
	}
	if v.created[step.Name] {
		return v.fail("user %q has been already created", step.Name)
	}
	if step.Shell != "" && !path.IsAbs(step.Shell) {
		return v.fail("shell %q is not an absolute path", step.Shell)
	}
	if step.UID != "" && !types.IsUID(step.UID) {
		return v.fail("uid %q is not numeric", step.UID)
	}
	if len(step.Groups) > 0 && step.Tool != UserAdd {
		return v.fail("supplementary groups are not supported by %s", step.Tool)
	}
	groups := map[string]bool{}
	for _, group := range step.Groups {
		if !types.IsUserNameValid(group) {
			return v.fail("group name %q is invalid", group)
		}
		if groups[group] {
			return v.fail("group %q is listed twice", group)
		}
		groups[group] = true
	}
	v.created[step.Name] = true
	return nil
}

// ActiveUser validates USER step
func (v *validator) ActiveUser(step *ActiveUserStep) error {
	switch {
	case step.Name == "":
		return v.fail("user name is empty")
	case !types.IsUserNameValid(step.Name) && !types.IsUID(step.Name):
		return v.fail("user name %q is invalid", step.Name)
	case v.created[step.Name], v.users[step.Name], types.IsUID(step.Name):
		return nil
	default:
		return v.fail("user %q is neither created by a prior step nor present in the base image", step.Name)
	}
}

// EnvVar validates ENV step
func (v *validator) EnvVar(step *EnvVarStep) error {
	if !types.IsEnvKeyValid(step.Key) {
		return v.fail("environment variable name %q is invalid", step.Key)
	}
	if strings.ContainsAny(step.Value, "\n\r") {
		return v.fail("value of environment variable %s must be a single line", step.Key)
	}
	if decoded, err := DecodeEnvValue(EncodeEnvValue(step.Value)); err != nil || decoded != step.Value {
		return v.fail("value of environment variable %s contains unsupported expressions", step.Key)
	}
	return nil
}

// DefaultCommand validates CMD step
func (v *validator) DefaultCommand(step *DefaultCommandStep) error {
	if v.index != v.last {
		return v.fail("default command must be the last step")
	}
	if len(step.Argv) == 0 || step.Argv[0] == "" {
		return v.fail("default command is empty")
	}
	return nil
}

// RunShell validates RUN step
func (v *validator) RunShell(step *RunShellStep) error {
	if strings.TrimSpace(step.Script) == "" {
		return v.fail("script is empty")
	}
	if strings.ContainsAny(step.Script, "\n\r") {
		return v.fail("script must be a single line")
	}
	if !isBareArgument(step.Script) {
		return v.fail("script must not start or end with whitespace or end with backslash")
	}
	if isJSONArray(step.Script) {
		return v.fail("script is indistinguishable from JSON form")
	}
	if _, err := syntax.NewParser().Parse(strings.NewReader(step.Script), ""); err != nil {
		return v.fail("script syntax error: %s", err)
	}
	if RecognizeShell(step.Script) != nil {
		return v.fail("script is expressible as typed steps")
	}
	return nil
}

// isBareArgument returns true if value stays intact when written as the rest of
// a directive line: surrounding whitespace is trimmed and trailing backslash
// continues the line.
func isBareArgument(value string) bool {
	return value == strings.TrimSpace(value) && !strings.HasSuffix(value, `\`)
}

// isJSONArray returns true if script starts with a JSON array, which makes RUN
// line read in its JSON form.
func isJSONArray(script string) bool {
	if !strings.HasPrefix(script, "[") {
		return false
	}
	var array []interface{}
	return json.NewDecoder(strings.NewReader(script)).Decode(&array) == nil
}
