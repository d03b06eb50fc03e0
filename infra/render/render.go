// Package render expands descriptors into atomic instructions consumed by
// image builders.
package render

import (
	"os"
	"path"
	"strings"

	"github.com/outofforest/envspec/infra/description"
	"github.com/outofforest/envspec/infra/types"
)

// Option configures rendering
type Option func(o *options)

type options struct {
	cleanup    bool
	validation []description.ValidateOption
}

// WithoutCleanup disables removal of package index after packages are installed
func WithoutCleanup() Option {
	return func(o *options) {
		o.cleanup = false
	}
}

// WithValidation passes options to validation executed before rendering
func WithValidation(opts ...description.ValidateOption) Option {
	return func(o *options) {
		o.validation = append(o.validation, opts...)
	}
}

// Render validates descriptor and expands its steps into instructions.
// Relative order of steps is preserved.
func Render(d *description.Descriptor, opts ...Option) (Plan, error) {
	o := options{cleanup: true}
	for _, opt := range opts {
		opt(&o)
	}

	if err := description.Validate(d, o.validation...); err != nil {
		return Plan{}, err
	}

	r := &renderer{
		cleanup: o.cleanup,
		ctx: buildContext{
			workDir: "/",
			env:     map[string]string{},
		},
	}
	if err := d.Apply(r); err != nil {
		return Plan{}, err
	}
	return Plan{
		From:         Instruction{Kind: From, Args: []string{d.Base().String()}},
		Instructions: r.instructions,
	}, nil
}

// buildContext is the state observed by steps, changed by the preceding ones.
type buildContext struct {
	workDir string
	user    string
	env     map[string]string
}

// expand substitutes variables known in the context. Unknown variables are
// kept as ${KEY}, in which case true is returned as the second result.
func (c buildContext) expand(value string) (string, bool) {
	var unresolved bool
	expanded := os.Expand(value, func(key string) string {
		if v, ok := c.env[key]; ok {
			if strings.Contains(v, "$") {
				unresolved = true
			}
			return v
		}
		unresolved = true
		return "${" + key + "}"
	})
	return expanded, unresolved
}

var _ description.StepVisitor = &renderer{}

type renderer struct {
	cleanup      bool
	ctx          buildContext
	instructions []Instruction
}

func (r *renderer) emit(kind Kind, args ...string) {
	r.instructions = append(r.instructions, Instruction{Kind: kind, Args: append([]string{}, args...)})
}

// asRoot emits commands so they are executed by root, restoring active user afterwards.
func (r *renderer) asRoot(commands ...string) {
	if types.IsRoot(r.ctx.user) {
		r.emit(Run, commands...)
		return
	}
	r.emit(User, "root")
	r.emit(Run, commands...)
	r.emit(User, r.ctx.user)
}

// WorkingDirectory renders WORKDIR step
func (r *renderer) WorkingDirectory(step *description.WorkingDirectoryStep) error {
	dir, unresolved := r.ctx.expand(step.Path)

	switch {
	case unresolved:
		// variables coming from the base image are resolved by the builder
	case path.IsAbs(dir):
		dir = path.Clean(dir)
	default:
		dir = path.Join(r.ctx.workDir, dir)
	}
	r.ctx.workDir = dir
	r.emit(WorkDir, dir)
	return nil
}

// InstallPackages renders package installation
func (r *renderer) InstallPackages(step *description.InstallPackagesStep) error {
	commands := []string{step.Manager.UpdateCommand(), step.Manager.InstallCommand(step.Packages)}
	if r.cleanup {
		commands = append(commands, step.Manager.CleanupCommand())
	}
	r.asRoot(commands...)
	return nil
}

// CreateUser renders user creation
func (r *renderer) CreateUser(step *description.CreateUserStep) error {
	r.asRoot(step.Tool.Command(step))
	return nil
}

// ActiveUser renders USER step
func (r *renderer) ActiveUser(step *description.ActiveUserStep) error {
	r.ctx.user = step.Name
	r.emit(User, step.Name)
	return nil
}

// EnvVar renders ENV step
func (r *renderer) EnvVar(step *description.EnvVarStep) error {
	r.ctx.env[step.Key], _ = r.ctx.expand(step.Value)
	r.emit(Env, step.Key, step.Value)
	return nil
}

// DefaultCommand renders CMD step
func (r *renderer) DefaultCommand(step *description.DefaultCommandStep) error {
	r.emit(Cmd, step.Argv...)
	return nil
}

// RunShell renders RUN step
func (r *renderer) RunShell(step *description.RunShellStep) error {
	r.emit(Run, step.Script)
	return nil
}
