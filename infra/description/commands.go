package description

import (
	"github.com/samber/lo"
)

// WorkingDirectory returns WORKDIR step
func WorkingDirectory(path string) Step {
	return &WorkingDirectoryStep{
		Path: path,
	}
}

// InstallPackages returns step installing packages, duplicated names are dropped
func InstallPackages(manager PackageManager, packages ...string) Step {
	return &InstallPackagesStep{
		Manager:  manager,
		Packages: lo.Uniq(packages),
	}
}

// CreateUser returns step creating user with useradd
func CreateUser(name, shell string, home bool) Step {
	return CreateUserWith(UserAdd, name, shell, home)
}

// CreateUserWith returns step creating user with the selected tool
func CreateUserWith(tool UserTool, name, shell string, home bool) Step {
	return &CreateUserStep{
		Tool:  tool,
		Name:  name,
		Shell: shell,
		Home:  home,
	}
}

// ActiveUser returns USER step
func ActiveUser(name string) Step {
	return &ActiveUserStep{
		Name: name,
	}
}

// EnvVar returns ENV step
func EnvVar(key, value string) Step {
	return &EnvVarStep{
		Key:   key,
		Value: value,
	}
}

// DefaultCommand returns CMD step
func DefaultCommand(argv ...string) Step {
	return &DefaultCommandStep{
		Argv: append([]string{}, argv...),
	}
}

// RunShell returns step running shell script
func RunShell(script string) Step {
	return &RunShellStep{
		Script: script,
	}
}

// WorkingDirectoryStep sets working directory for subsequent steps and for the default command
type WorkingDirectoryStep struct {
	Path string
}

// Apply passes step to visitor
func (step *WorkingDirectoryStep) Apply(v StepVisitor) error {
	return v.WorkingDirectory(step)
}

// InstallPackagesStep installs packages using package manager
type InstallPackagesStep struct {
	Manager  PackageManager
	Packages []string
}

// Apply passes step to visitor
func (step *InstallPackagesStep) Apply(v StepVisitor) error {
	return v.InstallPackages(step)
}

// CreateUserStep creates unprivileged user
type CreateUserStep struct {
	Tool  UserTool
	Name  string
	Shell string
	Home  bool

	// UID is the numeric ID of the user, assigned by the tool if empty
	UID string

	// Groups are supplementary groups, supported by useradd only
	Groups []string
}

// Apply passes step to visitor
func (step *CreateUserStep) Apply(v StepVisitor) error {
	return v.CreateUser(step)
}

// ActiveUserStep switches user running subsequent steps and the default command
type ActiveUserStep struct {
	Name string
}

// Apply passes step to visitor
func (step *ActiveUserStep) Apply(v StepVisitor) error {
	return v.ActiveUser(step)
}

// EnvVarStep sets environment variable. Value is not expanded, references
// to other variables are resolved by the builder.
type EnvVarStep struct {
	Key   string
	Value string
}

// Apply passes step to visitor
func (step *EnvVarStep) Apply(v StepVisitor) error {
	return v.EnvVar(step)
}

// DefaultCommandStep sets command executed when environment is started
type DefaultCommandStep struct {
	Argv []string
}

// Apply passes step to visitor
func (step *DefaultCommandStep) Apply(v StepVisitor) error {
	return v.DefaultCommand(step)
}

// RunShellStep runs shell script which has no typed equivalent
type RunShellStep struct {
	Script string
}

// Apply passes step to visitor
func (step *RunShellStep) Apply(v StepVisitor) error {
	return v.RunShell(step)
}
