package description

import (
	"regexp"
	"strings"

	"github.com/ridge/must"
	"mvdan.cc/sh/v3/syntax"
)

// Step is implemented by provisioning steps available in spec file
type Step interface {
	// Apply passes step to the matching method of the visitor
	Apply(v StepVisitor) error
}

// StepVisitor is implemented by everything consuming steps of a descriptor
type StepVisitor interface {
	// WorkingDirectory handles WORKDIR step
	WorkingDirectory(step *WorkingDirectoryStep) error

	// InstallPackages handles package installation
	InstallPackages(step *InstallPackagesStep) error

	// CreateUser handles user creation
	CreateUser(step *CreateUserStep) error

	// ActiveUser handles USER step
	ActiveUser(step *ActiveUserStep) error

	// EnvVar handles ENV step
	EnvVar(step *EnvVarStep) error

	// DefaultCommand handles CMD step
	DefaultCommand(step *DefaultCommandStep) error

	// RunShell handles RUN step which has no typed equivalent
	RunShell(step *RunShellStep) error
}

// PackageManager is the package manager used to install packages
type PackageManager string

const (
	// APT is the package manager of Debian-based images
	APT PackageManager = "apt"

	// APK is the package manager of Alpine-based images
	APK PackageManager = "apk"
)

// IsValid returns true if package manager is supported
func (pm PackageManager) IsValid() bool {
	return pm == APT || pm == APK
}

// UpdateCommand returns shell command refreshing package index
func (pm PackageManager) UpdateCommand() string {
	switch pm {
	case APT:
		return "apt-get update"
	case APK:
		return "apk update"
	default:
		panic("unsupported package manager: " + string(pm))
	}
}

// InstallCommand returns shell command installing packages
func (pm PackageManager) InstallCommand(packages []string) string {
	switch pm {
	case APT:
		return shellJoin(append([]string{"apt-get", "install", "-y"}, packages...)...)
	case APK:
		return shellJoin(append([]string{"apk", "add", "--no-cache"}, packages...)...)
	default:
		panic("unsupported package manager: " + string(pm))
	}
}

// CleanupCommand returns shell command removing package index left by update
func (pm PackageManager) CleanupCommand() string {
	return "rm -rf " + pm.indexGlob()
}

func (pm PackageManager) indexGlob() string {
	switch pm {
	case APT:
		return "/var/lib/apt/lists/*"
	case APK:
		return "/var/cache/apk/*"
	default:
		panic("unsupported package manager: " + string(pm))
	}
}

// UserTool is the tool used to create users
type UserTool string

const (
	// UserAdd is the useradd tool from shadow-utils
	UserAdd UserTool = "useradd"

	// AddUser is the adduser applet of busybox
	AddUser UserTool = "adduser"
)

// IsValid returns true if tool is supported
func (t UserTool) IsValid() bool {
	return t == UserAdd || t == AddUser
}

// Command returns shell command creating the user
func (t UserTool) Command(step *CreateUserStep) string {
	args := []string{string(t)}
	switch t {
	case UserAdd:
		if step.Home {
			args = append(args, "-m")
		}
	case AddUser:
		args = append(args, "-D")
		if !step.Home {
			args = append(args, "-H")
		}
	default:
		panic("unsupported user tool: " + string(t))
	}
	if step.UID != "" {
		args = append(args, "-u", step.UID)
	}
	if len(step.Groups) > 0 {
		args = append(args, "-G", strings.Join(step.Groups, ","))
	}
	if step.Shell != "" {
		args = append(args, "-s", step.Shell)
	}
	return shellJoin(append(args, step.Name)...)
}

var plainWordRegExp = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./~-]+$`)

func shellJoin(words ...string) string {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, ShellQuote(w))
	}
	return strings.Join(quoted, " ")
}

// ShellQuote quotes word so shell interprets it literally
func ShellQuote(word string) string {
	if plainWordRegExp.MatchString(word) && !strings.HasPrefix(word, "~") {
		return word
	}
	return must.String(syntax.Quote(word, syntax.LangBash))
}
