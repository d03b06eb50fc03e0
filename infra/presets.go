package infra

import (
	"github.com/outofforest/envspec/infra/description"
	"github.com/outofforest/envspec/infra/types"
)

const (
	workspace = "/workspace"
	runner    = "coderunner"
	shell     = "/bin/bash"
)

var commonPackages = []string{"git", "curl", "vim", "nano"}

// NewPresetRepository creates repository containing environments for supported languages
func NewPresetRepository() *Repository {
	repo := NewRepository()
	repo.Store("cpp", description.Describe(types.NewBaseImage("gcc", "latest"),
		description.WorkingDirectory(workspace),
		description.InstallPackages(description.APT, packages("cmake", "make", "gdb", "valgrind")...),
		description.CreateUser(runner, shell, true),
		description.ActiveUser(runner),
		description.EnvVar("CC", "gcc"),
		description.EnvVar("CXX", "g++"),
		description.DefaultCommand(shell),
	))
	repo.Store("go", description.Describe(types.NewBaseImage("golang", "1.21-alpine"),
		description.WorkingDirectory(workspace),
		description.InstallPackages(description.APK, packages("bash")...),
		description.CreateUserWith(description.AddUser, runner, shell, true),
		description.ActiveUser(runner),
		description.EnvVar("GOPATH", workspace),
		description.EnvVar("GOCACHE", "/tmp/.cache/go-build"),
		description.EnvVar("PATH", "$GOPATH/bin:$PATH"),
		description.DefaultCommand(shell),
	))
	repo.Store("java", description.Describe(types.NewBaseImage("openjdk", "17-slim"),
		description.WorkingDirectory(workspace),
		description.InstallPackages(description.APT, packages("maven", "gradle")...),
		description.CreateUser(runner, shell, true),
		description.ActiveUser(runner),
		description.EnvVar("JAVA_HOME", "/usr/local/openjdk-17"),
		description.EnvVar("PATH", "$JAVA_HOME/bin:$PATH"),
		description.EnvVar("CLASSPATH", workspace),
		description.DefaultCommand(shell),
	))
	repo.Store("php", description.Describe(types.NewBaseImage("php", "8.2-cli"),
		description.WorkingDirectory(workspace),
		description.InstallPackages(description.APT, packages("zip", "unzip", "libzip-dev")...),
		description.RunShell("docker-php-ext-install zip pdo pdo_mysql"),
		description.RunShell("curl -sS https://getcomposer.org/installer | php -- --install-dir=/usr/local/bin --filename=composer"),
		description.CreateUser(runner, shell, true),
		description.ActiveUser(runner),
		description.EnvVar("PATH", "/workspace/vendor/bin:$PATH"),
		description.DefaultCommand(shell),
	))
	return repo
}

func packages(extra ...string) []string {
	return append(append([]string{}, commonPackages...), extra...)
}
