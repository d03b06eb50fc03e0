package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outofforest/envspec/infra/description"
	"github.com/outofforest/envspec/infra/types"
)

const scenario = `FROM gcc:latest
WORKDIR /workspace
RUN apt-get install -y git cmake
RUN useradd -m -s /bin/bash coderunner
USER coderunner
ENV CC=gcc
ENV CXX=g++
CMD ["/bin/bash"]
`

func malformedError(t *testing.T, err error) *types.MalformedInputError {
	t.Helper()
	require.Error(t, err)
	var merr *types.MalformedInputError
	require.True(t, errors.As(err, &merr), "unexpected error: %s", err)
	return merr
}

func TestParseScenario(t *testing.T) {
	d, err := Parse(strings.NewReader(scenario))
	require.NoError(t, err)

	assert.Equal(t, types.NewBaseImage("gcc", "latest"), d.Base())
	expected := []description.Step{
		description.WorkingDirectory("/workspace"),
		description.InstallPackages(description.APT, "git", "cmake"),
		description.CreateUser("coderunner", "/bin/bash", true),
		description.ActiveUser("coderunner"),
		description.EnvVar("CC", "gcc"),
		description.EnvVar("CXX", "g++"),
		description.DefaultCommand("/bin/bash"),
	}
	if diff := cmp.Diff(expected, d.Steps()); diff != "" {
		t.Errorf("unexpected steps (-want +got):\n%s", diff)
	}
}

func TestParseMisplacedDefaultCommand(t *testing.T) {
	text := strings.Replace(scenario, "ENV CXX=g++\nCMD [\"/bin/bash\"]\n", "CMD [\"/bin/bash\"]\nENV CXX=g++\n", 1)
	_, err := Parse(strings.NewReader(text))

	merr := malformedError(t, err)
	assert.Equal(t, 7, merr.Line)
	assert.Equal(t, "CMD", merr.Directive)

	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 5, verr.Index)
}

func TestParseDanglingUser(t *testing.T) {
	_, err := Parse(strings.NewReader("FROM gcc\nUSER coderunner\n"))
	merr := malformedError(t, err)
	assert.Equal(t, 2, merr.Line)

	d, err := Parse(strings.NewReader("FROM gcc\nUSER coderunner\n"), description.WithBaseUsers("coderunner"))
	require.NoError(t, err)
	assert.Len(t, d.Steps(), 1)
}

func TestParseForms(t *testing.T) {
	d, err := Parse(strings.NewReader(`# environment
FROM golang:1.21-alpine
RUN apk update && apk add --no-cache bash git && rm -rf /var/cache/apk/*
RUN ["adduser", "-D", "-s", "/bin/bash", "coderunner"]
RUN make \
    install
ENV A="x y" B='single quoted'
ENV LEGACY value with spaces
USER coderunner
CMD exec /bin/bash
`))
	require.NoError(t, err)

	expected := []description.Step{
		description.InstallPackages(description.APK, "bash", "git"),
		description.CreateUserWith(description.AddUser, "coderunner", "/bin/bash", true),
		description.RunShell("make     install"),
		description.EnvVar("A", "x y"),
		description.EnvVar("B", "single quoted"),
		description.EnvVar("LEGACY", "value with spaces"),
		description.ActiveUser("coderunner"),
		description.DefaultCommand("/bin/sh", "-c", "exec /bin/bash"),
	}
	if diff := cmp.Diff(expected, d.Steps()); diff != "" {
		t.Errorf("unexpected steps (-want +got):\n%s", diff)
	}
}

func TestParseUserWithIDAndGroups(t *testing.T) {
	d, err := Parse(strings.NewReader(`FROM debian:12
RUN useradd -m -u 1000 -G sudo coderunner
USER coderunner
`))
	require.NoError(t, err)

	expected := []description.Step{
		&description.CreateUserStep{Tool: description.UserAdd, Name: "coderunner", Home: true, UID: "1000", Groups: []string{"sudo"}},
		description.ActiveUser("coderunner"),
	}
	if diff := cmp.Diff(expected, d.Steps()); diff != "" {
		t.Errorf("unexpected steps (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tcs := []struct {
		name      string
		text      string
		line      int
		directive string
	}{
		{name: "UnknownDirective", text: "FROM gcc\nEXPOSE 8080", line: 2},
		{name: "NoBaseImage", text: "# nothing\n", line: 0},
		{name: "BaseImageNotFirst", text: "WORKDIR /workspace\nFROM gcc", line: 1, directive: "WORKDIR"},
		{name: "BaseImageTwice", text: "FROM gcc\nFROM golang", line: 2, directive: "FROM"},
		{name: "InvalidBaseImage", text: "FROM GCC", line: 1, directive: "FROM"},
		{name: "FromWithoutImage", text: "FROM", line: 1, directive: "FROM"},
		{name: "WorkDirWithoutPath", text: "FROM gcc\nWORKDIR", line: 2, directive: "WORKDIR"},
		{name: "RunWithoutCommand", text: "FROM gcc\nRUN", line: 2, directive: "RUN"},
		{name: "UserWithTwoArgs", text: "FROM gcc\nUSER a b", line: 2, directive: "USER"},
		{name: "EnvWithoutValue", text: "FROM gcc\n\nENV A", line: 3},
		{name: "EnvWithCommand", text: "FROM gcc\nENV A=$(id)", line: 2, directive: "ENV"},
		{name: "EmptyCommand", text: "FROM gcc\nCMD []", line: 2, directive: "CMD"},
		{name: "InvalidUserName", text: "FROM gcc\nUSER Admin.User", line: 2, directive: "USER"},
		{name: "InvalidPackage", text: "FROM gcc\nRUN [\"apt-get\", \"install\", \"-y\", \"Git Tools\"]", line: 2, directive: "RUN"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.text))
			merr := malformedError(t, err)
			assert.Equal(t, tc.line, merr.Line)
			assert.Equal(t, tc.directive, merr.Directive)
		})
	}
}

func TestSpecFileParser(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cpp.spec")
	require.NoError(t, os.WriteFile(file, []byte(scenario), 0o600))

	d, err := NewSpecFileParser().Parse(file)
	require.NoError(t, err)
	assert.Len(t, d.Steps(), 7)

	_, err = NewSpecFileParser().Parse(filepath.Join(dir, "missing.spec"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestKind(t *testing.T) {
	tcs := map[string]string{
		"cpp.spec":                "spec",
		"envs/Dockerfile":         "dockerfile",
		"Dockerfile.cpp":          "dockerfile",
		"containerfile":           "dockerfile",
		"go.Dockerfile":           "dockerfile",
		"envs/java.CONTAINERFILE": "dockerfile",
		"envs/php":                "",
		"archive.tar":             "tar",
	}
	for path, kind := range tcs {
		assert.Equal(t, kind, Kind(path), path)
	}
}
