package serialize_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outofforest/envspec/infra"
	"github.com/outofforest/envspec/infra/description"
	"github.com/outofforest/envspec/infra/parser"
	"github.com/outofforest/envspec/infra/serialize"
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

func roundTrip(t *testing.T, d *description.Descriptor) {
	t.Helper()
	parsed, err := parser.Parse(strings.NewReader(serialize.Serialize(d)))
	require.NoError(t, err)
	assert.Equal(t, d.Base(), parsed.Base())
	if diff := cmp.Diff(d.Steps(), parsed.Steps()); diff != "" {
		t.Errorf("descriptor changed after round trip (-want +got):\n%s", diff)
	}
}

func TestSerializeScenario(t *testing.T) {
	d, err := parser.Parse(strings.NewReader(scenario))
	require.NoError(t, err)
	assert.Equal(t, scenario, serialize.Serialize(d))
	roundTrip(t, d)
}

func TestSerializeCanonicalForm(t *testing.T) {
	d, err := parser.Parse(strings.NewReader(`from gcc
# packages
RUN apt-get update && apt-get install -y git git curl && rm -rf /var/lib/apt/lists/*
ENV GREETING="hello world" EMPTY=""
CMD /bin/bash -l
`))
	require.NoError(t, err)
	assert.Equal(t, `FROM gcc:latest
RUN apt-get install -y git curl
ENV GREETING="hello world"
ENV EMPTY=""
CMD ["/bin/sh","-c","/bin/bash -l"]
`, serialize.Serialize(d))
}

func TestRoundTrip(t *testing.T) {
	tcs := map[string]*description.Descriptor{
		"quoting": description.Describe(types.BaseImage{Name: "ghcr.io/org/base", Tag: "1.0"},
			description.WorkingDirectory("/srv/my app"),
			description.InstallPackages(description.APT, "python3=3.11.2-1", "g++"),
			description.CreateUserWith(description.AddUser, "svc", "", false),
			description.ActiveUser("svc"),
			description.EnvVar("MESSAGE", `it's "quoted" \ and $HOME`),
			description.RunShell("echo '<html>' | tee /tmp/index.html"),
			description.DefaultCommand("/bin/sh", "-c", `echo "$MESSAGE" && exec sleep infinity`),
		),
		"userFlags": description.Describe(types.NewBaseImage("debian", "12"),
			&description.CreateUserStep{
				Tool:   description.UserAdd,
				Name:   "coderunner",
				Shell:  "/bin/bash",
				Home:   true,
				UID:    "1000",
				Groups: []string{"sudo", "docker"},
			},
			&description.CreateUserStep{Tool: description.AddUser, Name: "svc", UID: "1001"},
			description.ActiveUser("coderunner"),
			description.RunShell("[ -d /workspace ] || mkdir /workspace"),
		),
		"uid": description.Describe(types.NewBaseImage("alpine", "3"),
			description.ActiveUser("1000"),
			description.EnvVar("HOME", "/home/1000"),
		),
	}

	for name, d := range tcs {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, description.Validate(d))
			roundTrip(t, d)
		})
	}
}

func TestRoundTripRejectsAltered(t *testing.T) {
	tcs := map[string]description.Step{
		"workDirWithSpaces":   description.WorkingDirectory(" /workspace "),
		"scriptWithSpaces":    description.RunShell("  make install"),
		"scriptInJSONForm":    description.RunShell(`["make"]`),
		"workDirContinuation": description.WorkingDirectory(`/workspace\`),
	}

	for name, step := range tcs {
		t.Run(name, func(t *testing.T) {
			d := description.Describe(types.NewBaseImage("gcc", "latest"), step)
			require.Error(t, description.Validate(d))
		})
	}
}

func TestRoundTripPresets(t *testing.T) {
	repo := infra.NewPresetRepository()
	for _, name := range repo.Names() {
		t.Run(name, func(t *testing.T) {
			roundTrip(t, repo.Retrieve(name))
		})
	}
}

func TestJSONArray(t *testing.T) {
	assert.Equal(t, `["/bin/bash"]`, serialize.JSONArray([]string{"/bin/bash"}))
	assert.Equal(t, `["a<b>&"]`, serialize.JSONArray([]string{"a<b>&"}))
	assert.Equal(t, `[]`, serialize.JSONArray(nil))
}
