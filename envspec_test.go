package envspec

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/outofforest/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/outofforest/envspec/config"
	"github.com/outofforest/envspec/infra"
	"github.com/outofforest/envspec/infra/parser"
	"github.com/outofforest/envspec/infra/render"
)

func newEnv(t *testing.T) (context.Context, *infra.Loader) {
	t.Helper()
	ctx := logger.WithLogger(context.Background(), zap.NewNop())
	return ctx, infra.NewLoader(infra.NewPresetRepository(), parser.NewSpecFileParser())
}

func TestCheck(t *testing.T) {
	ctx, loader := newEnv(t)
	results, err := Check(ctx, config.Input{Sources: []string{"cpp", "go", "java", "php"}}, config.Logging{}, config.Validation{}, loader)
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, CheckResult{Source: "cpp", Base: "gcc:latest", Steps: 7}, results[0])
	assert.Equal(t, "php", results[3].Source)
}

func TestCheckFails(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "broken.spec")
	require.NoError(t, os.WriteFile(file, []byte("FROM gcc\nCMD [\"/bin/bash\"]\nUSER root\n"), 0o600))

	ctx, loader := newEnv(t)
	_, err := Check(ctx, config.Input{Sources: []string{"cpp", file}}, config.Logging{Verbose: true}, config.Validation{}, loader)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default command must be the last step")
}

func TestRender(t *testing.T) {
	ctx, loader := newEnv(t)
	renderConfig := (&config.RenderFactory{NoCleanup: true}).Config(config.Validation{})
	instructions, err := Render(ctx, config.Input{Sources: []string{"cpp"}}, config.Logging{}, renderConfig, loader)
	require.NoError(t, err)

	require.Len(t, instructions, 8)
	assert.Equal(t, render.Instruction{Kind: render.From, Args: []string{"gcc:latest"}}, instructions[0])
	assert.Equal(t, "RUN apt-get update && apt-get install -y git curl vim nano cmake make gdb valgrind",
		instructions[2].String())

	_, err = Render(ctx, config.Input{Sources: []string{"cpp", "go"}}, config.Logging{}, renderConfig, loader)
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	_, loader := newEnv(t)
	text, err := Format(config.Input{Sources: []string{"java"}}, config.Validation{}, loader)
	require.NoError(t, err)
	assert.Equal(t, `FROM openjdk:17-slim
WORKDIR /workspace
RUN apt-get install -y git curl vim nano maven gradle
RUN useradd -m -s /bin/bash coderunner
USER coderunner
ENV JAVA_HOME=/usr/local/openjdk-17
ENV PATH=$JAVA_HOME/bin:$PATH
ENV CLASSPATH=/workspace
CMD ["/bin/bash"]
`, text)
}

func TestPresets(t *testing.T) {
	presets := Presets(infra.NewPresetRepository())
	require.Len(t, presets, 4)
	assert.Equal(t, "compiler-server-go:latest", presets[1].Image)
}
