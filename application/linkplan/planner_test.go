package linkplan

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/amdgpu-go/devlibs/domain/entities"
	"github.com/amdgpu-go/devlibs/domain/errors"
	"github.com/amdgpu-go/devlibs/infrastructure/flags"
)

type staticFlags struct {
	flags []entities.CodegenFlag
	err   error
}

func (s staticFlags) CodegenFlags() ([]entities.CodegenFlag, error) {
	return s.flags, s.err
}

func argsSource(args ...string) staticFlags {
	parsed, err := flags.Parse(args)
	return staticFlags{flags: parsed, err: err}
}

func TestPlan(t *testing.T) {
	plan, err := Plan(Request{
		Flags:      argsSource("-Ctarget-cpu=gfx1100", "-Ctarget-feature=+wavefrontsize64,-xnack"),
		Baseline:   "xnack,sramecc",
		LibraryDir: testLibDir,
		HelperDir:  testHelperDir,
	})
	require.NoError(t, err)

	assert.Equal(t, entities.TargetIdentifier("gfx1100"), plan.Target)
	assert.Equal(t, entities.Wave64, plan.Width)
	assert.Equal(t, []string{"sramecc", entities.FeatureWavefrontSize64}, plan.Features)
	assert.Len(t, plan.Artifacts, 5)
}

func TestPlan_MissingTarget(t *testing.T) {
	_, err := Plan(Request{Flags: argsSource("-Copt-level=3")})
	require.Error(t, err)

	var cfgErr *errors.ConfigurationError
	assert.True(t, stdErrors.As(err, &cfgErr))
}

func TestPlan_FlagSourceError(t *testing.T) {
	_, err := Plan(Request{Flags: staticFlags{err: fmt.Errorf("unreadable")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreadable")
}

func TestPlan_NoFlagSource(t *testing.T) {
	_, err := Plan(Request{})
	require.Error(t, err)
}

func TestPlan_LogsClassification(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })

	_, err := Plan(Request{
		Flags:      argsSource("-Ctarget-cpu=gfx906"),
		LibraryDir: testLibDir,
		HelperDir:  testHelperDir,
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("classified target").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "gfx906", fields["target"])
	assert.Equal(t, "wave64", fields["width"])
	assert.Equal(t, "numeric", fields["generation"])
	assert.Equal(t, 1, logs.FilterMessage("resolved link plan").Len())
}
