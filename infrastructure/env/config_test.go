package env

import (
	stdErrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amdgpu-go/devlibs/domain/errors"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// rocmTree creates <root>/amdgcn/bitcode and returns root.
func rocmTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "amdgcn", "bitcode"), 0o755))
	return root
}

func TestLoad(t *testing.T) {
	cfg := Load(lookupFrom(map[string]string{
		"ROCM_PATH":                "/opt/rocm",
		"DEVLIBS_HELPER_DIR":       "/prebuilt",
		"CARGO_CFG_TARGET_FEATURE": "xnack",
		"OUT_DIR":                  "/tmp/out",
	}))

	assert.Equal(t, "/opt/rocm", cfg.ROCmPath)
	assert.Empty(t, cfg.DeviceLibPath)
	assert.Equal(t, "/prebuilt", cfg.HelperDir)
	assert.Equal(t, "xnack", cfg.TargetFeature)
	assert.Equal(t, "/tmp/out", cfg.OutDir)
}

func stubExecutable(t *testing.T, fn func() (string, error)) {
	t.Helper()
	orig := executable
	executable = fn
	t.Cleanup(func() { executable = orig })
}

func TestLoad_HelperDirDefaultsToToolDir(t *testing.T) {
	toolDir := t.TempDir()
	stubExecutable(t, func() (string, error) {
		return filepath.Join(toolDir, "devlibs-build"), nil
	})

	cfg := Load(lookupFrom(map[string]string{
		"CARGO_MANIFEST_DIR": "/src/consumer-crate",
	}))
	assert.Equal(t, toolDir, cfg.HelperDir, "the consumer crate directory is not where helpers ship")
}

func TestLoad_HelperDirFollowsSymlinkedTool(t *testing.T) {
	realDir := t.TempDir()
	tool := filepath.Join(realDir, "devlibs-build")
	require.NoError(t, os.WriteFile(tool, nil, 0o755))
	link := filepath.Join(t.TempDir(), "devlibs-build")
	require.NoError(t, os.Symlink(tool, link))

	stubExecutable(t, func() (string, error) { return link, nil })

	resolvedDir, err := filepath.EvalSymlinks(realDir)
	require.NoError(t, err)
	assert.Equal(t, resolvedDir, Load(lookupFrom(nil)).HelperDir)
}

func TestLoad_HelperDirUnknownTool(t *testing.T) {
	stubExecutable(t, func() (string, error) { return "", stdErrors.New("no executable") })

	cfg := Load(lookupFrom(nil))
	assert.Empty(t, cfg.HelperDir)
}

func TestValidate(t *testing.T) {
	helper := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		cfg := Config{ROCmPath: "/opt/rocm", HelperDir: helper, LogLevel: "debug"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("override alone is enough", func(t *testing.T) {
		cfg := Config{DeviceLibPath: "/opt/rocm/lib", HelperDir: helper}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("no search path", func(t *testing.T) {
		cfg := Config{HelperDir: helper}
		err := cfg.Validate()
		require.Error(t, err)

		var pathErr *errors.MissingLibraryPathError
		require.True(t, stdErrors.As(err, &pathErr))
		assert.Equal(t, []string{"ROCM_DEVICE_LIB_PATH", "ROCM_PATH"}, pathErr.Sources)
	})

	t.Run("helper dir missing", func(t *testing.T) {
		cfg := Config{ROCmPath: "/opt/rocm"}
		err := cfg.Validate()

		var cfgErr *errors.ConfigurationError
		require.True(t, stdErrors.As(err, &cfgErr))
		assert.Equal(t, "DEVLIBS_HELPER_DIR", cfgErr.Directive)
		assert.Equal(t, "must be set", cfgErr.Reason)
	})

	t.Run("helper dir does not exist", func(t *testing.T) {
		cfg := Config{ROCmPath: "/opt/rocm", HelperDir: filepath.Join(helper, "nope")}
		err := cfg.Validate()

		var cfgErr *errors.ConfigurationError
		require.True(t, stdErrors.As(err, &cfgErr))
		assert.Equal(t, "must name an existing directory", cfgErr.Reason)
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := Config{ROCmPath: "/opt/rocm", HelperDir: helper, LogLevel: "verbose"}
		err := cfg.Validate()

		var cfgErr *errors.ConfigurationError
		require.True(t, stdErrors.As(err, &cfgErr))
		assert.Equal(t, "DEVLIBS_LOG_LEVEL", cfgErr.Directive)
		assert.Contains(t, cfgErr.Reason, "debug info warn error")
	})
}

func TestLibraryDir(t *testing.T) {
	primary := rocmTree(t)
	override := rocmTree(t)

	t.Run("primary only", func(t *testing.T) {
		dir, err := Config{ROCmPath: primary}.LibraryDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(primary, "amdgcn", "bitcode"), dir)
	})

	t.Run("override wins", func(t *testing.T) {
		dir, err := Config{ROCmPath: primary, DeviceLibPath: override}.LibraryDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(override, "amdgcn", "bitcode"), dir)
	})

	t.Run("override missing falls back to primary", func(t *testing.T) {
		dir, err := Config{ROCmPath: primary, DeviceLibPath: t.TempDir()}.LibraryDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(primary, "amdgcn", "bitcode"), dir)
	})

	t.Run("neither exists", func(t *testing.T) {
		empty := t.TempDir()
		_, err := Config{ROCmPath: empty}.LibraryDir()
		require.Error(t, err)

		var pathErr *errors.MissingLibraryPathError
		require.True(t, stdErrors.As(err, &pathErr))
		assert.Equal(t, []string{filepath.Join(empty, "amdgcn", "bitcode")}, pathErr.Tried)
		assert.True(t, errors.IsFatal(err))
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := Config{}.LibraryDir()
		var pathErr *errors.MissingLibraryPathError
		require.True(t, stdErrors.As(err, &pathErr))
		assert.Empty(t, pathErr.Tried)
	})
}
