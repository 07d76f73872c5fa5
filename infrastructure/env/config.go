// Package env loads and validates the build tool's configuration from the
// process environment.
package env

import (
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/amdgpu-go/devlibs/application/linkplan"
	"github.com/amdgpu-go/devlibs/domain/errors"
)

// Variables read besides the ones the link plan itself depends on.
const (
	EnvOutDir   = "OUT_DIR"
	EnvLogLevel = "DEVLIBS_LOG_LEVEL"
)

// executable locates the running build tool.
var executable = os.Executable

// validate is a package-level singleton; creating a validator per call is expensive.
var validate = validator.New()

// Config is the environment of one build.
type Config struct {
	// ROCmPath is the primary library search base.
	ROCmPath string `validate:"required_without=DeviceLibPath"`
	// DeviceLibPath overrides ROCmPath when set.
	DeviceLibPath string
	// HelperDir holds util32.bc and util64.bc. Defaults to the directory of
	// the build tool, where the helpers ship.
	HelperDir string `validate:"required,dir"`
	// TargetFeature is the baseline feature list.
	TargetFeature string
	// OutDir receives the plan manifest. Optional.
	OutDir   string `validate:"omitempty,dir"`
	LogLevel string `validate:"omitempty,oneof=debug info warn error"`
}

// envNames maps Config fields to the variables they are read from.
var envNames = map[string]string{
	"ROCmPath":      linkplan.EnvROCmPath,
	"DeviceLibPath": linkplan.EnvDeviceLibPath,
	"HelperDir":     linkplan.EnvHelperDir,
	"TargetFeature": linkplan.EnvTargetFeature,
	"OutDir":        EnvOutDir,
	"LogLevel":      EnvLogLevel,
}

// Load reads the configuration through lookup, typically os.LookupEnv.
// It does not validate; call Validate.
func Load(lookup func(string) (string, bool)) Config {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	cfg := Config{
		ROCmPath:      get(linkplan.EnvROCmPath),
		DeviceLibPath: get(linkplan.EnvDeviceLibPath),
		HelperDir:     get(linkplan.EnvHelperDir),
		TargetFeature: get(linkplan.EnvTargetFeature),
		OutDir:        get(EnvOutDir),
		LogLevel:      get(EnvLogLevel),
	}
	if cfg.HelperDir == "" {
		cfg.HelperDir = toolDir()
	}
	return cfg
}

// toolDir returns the directory of the running executable, symlinks
// resolved, or "" when it cannot be determined.
func toolDir() string {
	exe, err := executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// Validate checks the configuration. A missing search path source yields a
// MissingLibraryPathError; any other problem a ConfigurationError.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stdErrors.As(err, &verrs) || len(verrs) == 0 {
		return &errors.ConfigurationError{Reason: "invalid configuration", Err: err}
	}

	fe := verrs[0]
	name := envNames[fe.StructField()]
	if fe.StructField() == "ROCmPath" && fe.Tag() == "required_without" {
		return &errors.MissingLibraryPathError{Sources: c.searchSources()}
	}
	return &errors.ConfigurationError{
		Directive: name,
		Value:     fmt.Sprint(fe.Value()),
		Reason:    describeTag(fe),
	}
}

// LibraryDir returns the first search path source whose bitcode directory
// exists, the override before the primary.
func (c Config) LibraryDir() (string, error) {
	var tried []string
	for _, base := range []string{c.DeviceLibPath, c.ROCmPath} {
		if base == "" {
			continue
		}
		dir := filepath.Join(base, linkplan.BitcodeSubdir)
		if validate.Var(dir, "dir") == nil {
			return dir, nil
		}
		tried = append(tried, dir)
	}
	return "", &errors.MissingLibraryPathError{Sources: c.searchSources(), Tried: tried}
}

func (c Config) searchSources() []string {
	return []string{linkplan.EnvDeviceLibPath, linkplan.EnvROCmPath}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be set"
	case "dir":
		return "must name an existing directory"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
