// Command devlibs-build is the build-script entry point. It reads the build
// environment, resolves the device libraries to link for the target and
// prints the matching build directives on stdout. It takes no flags.
//
// Diagnostics go to stderr. Any failure exits with status 1.
package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/amdgpu-go/devlibs/application/linkplan"
	"github.com/amdgpu-go/devlibs/domain/errors"
	"github.com/amdgpu-go/devlibs/infrastructure/cargo"
	"github.com/amdgpu-go/devlibs/infrastructure/env"
	"github.com/amdgpu-go/devlibs/infrastructure/flags"
)

func main() {
	if err := run(os.LookupEnv, os.Stdout, os.Stderr); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

// report prints err on w. Fatal errors are flagged as aborting the build.
func report(w io.Writer, err error) {
	detail := errors.ToErrorDetail(err)
	if errors.IsFatal(err) {
		fmt.Fprintf(w, "devlibs-build: build aborted: %s error: %s\n", detail.Type, detail.Message)
		return
	}
	fmt.Fprintf(w, "devlibs-build: %s error: %s\n", detail.Type, detail.Message)
}

func run(lookup func(string) (string, bool), stdout, stderr io.Writer) error {
	cfg := env.Load(lookup)

	logger := newLogger(stderr, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()
	linkplan.SetLogger(logger)

	if err := cfg.Validate(); err != nil {
		return err
	}

	libDir, err := cfg.LibraryDir()
	if err != nil {
		return err
	}
	logger.Debug("using device library directory", zap.String("dir", libDir))

	source := flags.NewSource(lookup)
	if codegen, flagErr := source.CodegenFlags(); flagErr == nil {
		logger.Debug("codegen flags", zap.String("flags", flags.String(codegen)))
	}

	plan, err := linkplan.Plan(linkplan.Request{
		Flags:      source,
		Baseline:   cfg.TargetFeature,
		LibraryDir: libDir,
		HelperDir:  cfg.HelperDir,
	})
	if err != nil {
		return err
	}

	for _, a := range plan.Artifacts {
		if _, statErr := os.Stat(a.Path); statErr != nil {
			logger.Warn("link artifact not found", zap.String("path", a.Path), zap.Error(statErr))
			if a.Local {
				cargo.NewEmitter(stdout).Warning(fmt.Sprintf("helper artifact %s is missing; build it before linking", a.Path))
			}
		}
	}

	if err := cargo.EmitPlan(stdout, plan); err != nil {
		return err
	}

	if cfg.OutDir != "" {
		if err := cargo.WriteManifest(cfg.OutDir, plan); err != nil {
			return err
		}
		logger.Info("wrote link plan manifest",
			zap.String("dir", cfg.OutDir),
			zap.String("fingerprint", plan.Fingerprint()))
	}
	return nil
}

// newLogger builds a development-style console logger on w. Unknown levels
// fall back to info; Validate reports them.
func newLogger(w io.Writer, level string) *zap.Logger {
	lvl := zapcore.InfoLevel
	if level != "" {
		if parsed, err := zapcore.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), lvl)
	return zap.New(core).Named("devlibs-build")
}
