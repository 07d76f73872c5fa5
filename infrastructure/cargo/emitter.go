// Package cargo writes a link plan in the build-script directive format the
// package manager reads from stdout, and persists the plan manifest.
package cargo

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/amdgpu-go/devlibs/application/schema"
	"github.com/amdgpu-go/devlibs/domain/entities"
)

// Manifest file names written into OUT_DIR.
const (
	ManifestFile = "link-plan.json"
	SchemaFile   = "link-plan.schema.json"
)

// Emitter writes build-script directives. The first write error sticks and
// every later directive becomes a no-op.
type Emitter struct {
	w   io.Writer
	err error
}

// NewEmitter returns an Emitter writing to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

func (e *Emitter) directive(key, value string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, "cargo::%s=%s\n", key, value)
}

// LinkArg passes arg to the linker.
func (e *Emitter) LinkArg(arg string) { e.directive("rustc-link-arg", arg) }

// RerunIfEnvChanged invalidates the build when the variable changes.
func (e *Emitter) RerunIfEnvChanged(name string) { e.directive("rerun-if-env-changed", name) }

// RerunIfChanged invalidates the build when the file changes.
func (e *Emitter) RerunIfChanged(path string) { e.directive("rerun-if-changed", path) }

// Warning surfaces msg to the user running the build.
func (e *Emitter) Warning(msg string) { e.directive("warning", msg) }

// Err returns the first write error, if any.
func (e *Emitter) Err() error {
	return e.err
}

// EmitPlan writes the freshness contract, then the artifacts in link order,
// then the extra linker arguments.
func EmitPlan(w io.Writer, plan entities.LinkPlan) error {
	e := NewEmitter(w)
	for _, name := range plan.Freshness.Env {
		e.RerunIfEnvChanged(name)
	}
	for _, path := range plan.Freshness.Files {
		e.RerunIfChanged(path)
	}
	for _, a := range plan.Artifacts {
		e.LinkArg(a.Path)
	}
	for _, arg := range plan.LinkerArgs {
		e.LinkArg(arg)
	}
	if err := e.Err(); err != nil {
		return fmt.Errorf("failed to emit link plan: %w", err)
	}
	return nil
}

// WriteManifest stores plan as JSON in dir, next to its JSON Schema.
func WriteManifest(dir string, plan entities.LinkPlan) error {
	data, err := json.MarshalIndent(entities.NewPlanManifest(plan, SchemaFile), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal link plan: %w", err)
	}

	schemaBytes, err := schema.PlanSchema()
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, ManifestFile), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ManifestFile, err)
	}
	if err := os.WriteFile(filepath.Join(dir, SchemaFile), append(schemaBytes, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", SchemaFile, err)
	}
	return nil
}
