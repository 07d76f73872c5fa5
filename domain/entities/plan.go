package entities

import (
	"crypto/sha256"
	"encoding/hex"
)

// ArtifactKind categorizes a bitcode library in the link plan.
type ArtifactKind string

const (
	ArchitectureVersionLib ArtifactKind = "architecture_version"
	AbiVersionLib          ArtifactKind = "abi_version"
	ExecutionWidthLib      ArtifactKind = "execution_width"
	HelperLib              ArtifactKind = "helper"
)

// LinkArtifact is one precompiled bitcode library to link into the device program.
type LinkArtifact struct {
	Kind ArtifactKind `json:"kind" jsonschema:"enum=architecture_version,enum=abi_version,enum=execution_width,enum=helper"`
	Path string       `json:"path" jsonschema:"minLength=1"`
	// Local marks artifacts shipped with this module rather than the ROCm installation.
	Local bool `json:"local,omitempty"`
}

// FreshnessContract lists the external inputs whose change must invalidate
// a cached build result.
type FreshnessContract struct {
	Env   []string `json:"env"`
	Files []string `json:"files,omitempty"`
}

// LinkPlan is the resolved, ordered set of link inputs for one build.
type LinkPlan struct {
	Target     TargetIdentifier  `json:"target"`
	Features   []string          `json:"features"`
	Artifacts  []LinkArtifact    `json:"artifacts" jsonschema:"minItems=5,maxItems=5"`
	LinkerArgs []string          `json:"linker_args,omitempty"`
	Freshness  FreshnessContract `json:"freshness"`
	Width      ExecutionWidth    `json:"width" jsonschema:"enum=32,enum=64"`
}

// Fingerprint returns a deterministic digest of the ordered link inputs.
// Identical plans always produce identical fingerprints.
func (p LinkPlan) Fingerprint() string {
	h := sha256.New()
	for _, a := range p.Artifacts {
		h.Write([]byte(a.Kind))
		h.Write([]byte{0})
		h.Write([]byte(a.Path))
		h.Write([]byte{0})
	}
	for _, arg := range p.LinkerArgs {
		h.Write([]byte(arg))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Paths returns the artifact paths in link order.
func (p LinkPlan) Paths() []string {
	paths := make([]string, len(p.Artifacts))
	for i, a := range p.Artifacts {
		paths[i] = a.Path
	}
	return paths
}

// PlanManifest is the on-disk form of a LinkPlan.
type PlanManifest struct {
	Schema      string `json:"$schema,omitempty"`
	Fingerprint string `json:"fingerprint" jsonschema:"pattern=^[0-9a-f]{64}$"`
	LinkPlan
}

// NewPlanManifest wraps plan with its fingerprint.
func NewPlanManifest(plan LinkPlan, schemaRef string) PlanManifest {
	return PlanManifest{Schema: schemaRef, Fingerprint: plan.Fingerprint(), LinkPlan: plan}
}
