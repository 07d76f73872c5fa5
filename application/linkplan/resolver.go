package linkplan

import (
	"fmt"
	"path/filepath"

	"github.com/amdgpu-go/devlibs/domain/entities"
)

// AbiVersion is the code object ABI version every artifact is built against.
const AbiVersion = 500

// BitcodeSubdir is where a ROCm installation keeps its device libraries.
const BitcodeSubdir = "amdgcn/bitcode"

// Environment variables a plan depends on. A change to any of them must
// invalidate a cached build.
const (
	EnvTargetFeature = "CARGO_CFG_TARGET_FEATURE"
	EnvEncodedFlags  = "CARGO_ENCODED_RUSTFLAGS"
	EnvFlags         = "RUSTFLAGS"
	EnvROCmPath      = "ROCM_PATH"
	EnvDeviceLibPath = "ROCM_DEVICE_LIB_PATH"
	// EnvHelperDir points at the directory holding util32.bc and util64.bc.
	EnvHelperDir = "DEVLIBS_HELPER_DIR"
)

// linkerWorkarounds are required for linker-plugin LTO on amdgcn.
var linkerWorkarounds = []string{"--undefined-version", "--no-gc-sections"}

// Inputs is everything Resolve depends on.
type Inputs struct {
	Target   entities.TargetIdentifier
	Features entities.FeatureSet
	Width    entities.ExecutionWidth
	// LibraryDir is the device library directory (<base>/amdgcn/bitcode).
	LibraryDir string
	// HelperDir holds the bridge runtime's own util32.bc/util64.bc.
	HelperDir string
}

// Resolve returns the ordered link plan for in. It is pure: identical inputs
// always produce an identical plan, in the same order.
func Resolve(in Inputs) entities.LinkPlan {
	lib := func(name string) string {
		return filepath.Join(in.LibraryDir, name)
	}
	helper := filepath.Join(in.HelperDir, fmt.Sprintf("util%d.bc", uint32(in.Width)))

	return entities.LinkPlan{
		Target:   in.Target,
		Width:    in.Width,
		Features: in.Features.Names(),
		Artifacts: []entities.LinkArtifact{
			{Kind: entities.HelperLib, Path: lib("ockl.bc")},
			{Kind: entities.ArchitectureVersionLib, Path: lib("oclc_isa_version_" + in.Target.Version() + ".bc")},
			{Kind: entities.AbiVersionLib, Path: lib(fmt.Sprintf("oclc_abi_version_%d.bc", AbiVersion))},
			{Kind: entities.ExecutionWidthLib, Path: lib("oclc_wavefrontsize64_" + in.Width.Switch() + ".bc")},
			{Kind: entities.HelperLib, Path: helper, Local: true},
		},
		LinkerArgs: append([]string(nil), linkerWorkarounds...),
		Freshness: entities.FreshnessContract{
			Env:   []string{EnvTargetFeature, EnvEncodedFlags, EnvFlags, EnvROCmPath, EnvDeviceLibPath, EnvHelperDir},
			Files: []string{helper},
		},
	}
}
