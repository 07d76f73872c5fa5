package linkplan

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amdgpu-go/devlibs/domain/entities"
)

const (
	testLibDir    = "/opt/rocm/amdgcn/bitcode"
	testHelperDir = "/src/devlibs/bitcode"
)

func resolveFor(target entities.TargetIdentifier, features entities.FeatureSet) entities.LinkPlan {
	return Resolve(Inputs{
		Target:     target,
		Features:   features,
		Width:      DefaultWidth(target, features),
		LibraryDir: testLibDir,
		HelperDir:  testHelperDir,
	})
}

func TestResolve_Gfx906(t *testing.T) {
	plan := resolveFor("gfx906", entities.FeatureSet{})

	assert.Equal(t, entities.Wave64, plan.Width)
	want := []entities.LinkArtifact{
		{Kind: entities.HelperLib, Path: filepath.Join(testLibDir, "ockl.bc")},
		{Kind: entities.ArchitectureVersionLib, Path: filepath.Join(testLibDir, "oclc_isa_version_906.bc")},
		{Kind: entities.AbiVersionLib, Path: filepath.Join(testLibDir, "oclc_abi_version_500.bc")},
		{Kind: entities.ExecutionWidthLib, Path: filepath.Join(testLibDir, "oclc_wavefrontsize64_on.bc")},
		{Kind: entities.HelperLib, Path: filepath.Join(testHelperDir, "util64.bc"), Local: true},
	}
	if diff := cmp.Diff(want, plan.Artifacts); diff != "" {
		t.Errorf("artifacts mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"--undefined-version", "--no-gc-sections"}, plan.LinkerArgs)
}

func TestResolve_Gfx1100(t *testing.T) {
	plan := resolveFor("gfx1100", entities.FeatureSet{})

	require.Len(t, plan.Artifacts, 5)
	assert.Equal(t, entities.Wave32, plan.Width)
	assert.Equal(t, filepath.Join(testLibDir, "oclc_isa_version_1100.bc"), plan.Artifacts[1].Path)
	assert.Equal(t, filepath.Join(testLibDir, "oclc_wavefrontsize64_off.bc"), plan.Artifacts[3].Path)
	assert.Equal(t, filepath.Join(testHelperDir, "util32.bc"), plan.Artifacts[4].Path)
}

func TestResolve_Gfx1100Wave64Feature(t *testing.T) {
	plan := resolveFor("gfx1100", entities.NewFeatureSet(entities.FeatureWavefrontSize64))

	assert.Equal(t, entities.Wave64, plan.Width)
	assert.Equal(t, filepath.Join(testLibDir, "oclc_wavefrontsize64_on.bc"), plan.Artifacts[3].Path)
	assert.Equal(t, filepath.Join(testHelperDir, "util64.bc"), plan.Artifacts[4].Path)
	assert.Equal(t, []string{entities.FeatureWavefrontSize64}, plan.Features)
}

func TestResolve_Pure(t *testing.T) {
	inputs := []Inputs{
		{Target: "gfx906", Width: entities.Wave64, LibraryDir: testLibDir, HelperDir: testHelperDir},
		{Target: "gfx1100", Features: entities.NewFeatureSet("b", "a", "c"), Width: entities.Wave32, LibraryDir: testLibDir, HelperDir: testHelperDir},
		{Target: "gfx9-generic", Features: entities.NewFeatureSet("xnack"), Width: entities.Wave64, LibraryDir: "/rocm", HelperDir: "."},
	}

	for _, in := range inputs {
		t.Run(string(in.Target), func(t *testing.T) {
			first := Resolve(in)
			second := Resolve(in)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("Resolve is not deterministic (-first +second):\n%s", diff)
			}
			assert.Equal(t, first.Fingerprint(), second.Fingerprint())
		})
	}
}

func TestResolve_ArtifactKindsInOrder(t *testing.T) {
	plan := resolveFor("gfx1030", entities.FeatureSet{})

	var kinds []entities.ArtifactKind
	for _, a := range plan.Artifacts {
		kinds = append(kinds, a.Kind)
	}
	assert.Equal(t, []entities.ArtifactKind{
		entities.HelperLib,
		entities.ArchitectureVersionLib,
		entities.AbiVersionLib,
		entities.ExecutionWidthLib,
		entities.HelperLib,
	}, kinds)
}

func TestResolve_FreshnessContract(t *testing.T) {
	plan := resolveFor("gfx906", entities.FeatureSet{})

	assert.ElementsMatch(t, []string{
		EnvTargetFeature, EnvEncodedFlags, EnvFlags, EnvROCmPath, EnvDeviceLibPath, EnvHelperDir,
	}, plan.Freshness.Env)
	assert.Equal(t, []string{filepath.Join(testHelperDir, "util64.bc")}, plan.Freshness.Files)
}

func TestResolve_HelperDirIsTracked(t *testing.T) {
	in := Inputs{
		Target:     "gfx906",
		Width:      entities.Wave64,
		LibraryDir: "/opt/rocm/amdgcn/bitcode",
	}
	in.HelperDir = "/a"
	a := Resolve(in)
	in.HelperDir = "/b"
	b := Resolve(in)

	require.NotEqual(t, a.Artifacts[4].Path, b.Artifacts[4].Path)
	assert.Contains(t, a.Freshness.Env, EnvHelperDir)
	assert.Contains(t, a.Freshness.Files, a.Artifacts[4].Path)
	assert.Contains(t, b.Freshness.Files, b.Artifacts[4].Path)
}

func TestResolve_LinkerArgsNotShared(t *testing.T) {
	plan := resolveFor("gfx906", entities.FeatureSet{})
	plan.LinkerArgs[0] = "mutated"

	again := resolveFor("gfx906", entities.FeatureSet{})
	assert.Equal(t, "--undefined-version", again.LinkerArgs[0])
}
