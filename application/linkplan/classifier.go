package linkplan

import (
	"github.com/amdgpu-go/devlibs/domain/entities"
	"github.com/amdgpu-go/devlibs/domain/errors"
)

// ClassifyTarget returns the architecture named by the target-cpu directive.
// When the directive is repeated the last one wins, including a last
// directive without a value.
func ClassifyTarget(flags []entities.CodegenFlag) (entities.TargetIdentifier, error) {
	var (
		last  entities.CodegenFlag
		found bool
	)
	for _, f := range flags {
		if f.Option == entities.OptionTargetCPU {
			last, found = f, true
		}
	}

	if !found {
		return "", &errors.ConfigurationError{
			Directive: entities.OptionTargetCPU,
			Reason:    "not found in codegen flags, pass -Ctarget-cpu=gfx<version>",
		}
	}
	if !last.HasValue || last.Value == "" {
		return "", &errors.ConfigurationError{
			Directive: entities.OptionTargetCPU,
			Reason:    "directive has no value",
		}
	}
	cpu := last.Value

	target := entities.TargetIdentifier(cpu)
	if target.Family() == "" {
		return "", &errors.ConfigurationError{
			Directive: entities.OptionTargetCPU,
			Value:     cpu,
			Reason:    "did not start with " + entities.TargetFamily,
		}
	}
	if target.Version() == "" {
		return "", &errors.ConfigurationError{
			Directive: entities.OptionTargetCPU,
			Value:     cpu,
			Reason:    "missing architecture version",
		}
	}
	return target, nil
}

// DefaultWidth derives the wavefront size for target. An explicit
// wavefrontsize64 feature wins; otherwise the 9xx generations and the
// 9-generic variants default to wave64 and everything newer to wave32.
func DefaultWidth(target entities.TargetIdentifier, features entities.FeatureSet) entities.ExecutionWidth {
	switch {
	case features.Has(entities.FeatureWavefrontSize64):
		return entities.Wave64
	case target.Is9xx():
		return entities.Wave64
	case target.Is9Generic():
		return entities.Wave64
	default:
		return entities.Wave32
	}
}
