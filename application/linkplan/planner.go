package linkplan

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/amdgpu-go/devlibs/domain/entities"
	"github.com/amdgpu-go/devlibs/domain/ports"
)

// Request carries the raw build inputs of one planning run.
type Request struct {
	Flags ports.FlagSource
	// Baseline is the comma-separated feature list enabled for the target.
	Baseline   string
	LibraryDir string
	HelperDir  string
}

// Plan runs the normalizer, the classifier and the resolver over req.
func Plan(req Request) (entities.LinkPlan, error) {
	log := Logger()

	if req.Flags == nil {
		return entities.LinkPlan{}, fmt.Errorf("linkplan: no flag source")
	}
	flags, err := req.Flags.CodegenFlags()
	if err != nil {
		return entities.LinkPlan{}, fmt.Errorf("failed to read codegen flags: %w", err)
	}

	baseline := ParseBaseline(req.Baseline)
	directives := FeatureDirectives(flags)
	features := NormalizeFeatures(baseline, directives)
	log.Debug("normalized target features",
		zap.Strings("baseline", baseline),
		zap.Int("directives", len(directives)),
		zap.Strings("features", features.Names()))

	target, err := ClassifyTarget(flags)
	if err != nil {
		return entities.LinkPlan{}, err
	}
	width := DefaultWidth(target, features)
	log.Info("classified target",
		zap.Stringer("target", target),
		zap.Stringer("generation", target.Generation()),
		zap.Stringer("width", width))

	plan := Resolve(Inputs{
		Target:     target,
		Features:   features,
		Width:      width,
		LibraryDir: req.LibraryDir,
		HelperDir:  req.HelperDir,
	})
	log.Debug("resolved link plan",
		zap.Strings("artifacts", plan.Paths()),
		zap.String("fingerprint", plan.Fingerprint()))
	return plan, nil
}
