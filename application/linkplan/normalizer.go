package linkplan

import (
	"strings"

	"github.com/amdgpu-go/devlibs/domain/entities"
)

// ParseBaseline splits a comma-separated feature list, dropping empty entries.
func ParseBaseline(raw string) []string {
	var names []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// FeatureDirectives extracts the ordered add/remove directives from the
// target-feature flags. Each flag value is itself a comma-separated list:
// "-name" removes, "+name" and "name" add. Other flags are ignored.
func FeatureDirectives(flags []entities.CodegenFlag) []entities.FeatureDirective {
	var out []entities.FeatureDirective
	for _, f := range flags {
		if f.Option != entities.OptionTargetFeature || !f.HasValue {
			continue
		}
		for _, item := range strings.Split(f.Value, ",") {
			item = strings.TrimSpace(item)
			if name, ok := strings.CutPrefix(item, "-"); ok {
				if name != "" {
					out = append(out, entities.Remove(name))
				}
				continue
			}
			if name := strings.TrimLeft(item, "+"); name != "" {
				out = append(out, entities.Add(name))
			}
		}
	}
	return out
}

// NormalizeFeatures folds directives over baseline in order; the last
// directive for a name wins. It never fails.
func NormalizeFeatures(baseline []string, directives []entities.FeatureDirective) entities.FeatureSet {
	fs := entities.NewFeatureSet(baseline...)
	for _, d := range directives {
		fs.Apply(d)
	}
	return fs
}
