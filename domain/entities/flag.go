package entities

// Codegen options the link planner understands.
const (
	OptionTargetCPU     = "target-cpu"
	OptionTargetFeature = "target-feature"
)

// CodegenFlag is one "-C option[=value]" directive from the raw build flag stream.
type CodegenFlag struct {
	Option   string
	Value    string
	HasValue bool
}

func (f CodegenFlag) String() string {
	if !f.HasValue {
		return "-C" + f.Option
	}
	return "-C" + f.Option + "=" + f.Value
}
