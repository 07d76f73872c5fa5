package entities

import "sort"

// FeatureWavefrontSize64 is the feature that forces wave64 execution.
const FeatureWavefrontSize64 = "wavefrontsize64"

// FeatureOp is the kind of a FeatureDirective.
type FeatureOp int

const (
	// FeatureAdd enables a feature ("+name").
	FeatureAdd FeatureOp = iota
	// FeatureRemove disables a feature ("-name").
	FeatureRemove
)

func (op FeatureOp) String() string {
	if op == FeatureRemove {
		return "remove"
	}
	return "add"
}

// FeatureDirective adds or removes one feature name.
type FeatureDirective struct {
	Name string
	Op   FeatureOp
}

// Add returns a directive enabling name.
func Add(name string) FeatureDirective {
	return FeatureDirective{Op: FeatureAdd, Name: name}
}

// Remove returns a directive disabling name.
func Remove(name string) FeatureDirective {
	return FeatureDirective{Op: FeatureRemove, Name: name}
}

// FeatureSet is the set of enabled target features.
// The zero value is an empty, usable set.
type FeatureSet struct {
	names map[string]struct{}
}

// NewFeatureSet returns a set containing names.
func NewFeatureSet(names ...string) FeatureSet {
	fs := FeatureSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		fs.names[n] = struct{}{}
	}
	return fs
}

// Has reports whether name is enabled.
func (fs FeatureSet) Has(name string) bool {
	_, ok := fs.names[name]
	return ok
}

// Add enables name.
func (fs *FeatureSet) Add(name string) {
	if fs.names == nil {
		fs.names = make(map[string]struct{})
	}
	fs.names[name] = struct{}{}
}

// Remove disables name. Removing an absent name is a no-op.
func (fs *FeatureSet) Remove(name string) {
	delete(fs.names, name)
}

// Apply folds a single directive into the set.
func (fs *FeatureSet) Apply(d FeatureDirective) {
	switch d.Op {
	case FeatureRemove:
		fs.Remove(d.Name)
	default:
		fs.Add(d.Name)
	}
}

// Len returns the number of enabled features.
func (fs FeatureSet) Len() int {
	return len(fs.names)
}

// Names returns the enabled features in sorted order.
func (fs FeatureSet) Names() []string {
	names := make([]string, 0, len(fs.names))
	for n := range fs.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the set.
func (fs FeatureSet) Clone() FeatureSet {
	return NewFeatureSet(fs.Names()...)
}

// Equal reports whether both sets enable exactly the same names.
func (fs FeatureSet) Equal(other FeatureSet) bool {
	if fs.Len() != other.Len() {
		return false
	}
	for n := range fs.names {
		if !other.Has(n) {
			return false
		}
	}
	return true
}
