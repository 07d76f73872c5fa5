// Package linkplan decides, at build time, which precompiled device library
// artifacts a kernel must be linked against.
//
// The pipeline has three stages that all read the same codegen flag stream:
//
//   - NormalizeFeatures folds the baseline feature list and the target-feature
//     directives into the enabled FeatureSet.
//   - ClassifyTarget finds the target-cpu directive, and DefaultWidth derives
//     the wavefront size from it and the features.
//   - Resolve turns the result into an ordered, reproducible LinkPlan.
//
// Plan runs all three. Every stage is a pure function of its inputs; reading
// the environment and checking the filesystem belong to the caller.
package linkplan
