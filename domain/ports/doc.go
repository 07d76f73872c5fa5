// Package ports defines the capabilities the rest of the module consumes from
// outside: the raw build flag stream at build time, and the host-resident
// routines and compiler intrinsics at execution time.
// Infrastructure adapters and the native device bindings implement them.
package ports
