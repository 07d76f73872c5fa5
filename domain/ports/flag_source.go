package ports

import "github.com/amdgpu-go/devlibs/domain/entities"

// FlagSource yields the codegen directives of the build, in command-line order.
type FlagSource interface {
	// CodegenFlags returns every -C directive; non-codegen flags are dropped.
	CodegenFlags() ([]entities.CodegenFlag, error)
}
