// Package flags parses the raw compiler flag stream handed to the build by
// the package manager into codegen directives.
package flags

import (
	"strings"

	"github.com/amdgpu-go/devlibs/domain/entities"
	"github.com/amdgpu-go/devlibs/domain/errors"
)

// Environment variables carrying the flag stream. The encoded form takes
// precedence when present, even if empty.
const (
	EnvEncoded = "CARGO_ENCODED_RUSTFLAGS"
	EnvPlain   = "RUSTFLAGS"
)

// encodedSeparator separates arguments in the encoded flag stream.
const encodedSeparator = "\x1f"

// Source is a FlagSource over the two flag stream variables.
type Source struct {
	encoded    string
	plain      string
	hasEncoded bool
}

// NewSource returns a Source reading the flag stream through lookup,
// typically os.LookupEnv.
func NewSource(lookup func(string) (string, bool)) *Source {
	s := &Source{}
	s.encoded, s.hasEncoded = lookup(EnvEncoded)
	s.plain, _ = lookup(EnvPlain)
	return s
}

// Args returns the flag stream split into arguments.
func (s *Source) Args() []string {
	if s.hasEncoded {
		if s.encoded == "" {
			return nil
		}
		return strings.Split(s.encoded, encodedSeparator)
	}
	return strings.Fields(s.plain)
}

// CodegenFlags implements ports.FlagSource.
func (s *Source) CodegenFlags() ([]entities.CodegenFlag, error) {
	return Parse(s.Args())
}

// Parse extracts codegen directives from args. It accepts "-C opt[=v]",
// "-Copt[=v]", "--codegen opt[=v]" and "--codegen=opt[=v]"; every other
// argument is skipped.
func Parse(args []string) ([]entities.CodegenFlag, error) {
	var out []entities.CodegenFlag
	for i := 0; i < len(args); i++ {
		arg := args[i]
		var directive string
		switch {
		case arg == "-C" || arg == "--codegen":
			if i+1 >= len(args) {
				return nil, &errors.ConfigurationError{
					Directive: arg,
					Reason:    "missing codegen option after flag",
				}
			}
			i++
			directive = args[i]
		case strings.HasPrefix(arg, "--codegen="):
			directive = strings.TrimPrefix(arg, "--codegen=")
		case strings.HasPrefix(arg, "-C"):
			directive = strings.TrimPrefix(arg, "-C")
		default:
			continue
		}

		flag, err := parseDirective(directive)
		if err != nil {
			return nil, err
		}
		out = append(out, flag)
	}
	return out, nil
}

func parseDirective(directive string) (entities.CodegenFlag, error) {
	opt, value, hasValue := strings.Cut(directive, "=")
	opt = strings.TrimSpace(opt)
	if opt == "" {
		return entities.CodegenFlag{}, &errors.ConfigurationError{
			Directive: "-C",
			Value:     directive,
			Reason:    "empty codegen option",
		}
	}
	return entities.CodegenFlag{Option: opt, Value: value, HasValue: hasValue}, nil
}

// String renders flags back into "-Copt=value" form, mostly for logging.
func String(flags []entities.CodegenFlag) string {
	parts := make([]string, len(flags))
	for i, f := range flags {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}
