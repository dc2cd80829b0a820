package transform

import (
	"fmt"

	"github.com/bazelbuild/buildtools/build"
)

// StarlarkFormatter returns a Func that reprints Starlark output in
// canonical buildifier style. Compiled Starlark keeps the host file's
// layout minus the excluded lines; reformatting cleans up the holes
// that filtering can leave behind.
func StarlarkFormatter() Func {
	return func(text string) (string, error) {
		f, err := build.Parse("compiled.star", []byte(text))
		if err != nil {
			return "", fmt.Errorf("parse starlark: %w", err)
		}
		return string(build.Format(f)), nil
	}
}
