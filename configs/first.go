package configs

import (
	"errors"
)

// First decodes path from the first source defining it.
// Missing values give the zero T. Other failures panic; call Loader.Err first
// to report them as errors.
func First[T any](loader Loader, path string) T {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value
		}
		panic(err)
	}
	return value
}
