package cmds

// Var defines name to set the returned value from the next word, and name+"." to reset it.
func Var[T any](name string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}))
	var zero T
	Define(name+".", Func(func() {
		value = zero
	}))
	return &value
}

// Switch defines name to turn the flag on and "!"+name to turn it off.
func Switch(name string) *bool {
	var value bool
	Define(name, Func(func() {
		value = true
	}))
	Define("!"+name, Func(func() {
		value = false
	}))
	return &value
}

// Collect defines name to append the next word to the returned slice.
func Collect[T any](name string) *[]T {
	var value []T
	Define(name, Func(func(v T) {
		value = append(value, v)
	}))
	return &value
}
