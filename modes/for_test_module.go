package modes

import (
	"context"
	"testing"

	"github.com/reusee/dscope"
)

// ModuleForTest ties a scope to a running test.
type ModuleForTest struct {
	dscope.Module
	t *testing.T
}

func ForTest(t *testing.T) ModuleForTest {
	return ModuleForTest{
		t: t,
	}
}

func (m ModuleForTest) T() *testing.T {
	return m.t
}

func (ModuleForTest) Mode() Mode {
	return ModeDevelopment
}

// Context is canceled when the test ends.
func (m ModuleForTest) Context() context.Context {
	return m.t.Context()
}
