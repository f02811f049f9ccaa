package modes

import (
	"context"
	"testing"

	"github.com/reusee/dscope"
)

// ModuleForProduction is used by the command line entry.
type ModuleForProduction struct {
	dscope.Module
}

func ForProduction() ModuleForProduction {
	return ModuleForProduction{}
}

func (ModuleForProduction) T() *testing.T {
	return nil
}

func (ModuleForProduction) Mode() Mode {
	return ModeProduction
}

func (ModuleForProduction) Context() context.Context {
	return context.Background()
}
