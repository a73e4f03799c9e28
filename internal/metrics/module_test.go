package metrics

import (
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestModuleCanBeBuiltTwice(t *testing.T) {
	for i := 0; i < 2; i++ {
		var m *Metrics
		app := fxtest.New(t, Module, fx.Populate(&m))
		app.RequireStart()
		if m == nil {
			t.Fatal("expected metrics to be provided")
		}
		app.RequireStop()
	}
}
