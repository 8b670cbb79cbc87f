package maincmd

import "github.com/caarlos0/env/v6"

// limits bounds `run --walk`'s tree-walking evaluator the way the
// compiler/VM pipeline is already bounded by vm.StackSize/vm.MaxFrames: a
// runaway script fails with a StepBudgetExceeded error instead of running
// forever. The VM path has no equivalent env var, since its stack and frame
// bounds are fixed compile-time constants (spec.md §4.5), not configurable
// at runtime.
//
// limits holds the resource bounds the CLI applies to a run, configured by
// environment variables so a script can be sandboxed without a recompile.
type limits struct {
	MaxSteps int `env:"SMOG_MAX_STEPS" envDefault:"10000000"`
}

func loadLimits() (limits, error) {
	var l limits
	if err := env.Parse(&l); err != nil {
		return limits{}, err
	}
	return l, nil
}
