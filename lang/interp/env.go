package interp

import "github.com/smog-lang/smog/lang/vm"

// envID indexes into an arena of environment records. Using an index
// instead of a pointer lets an environment that is captured by a closure
// (and so outlives the block that created it) be referenced from both the
// closure and its enclosing scope without the GC having to reason about a
// pointer cycle (spec.md §9's "arena-allocated record referenced by
// index" design note).
type envID int

const noEnv envID = -1

type environment struct {
	vars   map[string]vm.Value
	parent envID
}

// arena owns every environment created during one evaluation; it never
// shrinks; environments become unreachable (and so garbage, if the host
// doesn't otherwise keep the arena alive) only when the arena itself is
// dropped.
type arena struct {
	envs []environment
}

func newArena() *arena {
	return &arena{}
}

func (a *arena) new(parent envID) envID {
	a.envs = append(a.envs, environment{vars: make(map[string]vm.Value), parent: parent})
	return envID(len(a.envs) - 1)
}

// define binds name in env itself (a `let`), shadowing any outer binding of
// the same name.
func (a *arena) define(env envID, name string, v vm.Value) {
	a.envs[env].vars[name] = v
}

// lookup searches env and its ancestors for name.
func (a *arena) lookup(env envID, name string) (vm.Value, bool) {
	for id := env; id != noEnv; id = a.envs[id].parent {
		if v, ok := a.envs[id].vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// assign rebinds the nearest existing definition of name, walking outward
// from env. It reports whether an existing binding was found.
func (a *arena) assign(env envID, name string, v vm.Value) bool {
	for id := env; id != noEnv; id = a.envs[id].parent {
		if _, ok := a.envs[id].vars[name]; ok {
			a.envs[id].vars[name] = v
			return true
		}
	}
	return false
}
