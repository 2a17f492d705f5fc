package interp

import "sort"

// Env is the single flat namespace shared by variables, functions and
// function parameters.
type Env struct {
	vars map[string]Value
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{vars: make(map[string]Value)}
}

// Get returns the value bound to name.
func (env *Env) Get(name string) (Value, bool) {
	v, ok := env.vars[name]
	return v, ok
}

// Set binds name to v, replacing any prior binding.
func (env *Env) Set(name string, v Value) {
	if env.vars == nil {
		env.vars = make(map[string]Value)
	}
	env.vars[name] = v
}

// Names returns every bound name in sorted order.
func (env *Env) Names() []string {
	names := make([]string, 0, len(env.vars))
	for name := range env.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bindings.
func (env *Env) Len() int { return len(env.vars) }

// snapshot copies the bindings of env. Lists are shared with the copy, so
// restoring it undoes rebinding but keeps in place list mutation.
func (env *Env) snapshot() map[string]Value {
	vars := make(map[string]Value, len(env.vars))
	for name, v := range env.vars {
		vars[name] = v
	}
	return vars
}

func (env *Env) restore(vars map[string]Value) {
	env.vars = vars
}
