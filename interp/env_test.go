package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnv(t *testing.T) {
	var env Env
	_, ok := env.Get("x")
	assert.False(t, ok)

	env.Set("x", int64(1))
	env.Set("a", "s")
	env.Set("x", int64(2))
	v, ok := env.Get("x")
	assert.True(t, ok)
	assert.Equal(t, int64(2), v)
	assert.Equal(t, []string{"a", "x"}, env.Names())
	assert.Equal(t, 2, env.Len())
}

func TestEnv_snapshot(t *testing.T) {
	env := NewEnv()
	list := NewList(int64(1))
	env.Set("list", list)
	env.Set("n", int64(5))

	snap := env.snapshot()

	env.Set("n", int64(6))
	env.Set("tmp", true)
	list.Elems = append(list.Elems, int64(2))
	env.Set("list", NewList())

	env.restore(snap)

	n, _ := env.Get("n")
	assert.Equal(t, int64(5), n)
	_, ok := env.Get("tmp")
	assert.False(t, ok, "bindings made after the snapshot are dropped")

	got, _ := env.Get("list")
	assert.Same(t, list, got, "rebinding is undone")
	assert.Equal(t, "[1, 2]", Format(got), "in place mutation is kept")
}
