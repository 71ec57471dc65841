package env_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumesh-lang/lumesh/lang/env"
	"github.com/lumesh-lang/lumesh/lang/value"
)

func TestLookupWalksAncestors(t *testing.T) {
	root := env.NewRoot("/tmp", false, nil)
	root.Define("x", value.Int(1))
	child := root.Fork()

	v, ok := child.Lookup("x")
	require.True(t, ok)
	require.Equal(t, value.Int(1), v)
	require.False(t, child.IsLocal("x"))
}

func TestAssignUpdatesExistingAncestorBinding(t *testing.T) {
	root := env.NewRoot("/tmp", false, nil)
	root.Define("x", value.Int(1))
	child := root.Fork()

	require.NoError(t, child.Assign("x", value.Int(2)))
	require.False(t, child.IsLocal("x"), "Assign must update the ancestor's binding, not shadow it locally")
	v, _ := root.Lookup("x")
	require.Equal(t, value.Int(2), v)
}

func TestAssignInStrictModeRequiresExistingBinding(t *testing.T) {
	root := env.NewRoot("/tmp", true, nil)
	err := root.Assign("undeclared", value.Int(1))
	require.Error(t, err)
}

func TestGetBindingsMapIncludesAncestorBindings(t *testing.T) {
	root := env.NewRoot("/tmp", false, nil)
	root.Define("PARENT", value.String("from-root"))
	child := root.Fork()
	child.Define("CHILD", value.String("from-child"))

	got := child.GetBindingsMap()
	require.Equal(t, "from-root", got["PARENT"], "GetBindingsMap must flatten ancestor scopes for spawned processes")
	require.Equal(t, "from-child", got["CHILD"])
}

func TestGetBindingsMapChildShadowsAncestor(t *testing.T) {
	root := env.NewRoot("/tmp", false, nil)
	root.Define("x", value.String("root-value"))
	child := root.Fork()
	child.Define("x", value.String("child-value"))

	got := child.GetBindingsMap()
	require.Equal(t, "child-value", got["x"], "a closer scope's binding must shadow an ancestor's of the same name")
}
