package value_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/lumesh-lang/lumesh/lang/value"
)

func TestEqualsScalars(t *testing.T) {
	require.True(t, value.Equals(value.Int(1), value.Int(1)))
	require.True(t, value.Equals(value.Int(1), value.Float(1)), "numeric Equals must coerce across Int/Float")
	require.False(t, value.Equals(value.String("a"), value.String("b")))
	require.True(t, value.Equals(value.None, value.None))
}

func TestListStructuralEquality(t *testing.T) {
	a := value.NewList([]value.Value{value.Int(1), value.String("x"), value.Bool(true)})
	b := value.NewList([]value.Value{value.Int(1), value.String("x"), value.Bool(true)})

	if diff := cmp.Diff(a.Items(), b.Items()); diff != "" {
		t.Errorf("List contents differ (-want +got):\n%s", diff)
	}

	c := value.NewList([]value.Value{value.Int(1), value.String("y"), value.Bool(true)})
	if diff := cmp.Diff(a.Items(), c.Items()); diff == "" {
		t.Errorf("expected differing lists to produce a non-empty diff")
	}
}

func TestListCopyOnWrite(t *testing.T) {
	base := value.NewList([]value.Value{value.Int(1), value.Int(2)})
	before := append([]value.Value(nil), base.Items()...)

	_ = base.Append(value.Int(3))
	_ = base.Push(value.Int(0))
	_ = base.Set(0, value.Int(99))

	if diff := cmp.Diff(before, base.Items()); diff != "" {
		t.Errorf("mutating helper leaked into the receiver's backing array (-before +after):\n%s", diff)
	}
}

func TestListAppendPushSetReversed(t *testing.T) {
	l := value.NewList([]value.Value{value.Int(1), value.Int(2), value.Int(3)})

	pushed := l.Push(value.Int(0))
	require.Equal(t, []value.Value{value.Int(0), value.Int(1), value.Int(2), value.Int(3)}, pushed.Items())

	appended := l.Append(value.Int(4))
	require.Equal(t, []value.Value{value.Int(1), value.Int(2), value.Int(3), value.Int(4)}, appended.Items())

	set := l.Set(1, value.Int(20))
	require.Equal(t, []value.Value{value.Int(1), value.Int(20), value.Int(3)}, set.Items())
	require.Equal(t, value.Int(2), l.Index(1), "original must be unaffected by Set")

	rev := l.Reversed()
	require.Equal(t, []value.Value{value.Int(3), value.Int(2), value.Int(1)}, rev.Items())
}

func TestListSliceBoundaries(t *testing.T) {
	l := value.NewList([]value.Value{value.Int(0), value.Int(1), value.Int(2), value.Int(3), value.Int(4)})

	require.Equal(t, []value.Value{value.Int(1), value.Int(2)}, l.Slice(1, 3, 1).Items())
	require.Equal(t, []value.Value{value.Int(4), value.Int(3), value.Int(2)}, l.Slice(4, 1, -1).Items())
	require.Equal(t, 0, l.Slice(0, 0, 1).Len())
	require.Equal(t, 0, l.Slice(1, 1, -1).Len())
}

func TestListContainsRemoveFirstDifference(t *testing.T) {
	l := value.NewList([]value.Value{value.Int(1), value.Int(2), value.Int(1)})
	require.True(t, l.Contains(value.Int(2)))
	require.False(t, l.Contains(value.Int(9)))

	removed := l.RemoveFirst(value.Int(1))
	require.Equal(t, []value.Value{value.Int(2), value.Int(1)}, removed.Items())

	missing := l.RemoveFirst(value.Int(9))
	require.Equal(t, l.Items(), missing.Items())

	other := value.NewList([]value.Value{value.Int(1)})
	diff := l.Difference(other)
	require.Equal(t, []value.Value{value.Int(2)}, diff.Items())

	self := l.Difference(l)
	require.Equal(t, 0, self.Len())
}

func TestMapInsertMergeRemoveOrdering(t *testing.T) {
	m := value.NewMap([]string{"a", "b"}, map[string]value.Value{
		"a": value.Int(1),
		"b": value.Int(2),
	})

	inserted := m.Insert("c", value.Int(3))
	require.Equal(t, []string{"a", "b", "c"}, inserted.Keys())
	v, ok := inserted.Get("c")
	require.True(t, ok)
	require.Equal(t, value.Int(3), v)
	require.Equal(t, []string{"a", "b"}, m.Keys(), "Insert must not mutate the receiver")

	overwritten := m.Insert("a", value.Int(100))
	require.Equal(t, []string{"a", "b"}, overwritten.Keys(), "overwriting an existing key must not reorder it")
	v, _ = overwritten.Get("a")
	require.Equal(t, value.Int(100), v)

	other := value.NewMap([]string{"b", "d"}, map[string]value.Value{
		"b": value.Int(20),
		"d": value.Int(4),
	})
	merged := m.Merge(other)
	require.Equal(t, []string{"a", "b", "d"}, merged.Keys())
	v, _ = merged.Get("b")
	require.Equal(t, value.Int(20), v, "Merge must let the right side win on key conflicts")

	removed := m.Remove("a")
	require.Equal(t, []string{"b"}, removed.Keys())
	require.Equal(t, []string{"a", "b"}, m.Keys(), "Remove must not mutate the receiver")

	untouched := m.Remove("missing")
	require.Equal(t, m.Keys(), untouched.Keys())
}

func TestMapRemoveKeys(t *testing.T) {
	m := value.NewMap([]string{"a", "b", "c"}, map[string]value.Value{
		"a": value.Int(1), "b": value.Int(2), "c": value.Int(3),
	})
	other := value.NewMap([]string{"b"}, map[string]value.Value{"b": value.Int(0)})

	got := m.RemoveKeys(other)
	require.Equal(t, []string{"a", "c"}, got.Keys())
}

func TestHMapUnorderedRoundtrip(t *testing.T) {
	h := value.NewHMap(map[string]value.Value{"x": value.Int(1), "y": value.Int(2)})
	require.Equal(t, 2, h.Len())
	require.True(t, h.ContainsKey("x"))
	require.False(t, h.ContainsKey("z"))

	v, ok := h.Get("y")
	require.True(t, ok)
	require.Equal(t, value.Int(2), v)

	inserted := h.Insert("z", value.Int(3))
	require.Equal(t, 3, inserted.Len())
	require.Equal(t, 2, h.Len(), "Insert must not mutate the receiver")
}

func TestBlankAndNoneAreNotTruthy(t *testing.T) {
	require.False(t, value.Blank.Truthy())
	require.False(t, value.None.Truthy())
	require.Equal(t, "_", value.Blank.String())
	require.Equal(t, "None", value.None.String())
}

func TestCompareNumericCoercion(t *testing.T) {
	c, err := value.Compare(value.Int(1), value.Float(2))
	require.NoError(t, err)
	require.Negative(t, c)

	_, err = value.Compare(value.Int(1), value.NewList(nil))
	require.Error(t, err)
}
