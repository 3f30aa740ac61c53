package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/binderlca/internal/engine"
)

func TestNewCompareSet(t *testing.T) {
	s := engine.NewCompareSet("a", "", "b", "a", "c", "d")
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
	assert.True(t, s.Full())
	assert.Equal(t, 3, s.Len())
}

func TestCompareSet_Toggle(t *testing.T) {
	var s engine.CompareSet
	s = s.Toggle("a").Toggle("b")
	assert.Equal(t, []string{"a", "b"}, s.IDs())

	removed := s.Toggle("a")
	assert.Equal(t, []string{"b"}, removed.IDs())
	assert.Equal(t, []string{"a", "b"}, s.IDs(), "Toggle returns a new set")

	full := s.Toggle("c")
	assert.Equal(t, full, full.Toggle("d"), "adding to a full set is a no-op")
	assert.Equal(t, []string{"a", "b", "c"}, full.IDs())
}

func TestCompareSet_RemoveReplace(t *testing.T) {
	s := engine.NewCompareSet("a", "b", "c")

	assert.Equal(t, []string{"a", "c"}, s.Remove("b").IDs())
	assert.Equal(t, []string{"a", "b", "c"}, s.Remove("zzz").IDs())

	assert.Equal(t, []string{"a", "x", "c"}, s.Replace("b", "x").IDs())
	assert.Equal(t, []string{"a", "b", "c"}, s.Replace("b", "c").IDs(), "new id already present")
	assert.Equal(t, []string{"a", "b", "c"}, s.Replace("zzz", "x").IDs(), "old id absent")
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
}

func TestSideBySide(t *testing.T) {
	rows := sampleRows(t)
	baseline, ok := engine.SelectBaseline(sampleCatalog())
	require.True(t, ok)

	got := engine.SideBySide(rows, engine.NewCompareSet("opc-b", "slag", "gone"), baseline)
	require.Len(t, got, 2)

	assert.Equal(t, "opc-b", got[0].Row.ID())
	assert.True(t, got[0].IsBaseline)
	assert.False(t, got[0].IsBest)
	assert.Zero(t, got[0].DeltaVsBaselinePct)

	assert.Equal(t, "slag", got[1].Row.ID())
	assert.True(t, got[1].IsBest)
	assert.Zero(t, got[1].DeltaVsBestKg)
	assert.InDelta(t, got[0].Row.Total-got[1].Row.Total, got[0].DeltaVsBestKg, 1e-9)
	assert.InDelta(t, 50.0, got[1].DeltaVsBaselinePct, 1e-9)

	assert.Empty(t, engine.SideBySide(rows, engine.CompareSet{}, baseline))
}
