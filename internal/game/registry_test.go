package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	reg := NewRegistry()

	first := reg.GetOrCreate("r1")
	second := reg.GetOrCreate("r1")

	assert.Same(t, first, second)
	assert.Equal(t, "r1", first.Name)
	assert.Empty(t, first.Players)
}

func TestLookupAbsentReturnsNil(t *testing.T) {
	reg := NewRegistry()

	assert.Nil(t, reg.Lookup("missing"))

	reg.GetOrCreate("r1")
	assert.NotNil(t, reg.Lookup("r1"))
}

func TestRemoveIsNoOpOnAbsentName(t *testing.T) {
	reg := NewRegistry()

	reg.Remove("missing") // must not panic

	reg.GetOrCreate("r1")
	reg.Remove("r1")
	assert.Nil(t, reg.Lookup("r1"))

	reg.Remove("r1") // second remove is a no-op too
}

func TestAllSnapshotsRooms(t *testing.T) {
	reg := NewRegistry()
	reg.GetOrCreate("r1")
	reg.GetOrCreate("r2")

	rooms := reg.All()
	assert.Len(t, rooms, 2)

	names := []string{rooms[0].Name, rooms[1].Name}
	assert.ElementsMatch(t, []string{"r1", "r2"}, names)
}
