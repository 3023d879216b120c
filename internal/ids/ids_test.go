package ids

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator_Format(t *testing.T) {
	id := UUIDv7Generator{}.Generate()

	assert.Len(t, id, 36)
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestUUIDv7Generator_Unique(t *testing.T) {
	g := UUIDv7Generator{}
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := g.Generate()
		assert.False(t, seen[id], "id %s generated twice", id)
		seen[id] = true
	}
}

func TestSequential(t *testing.T) {
	g := NewSequential("lx")
	assert.Equal(t, "lx-1", g.Generate())
	assert.Equal(t, "lx-2", g.Generate())
}

func TestFixed(t *testing.T) {
	g := NewFixed("a", "b")
	assert.Equal(t, "a", g.Generate())
	assert.Equal(t, "b", g.Generate())
	assert.PanicsWithValue(t, "ids.Fixed: all ids exhausted", func() { g.Generate() })
}
