package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeKey(t *testing.T) {
	{ // Packing is order independent
		en, err := NewEdgeKey([2]int{1, 0})
		require.NoError(t, err)
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))
		assert.Equal(t, [2]int{1, 0}, en.GetVertices(true))

		en2, err := NewEdgeKey([2]int{0, 1})
		require.NoError(t, err)
		assert.Equal(t, en, en2)

		en = MustEdgeKey(100, 100001)
		assert.Equal(t, EdgeKey(100001*(1<<32)+100), en)
		assert.Equal(t, [2]int{100, 100001}, en.GetVertices(false))
	}
	{ // Maximum indices
		en := MustEdgeKey(1<<32-1, 1<<32-1)
		assert.Equal(t, EdgeKey(1<<64-1), en)
		assert.Equal(t, [2]int{1<<32 - 1, 1<<32 - 1}, en.GetVertices(false))
	}
	{ // Out of range
		_, err := NewEdgeKey([2]int{-1, 3})
		assert.Error(t, err)
		assert.Panics(t, func() { MustEdgeKey(1<<32, 1) })
	}
}

func TestIBTypeVocabulary(t *testing.T) {
	for _, code := range []int{0, 1, 20, 21, 24} {
		assert.True(t, KnownIBType(code), "code %d", code)
	}
	assert.False(t, KnownIBType(77))
	assert.Equal(t, "unknown (77)", IBTypeName(77))
	assert.Equal(t, "none", IBTypeName(NoIBType))
	assert.Equal(t, "island, natural with free slip", IBTypeName(21))
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "open", OpenBoundary.String())
	assert.Equal(t, "land", LandBoundary.String())
	assert.Equal(t, "coastline", Coastline.String())
	assert.Equal(t, "other", Other.String())
	assert.Equal(t, "land arc 3", ArcRef{Family: LandBoundary, Number: 3}.String())
	assert.Equal(t, "LAND_BOUNDARY_READ", LandBoundaryRead.String())
	assert.True(t, Failed.Terminal())
	assert.True(t, Done.Terminal())
	assert.False(t, BuildPolylines.Terminal())
}
