package types

import (
	"fmt"
	"math"
)

/*
EdgeKey is an always positive number that stores an undirected edge's two node ids so that it
can be compared and hashed. An edge between nodes [4] and [1] is always stored as [1,4].
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey, err error) {
	// Packs two node ids into two 32 bit unsigned integers
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			err = fmt.Errorf("unable to pack node ids %d and %d into an edge key",
				verts[0], verts[1])
			return
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(uint64(i1) | uint64(i2)<<32)
	return
}

// MustEdgeKey is NewEdgeKey for ids already validated against the node table
func MustEdgeKey(a, b int) EdgeKey {
	ek, err := NewEdgeKey([2]int{a, b})
	if err != nil {
		panic(err)
	}
	return ek
}

// GetVertices returns the ids in ascending order, or descending when rev is set
func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	verts[1] = int(ek >> 32)
	verts[0] = int(ek & math.MaxUint32)
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}
