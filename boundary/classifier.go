package boundary

import (
	"sort"

	"github.com/oceanmesh/omt/types"
)

// DefaultCoastlineIBTypes are mainland, and natural mainland/island codes
var DefaultCoastlineIBTypes = []int{0, 20, 21}

/*
Classifier routes land arcs to Coastline or Other by IBTYPE. Membership is a lookup against a
configurable set, codes outside the set (known to ADCIRC or not) are Other.
*/
type Classifier struct {
	coastline map[int]struct{}
}

// NewClassifier builds a classifier over codes, nil selects DefaultCoastlineIBTypes
func NewClassifier(codes []int) *Classifier {
	if codes == nil {
		codes = DefaultCoastlineIBTypes
	}
	c := &Classifier{coastline: make(map[int]struct{}, len(codes))}
	for _, code := range codes {
		c.coastline[code] = struct{}{}
	}
	return c
}

func (c *Classifier) Classify(ibtype int) types.Category {
	if _, ok := c.coastline[ibtype]; ok {
		return types.Coastline
	}
	return types.Other
}

// Codes returns the coastline set in ascending order
func (c *Classifier) Codes() (codes []int) {
	codes = make([]int, 0, len(c.coastline))
	for code := range c.coastline {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return
}
