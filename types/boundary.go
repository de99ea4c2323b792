package types

import "fmt"

// Family distinguishes the two boundary sections of a fort.14 file
type Family uint8

const (
	OpenBoundary Family = iota
	LandBoundary
)

func (f Family) String() string {
	switch f {
	case OpenBoundary:
		return "open"
	case LandBoundary:
		return "land"
	}
	return fmt.Sprintf("Family(%d)", uint8(f))
}

// Category is the rendering group a boundary polyline is routed to
type Category uint8

const (
	Unclassified Category = iota // open boundary arcs carry no category
	Coastline
	Other
)

func (c Category) String() string {
	return [...]string{"unclassified", "coastline", "other"}[c]
}

// NoIBType marks arcs that carry no IBTYPE code (open boundaries)
const NoIBType = -1

/*
IBTypeNameMap holds the land boundary codes documented for ADCIRC. The vocabulary is open:
codes missing from this map are legal input, they are only reported as unknown.
*/
var IBTypeNameMap = map[int]string{
	0:   "mainland, essential no normal flow",
	1:   "island, essential no normal flow",
	2:   "specified normal flux, essential",
	3:   "external barrier, essential",
	4:   "internal barrier, essential",
	5:   "internal barrier with pipes, essential",
	10:  "mainland, no slip",
	11:  "island, no slip",
	12:  "mainland, natural no normal flow",
	13:  "external barrier, natural",
	20:  "mainland, natural with free slip",
	21:  "island, natural with free slip",
	22:  "river inflow, natural",
	23:  "external barrier, natural with free slip",
	24:  "internal barrier (levee), natural",
	25:  "internal barrier with pipes, natural",
	30:  "radiation outflow",
	32:  "river inflow with radiation",
	52:  "river inflow with wave radiation",
	102: "baroclinic specified flux",
	112: "baroclinic specified flux, no slip",
	122: "baroclinic river inflow",
}

func KnownIBType(code int) (ok bool) {
	_, ok = IBTypeNameMap[code]
	return
}

func IBTypeName(code int) string {
	if code == NoIBType {
		return "none"
	}
	if name, ok := IBTypeNameMap[code]; ok {
		return name
	}
	return fmt.Sprintf("unknown (%d)", code)
}

// ArcRef identifies one file-declared boundary arc; Number is 1-based within its family
type ArcRef struct {
	Family Family
	Number int
}

func (a ArcRef) String() string {
	return fmt.Sprintf("%s arc %d", a.Family, a.Number)
}
