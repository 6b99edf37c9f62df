package terrain

// Carrying-capacity constants inherited from the reference map data.
const (
	// MaxCapacity is the per-cell carrying capacity of non-soil cells.
	MaxCapacity = 5.0
	// SustainedFraction scales MaxCapacity down to the sustained level.
	SustainedFraction = 0.15
)

// CapacityMap holds per-cell carrying capacities derived from a class
// grid. It is engine-side input: generated here, consumed at environment
// initialization, never retained by the harness.
type CapacityMap struct {
	Rows, Cols int
	Max        []float64
	Sustained  []float64
}

// Capacity derives the capacity map from the cleaned class grid: soil
// cells carry nothing, every other cell carries max with the sustained
// fraction applied.
func Capacity(g *ClassGrid, max, sustainedFrac float64) *CapacityMap {
	m := &CapacityMap{
		Rows:      g.Rows,
		Cols:      g.Cols,
		Max:       make([]float64, g.Rows*g.Cols),
		Sustained: make([]float64, g.Rows*g.Cols),
	}
	for i, soil := range g.cells {
		if soil {
			continue
		}
		m.Max[i] = max
		m.Sustained[i] = max * sustainedFrac
	}
	return m
}
