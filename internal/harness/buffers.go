package harness

import "fmt"

// Buffers bundles the seven flat shared arrays. The pool, the caller and
// every engine instance share them by reference; nothing in the harness
// ever copies or reallocates them.
type Buffers struct {
	Observations []uint8
	Actions      []int32
	Rewards      []float32
	Terminals    []bool
	Truncations  []bool
	Alive        []bool
	Kinship      []uint8
}

// NewBuffers allocates a buffer bundle sized for the layout.
func NewBuffers(l Layout) *Buffers {
	n := l.NumAgents()
	return &Buffers{
		Observations: make([]uint8, n*l.ObsWidth()),
		Actions:      make([]int32, n),
		Rewards:      make([]float32, n),
		Terminals:    make([]bool, n),
		Truncations:  make([]bool, n),
		Alive:        make([]bool, n),
		Kinship:      make([]uint8, l.KinshipLen()),
	}
}

// Check validates that an externally supplied bundle has exactly the
// shapes the layout requires. Shape mismatches are configuration errors
// caught before any engine call.
func (b *Buffers) Check(l Layout) error {
	n := l.NumAgents()
	if got, want := len(b.Observations), n*l.ObsWidth(); got != want {
		return fmt.Errorf("harness: observations length %d, want %d", got, want)
	}
	if len(b.Actions) != n {
		return fmt.Errorf("harness: actions length %d, want %d", len(b.Actions), n)
	}
	if len(b.Rewards) != n {
		return fmt.Errorf("harness: rewards length %d, want %d", len(b.Rewards), n)
	}
	if len(b.Terminals) != n {
		return fmt.Errorf("harness: terminals length %d, want %d", len(b.Terminals), n)
	}
	if len(b.Truncations) != n {
		return fmt.Errorf("harness: truncations length %d, want %d", len(b.Truncations), n)
	}
	if len(b.Alive) != n {
		return fmt.Errorf("harness: alive length %d, want %d", len(b.Alive), n)
	}
	if got, want := len(b.Kinship), l.KinshipLen(); got != want {
		return fmt.Errorf("harness: kinship length %d, want %d", got, want)
	}
	return nil
}

// slot cuts the full-length sub-slices owned by environment env. Slicing
// shares memory with the bundle.
func (b *Buffers) slot(l Layout, env int) Binding {
	lo, hi := l.AgentRange(env)
	klo, khi := l.KinshipRange(env)
	w := l.ObsWidth()
	return Binding{
		Observations: b.Observations[lo*w : hi*w],
		Actions:      b.Actions[lo:hi],
		Rewards:      b.Rewards[lo:hi],
		Terminals:    b.Terminals[lo:hi],
		Truncations:  b.Truncations[lo:hi],
		Alive:        b.Alive[lo:hi],
		Kinship:      b.Kinship[klo:khi],
	}
}
