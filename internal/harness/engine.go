package harness

// RenderMode selects the engine's render behavior.
type RenderMode int

const (
	RenderNormal RenderMode = iota
	RenderReplay
)

// Binding enumerates one environment's slices of the shared buffers plus
// the construction seed. The engine reads and writes these in place; the
// harness never copies across the boundary.
type Binding struct {
	Observations []uint8
	Actions      []int32
	Rewards      []float32
	Terminals    []bool
	Truncations  []bool
	Alive        []bool
	Kinship      []uint8

	Seed int64
}

// EnvConfig carries the per-environment configuration handed to the engine
// at initialization.
type EnvConfig struct {
	Roles            int
	Genes            int
	Width            int
	Height           int
	MaxAgents        int
	MinEpLength      int
	MaxEpLength      int
	ExtinctionReward float32
	RenderMode       RenderMode

	// Capacity is the terrain-derived per-cell carrying capacity
	// (Width*Height entries) consumed at initialization; nil means the
	// engine falls back to its own default map.
	Capacity []float64
}

// Fields is the narrow introspection/patch payload exchanged through the
// single-environment Get/Put channel.
type Fields map[string]any

// LogEntry is one aggregate log mapping covering the whole batch.
type LogEntry map[string]float64

// Env is one opaque engine-side environment instance bound to its slices.
type Env interface {
	Get() (Fields, error)
	Put(fields Fields) error
}

// Batch is the engine-level vectorized unit over a set of environments.
// Every call is synchronous: it returns only once all environments have
// completed the phase. Any intra-batch parallelism is the engine's own
// business and invisible here.
type Batch interface {
	Reset(seed int64) error
	Step() error
	Render(mode RenderMode) ([]byte, error)
	Log() (LogEntry, error)
	Close() error
}

// Engine creates environment instances bound to shared buffer slices and
// batches them. The harness depends only on this interface, never on
// engine internals.
type Engine interface {
	Init(bind Binding, cfg EnvConfig) (Env, error)
	Vectorize(envs []Env) (Batch, error)
}

// Factory constructs an Engine using an optional configuration map.
type Factory func(cfg map[string]string) Engine

var engines = map[string]Factory{}

// Register adds an engine factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	engines[name] = f
}

// Engines exposes the registry of available engine factories.
func Engines() map[string]Factory {
	return engines
}
