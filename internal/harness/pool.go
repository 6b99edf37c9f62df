package harness

import "fmt"

// PoolConfig controls pool construction. The zero value is not usable;
// start from DefaultPoolConfig.
type PoolConfig struct {
	NumEnvs      int `yaml:"num_envs"`
	AgentsPerEnv int `yaml:"agents_per_env"`
	Genes        int `yaml:"genes"`
	Roles        int `yaml:"roles"`

	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	MinEpLength int `yaml:"min_ep_length"`
	MaxEpLength int `yaml:"max_ep_length"`

	ExtinctionReward float32 `yaml:"extinction_reward"`
	RenderMode       string  `yaml:"render_mode"`
	LogInterval      int     `yaml:"log_interval"`
	Seed             int64   `yaml:"seed"`

	// Capacity is the terrain-derived carrying-capacity map handed to
	// every environment at initialization. Not read from config files.
	Capacity []float64 `yaml:"-"`
}

// DefaultPoolConfig returns the standard pool parameters.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		NumEnvs:          1,
		AgentsPerEnv:     512,
		Genes:            3,
		Roles:            2,
		Width:            96,
		Height:           96,
		MinEpLength:      512,
		MaxEpLength:      576,
		ExtinctionReward: -2.0,
		RenderMode:       "normal",
		LogInterval:      100,
	}
}

// Layout derives the buffer layout from the config.
func (c PoolConfig) Layout() Layout {
	return Layout{NumEnvs: c.NumEnvs, AgentsPerEnv: c.AgentsPerEnv, Genes: c.Genes, Roles: c.Roles}
}

func (c PoolConfig) renderMode() (RenderMode, error) {
	switch c.RenderMode {
	case "", "normal":
		return RenderNormal, nil
	case "replay":
		return RenderReplay, nil
	}
	return 0, fmt.Errorf("harness: unknown render mode %q", c.RenderMode)
}

// Validate reports the first configuration error, if any.
func (c PoolConfig) Validate() error {
	if err := c.Layout().Validate(); err != nil {
		return err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("harness: world %dx%d must be positive", c.Width, c.Height)
	}
	if c.MinEpLength < 1 || c.MaxEpLength < c.MinEpLength {
		return fmt.Errorf("harness: episode bounds [%d, %d] invalid", c.MinEpLength, c.MaxEpLength)
	}
	if c.LogInterval < 1 {
		return fmt.Errorf("harness: log interval must be positive, got %d", c.LogInterval)
	}
	if _, err := c.renderMode(); err != nil {
		return err
	}
	return nil
}

// StepResult is the state returned by Step, Send and Recv. All slices are
// views into the shared buffers, valid until the next engine call.
type StepResult struct {
	Observations []uint8
	Rewards      []float32
	Terminals    []bool
	Truncations  []bool
	Alive        []bool
	Kinship      []uint8
	Infos        []LogEntry
}

// Pool drives an ordered collection of environments through synchronized
// reset/step/render/log/close calls against one engine batch.
//
// The pool performs no internal locking or threading: callers must
// serialize access, and every operation is one blocking call into the
// engine. Slot ordering is stable for the pool's lifetime.
type Pool struct {
	cfg    PoolConfig
	layout Layout
	buf    *Buffers
	envs   []*EnvHandle
	batch  Batch

	tick      int
	wasReset  bool
	closed    bool
	lastInfos []LogEntry
}

// New builds every environment handle, binds engine instances to their
// buffer slices and vectorizes them into one batch. A nil buf allocates a
// fresh bundle; a caller-supplied buf is shape-checked and shared, never
// reallocated.
func New(cfg PoolConfig, engine Engine, buf *Buffers) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layout := cfg.Layout()
	if buf == nil {
		buf = NewBuffers(layout)
	} else if err := buf.Check(layout); err != nil {
		return nil, err
	}

	mode, err := cfg.renderMode()
	if err != nil {
		return nil, err
	}
	envCfg := EnvConfig{
		Roles:            cfg.Roles,
		Genes:            cfg.Genes,
		Width:            cfg.Width,
		Height:           cfg.Height,
		MaxAgents:        cfg.AgentsPerEnv,
		MinEpLength:      cfg.MinEpLength,
		MaxEpLength:      cfg.MaxEpLength,
		ExtinctionReward: cfg.ExtinctionReward,
		RenderMode:       mode,
		Capacity:         cfg.Capacity,
	}

	envs := make([]*EnvHandle, layout.NumEnvs)
	insts := make([]Env, layout.NumEnvs)
	for i := range envs {
		h, err := newEnvHandle(engine, layout, buf, i, cfg.Seed, envCfg)
		if err != nil {
			return nil, fmt.Errorf("harness: init env %d: %w", i, err)
		}
		envs[i] = h
		insts[i] = h.Env
	}
	batch, err := engine.Vectorize(insts)
	if err != nil {
		return nil, err
	}

	return &Pool{cfg: cfg, layout: layout, buf: buf, envs: envs, batch: batch}, nil
}

// Layout exposes the pool's buffer layout.
func (p *Pool) Layout() Layout { return p.layout }

// Buffers exposes the shared buffer bundle.
func (p *Pool) Buffers() *Buffers { return p.buf }

// Tick returns the number of steps taken since the last Reset.
func (p *Pool) Tick() int { return p.tick }

// Reset re-seeds every environment's per-agent state and zeroes the tick
// counter. It returns the observation buffer and the alive mask.
func (p *Pool) Reset(seed int64) ([]uint8, []bool, error) {
	if p.closed {
		return nil, nil, ErrClosed
	}
	if err := p.batch.Reset(seed); err != nil {
		return nil, nil, err
	}
	p.tick = 0
	p.wasReset = true
	p.lastInfos = nil
	return p.buf.Observations, p.buf.Alive, nil
}

// Step scatters actions into the shared action buffer and advances every
// environment by one synchronous engine step.
//
// When actingMask is nil the current alive mask selects the acting agents;
// otherwise actingMask does. len(actions) must equal the number of selected
// agents; a mismatch is a precondition error and nothing is written. All
// other action-buffer positions are left untouched.
func (p *Pool) Step(actions []int32, actingMask []bool) (*StepResult, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if !p.wasReset {
		return nil, ErrNotReset
	}
	mask := actingMask
	if mask == nil {
		mask = p.buf.Alive
	} else if len(mask) != p.layout.NumAgents() {
		return nil, fmt.Errorf("%w: mask length %d, want %d", ErrActionCount, len(mask), p.layout.NumAgents())
	}
	if err := p.scatter(actions, mask); err != nil {
		return nil, err
	}
	return p.advance()
}

// StepPreset advances the simulation with the action buffer exactly as the
// caller left it, skipping the scatter.
func (p *Pool) StepPreset() (*StepResult, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if !p.wasReset {
		return nil, ErrNotReset
	}
	return p.advance()
}

// scatter writes the compact action list into the buffer positions
// selected by mask. The write completes before the engine step begins.
func (p *Pool) scatter(actions []int32, mask []bool) error {
	want := 0
	for _, m := range mask {
		if m {
			want++
		}
	}
	if len(actions) != want {
		return fmt.Errorf("%w: got %d actions for %d selected agents", ErrActionCount, len(actions), want)
	}
	next := 0
	for i, m := range mask {
		if m {
			p.buf.Actions[i] = actions[next]
			next++
		}
	}
	return nil
}

// advance performs the engine step, bumps the tick counter and collects
// the aggregate log on interval ticks.
func (p *Pool) advance() (*StepResult, error) {
	if err := p.batch.Step(); err != nil {
		return nil, err
	}
	p.tick++

	infos := []LogEntry{}
	if p.tick%p.cfg.LogInterval == 0 {
		entry, err := p.batch.Log()
		if err != nil {
			return nil, err
		}
		if len(entry) > 0 {
			infos = append(infos, entry)
		}
	}
	p.lastInfos = infos
	return p.result(infos), nil
}

func (p *Pool) result(infos []LogEntry) *StepResult {
	return &StepResult{
		Observations: p.buf.Observations,
		Rewards:      p.buf.Rewards,
		Terminals:    p.buf.Terminals,
		Truncations:  p.buf.Truncations,
		Alive:        p.buf.Alive,
		Kinship:      p.buf.Kinship,
		Infos:        infos,
	}
}

// Send is the push half of the pull-based consumption pattern; it is Step
// with the infos retained for the next Recv.
func (p *Pool) Send(actions []int32, actingMask []bool) (*StepResult, error) {
	return p.Step(actions, actingMask)
}

// Recv mirrors the last computed state without advancing the simulation.
func (p *Pool) Recv() (*StepResult, error) {
	if p.closed {
		return nil, ErrClosed
	}
	infos := p.lastInfos
	if infos == nil {
		infos = []LogEntry{}
	}
	return p.result(infos), nil
}

// Render is a side-effecting call into the engine; it does not alter pool
// state or the shared buffers.
func (p *Pool) Render(mode RenderMode) ([]byte, error) {
	if p.closed {
		return nil, ErrClosed
	}
	return p.batch.Render(mode)
}

// Single exposes the single-environment introspection capability. It is
// only present when the pool holds exactly one environment.
func (p *Pool) Single() (Env, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if len(p.envs) != 1 {
		return nil, fmt.Errorf("%w: have %d", ErrNotSingle, len(p.envs))
	}
	return p.envs[0].Env, nil
}

// Get reads engine-side fields of the single environment.
func (p *Pool) Get() (Fields, error) {
	env, err := p.Single()
	if err != nil {
		return nil, err
	}
	return env.Get()
}

// Put patches engine-side fields of the single environment.
func (p *Pool) Put(fields Fields) error {
	env, err := p.Single()
	if err != nil {
		return err
	}
	return env.Put(fields)
}

// Close releases all engine-side environment instances. Closing an already
// closed pool is a no-op; every other operation after Close fails with
// ErrClosed.
func (p *Pool) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return p.batch.Close()
}
