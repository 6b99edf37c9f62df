// Package loopback provides a deterministic in-process reference engine.
// It implements the harness engine verbs with simple bookkeeping rules so
// the pool can be exercised and benchmarked without the real simulation
// core. It is a test double, not a game.
package loopback

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"territories/internal/harness"
)

func init() {
	harness.Register("loopback", func(cfg map[string]string) harness.Engine {
		return New()
	})
}

// Engine builds loopback environments.
type Engine struct{}

// New returns a loopback engine.
func New() *Engine { return &Engine{} }

// Init binds one environment to its buffer slices.
func (e *Engine) Init(bind harness.Binding, cfg harness.EnvConfig) (harness.Env, error) {
	cells := cfg.Width * cfg.Height
	if cfg.Capacity != nil && len(cfg.Capacity) != cells {
		return nil, fmt.Errorf("loopback: capacity has %d cells, want %d", len(cfg.Capacity), cells)
	}
	return &env{bind: bind, cfg: cfg}, nil
}

// Vectorize groups environments into one synchronously stepped batch.
func (e *Engine) Vectorize(envs []harness.Env) (harness.Batch, error) {
	b := &batch{}
	for i, v := range envs {
		le, ok := v.(*env)
		if !ok {
			return nil, fmt.Errorf("loopback: env %d is %T, not a loopback env", i, v)
		}
		le.index = i
		b.envs = append(b.envs, le)
	}
	if len(b.envs) == 0 {
		return nil, errors.New("loopback: vectorize needs at least one env")
	}
	return b, nil
}

type env struct {
	index int
	bind  harness.Binding
	cfg   harness.EnvConfig

	rng     *rand.Rand
	tick    int
	epLen   int
	haveRun bool
}

func (v *env) agents() int { return len(v.bind.Actions) }

func (v *env) reset(seed int64) {
	v.rng = rand.New(rand.NewPCG(uint64(seed), uint64(v.index)+1))
	v.tick = 0
	v.haveRun = true

	span := v.cfg.MaxEpLength - v.cfg.MinEpLength
	v.epLen = v.cfg.MinEpLength
	if span > 0 {
		v.epLen += v.rng.IntN(span + 1)
	}

	n := v.agents()
	for i := 0; i < n; i++ {
		v.bind.Alive[i] = true
		v.bind.Terminals[i] = false
		v.bind.Truncations[i] = false
		v.bind.Rewards[i] = 0
		v.bind.Actions[i] = 0
	}
	for i := range v.bind.Kinship {
		v.bind.Kinship[i] = 0
	}
	for i := 0; i < n; i++ {
		v.bind.Kinship[i*n+i] = 255
	}

	obsW := len(v.bind.Observations) / n
	for i := range v.bind.Observations {
		v.bind.Observations[i] = 0
	}
	for i := 0; i < n; i++ {
		row := v.bind.Observations[i*obsW : (i+1)*obsW]
		row[0] = uint8(v.index)
		row[1] = uint8(i)
		row[2] = uint8(v.rng.IntN(256))
	}
}

// cellOf maps an agent slot onto the terrain grid.
func (v *env) cellOf(agent int) int {
	return agent % (v.cfg.Width * v.cfg.Height)
}

// kinshipCredit is the per-step bond an acting agent writes toward its
// ring neighbour. Existing off-diagonal bonds fade by one each step.
const kinshipCredit = 8

// decayKinship fades every off-diagonal entry toward zero. Self kinship
// stays pinned at 255.
func (v *env) decayKinship() {
	n := v.agents()
	for idx, k := range v.bind.Kinship {
		if k == 0 || idx%(n+1) == 0 {
			continue
		}
		v.bind.Kinship[idx] = k - 1
	}
}

func (v *env) step() error {
	n := v.agents()
	obsW := len(v.bind.Observations) / n
	v.tick++

	aliveBefore := 0
	for i := 0; i < n; i++ {
		v.bind.Rewards[i] = 0
		if v.bind.Alive[i] {
			aliveBefore++
		}
	}

	v.decayKinship()

	truncate := v.tick >= v.epLen
	aliveNow := 0
	for i := 0; i < n; i++ {
		if !v.bind.Alive[i] {
			continue
		}
		a := v.bind.Actions[i]
		if a < 0 || a >= harness.NumActions {
			return fmt.Errorf("loopback: env %d agent %d action %d out of range [0, %d)", v.index, i, a, harness.NumActions)
		}

		row := v.bind.Observations[i*obsW : (i+1)*obsW]
		row[0] = uint8(a)
		row[1] = uint8(v.tick)

		if n > 1 {
			j := (i + 1) % n
			k := v.bind.Kinship[i*n+j]
			if k > 255-kinshipCredit {
				k = 255
			} else {
				k += kinshipCredit
			}
			v.bind.Kinship[i*n+j] = k
		}

		if v.cfg.Capacity != nil && v.cfg.Capacity[v.cellOf(i)] == 0 {
			// Barren cell: the agent starves out.
			v.bind.Alive[i] = false
			v.bind.Terminals[i] = true
			continue
		}

		v.bind.Rewards[i] = 0.001 * float32(a+1)
		if truncate {
			v.bind.Alive[i] = false
			v.bind.Truncations[i] = true
			continue
		}
		aliveNow++
	}

	if aliveNow == 0 && !truncate && aliveBefore > 0 {
		for i := 0; i < n; i++ {
			v.bind.Rewards[i] = v.cfg.ExtinctionReward
			v.bind.Terminals[i] = true
		}
	}
	return nil
}

// Get exposes engine-side state for the single-environment channel.
func (v *env) Get() (harness.Fields, error) {
	return harness.Fields{
		"tick":              v.tick,
		"ep_length":         v.epLen,
		"extinction_reward": v.cfg.ExtinctionReward,
	}, nil
}

// Put patches engine-side state for the single-environment channel.
func (v *env) Put(fields harness.Fields) error {
	for k, val := range fields {
		switch k {
		case "tick":
			n, ok := val.(int)
			if !ok || n < 0 {
				return fmt.Errorf("loopback: tick %v invalid", val)
			}
			v.tick = n
		case "ep_length":
			n, ok := val.(int)
			if !ok || n < 1 {
				return fmt.Errorf("loopback: ep_length %v invalid", val)
			}
			v.epLen = n
		case "extinction_reward":
			f, ok := val.(float32)
			if !ok {
				return fmt.Errorf("loopback: extinction_reward %v invalid", val)
			}
			v.cfg.ExtinctionReward = f
		default:
			return fmt.Errorf("loopback: unknown field %q", k)
		}
	}
	return nil
}

type batch struct {
	envs   []*env
	steps  int
	closed bool
}

func (b *batch) Reset(seed int64) error {
	if b.closed {
		return errors.New("loopback: batch is closed")
	}
	for _, v := range b.envs {
		v.reset(seed)
	}
	b.steps = 0
	return nil
}

func (b *batch) Step() error {
	if b.closed {
		return errors.New("loopback: batch is closed")
	}
	for _, v := range b.envs {
		if !v.haveRun {
			return errors.New("loopback: step before reset")
		}
		if err := v.step(); err != nil {
			return err
		}
	}
	b.steps++
	return nil
}

// Log aggregates one mapping over the whole batch; empty before the first
// step.
func (b *batch) Log() (harness.LogEntry, error) {
	if b.closed {
		return nil, errors.New("loopback: batch is closed")
	}
	if b.steps == 0 {
		return harness.LogEntry{}, nil
	}
	alive := 0
	var rewardSum float64
	agents := 0
	for _, v := range b.envs {
		for i := range v.bind.Alive {
			agents++
			if v.bind.Alive[i] {
				alive++
			}
			rewardSum += float64(v.bind.Rewards[i])
		}
	}
	return harness.LogEntry{
		"steps":       float64(b.steps),
		"alive":       float64(alive),
		"reward_mean": rewardSum / float64(agents),
	}, nil
}

// Render returns nil in normal mode and a compact alive-mask frame in
// replay mode.
func (b *batch) Render(mode harness.RenderMode) ([]byte, error) {
	if b.closed {
		return nil, errors.New("loopback: batch is closed")
	}
	if mode != harness.RenderReplay {
		return nil, nil
	}
	var frame []byte
	for _, v := range b.envs {
		for _, a := range v.bind.Alive {
			if a {
				frame = append(frame, 1)
			} else {
				frame = append(frame, 0)
			}
		}
	}
	return frame, nil
}

func (b *batch) Close() error {
	b.closed = true
	return nil
}
