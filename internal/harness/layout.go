package harness

import "fmt"

// Observation geometry: a flattened 9x9 local patch with 10+genes channels
// per cell, followed by 5 + genes + 5 scalar status bytes.
const (
	patchSide     = 9
	patchChannels = 10
	statusPrefix  = 5
	statusSuffix  = 5

	// NumActions is the size of the discrete action space; a valid action
	// is one integer in [0, NumActions) per agent per tick.
	NumActions = 11
)

// Layout partitions the flat shared buffers into one contiguous slot per
// environment and one row per agent. Slots are carved once and never
// change for the life of a pool.
type Layout struct {
	NumEnvs      int
	AgentsPerEnv int
	Genes        int
	Roles        int
}

// Validate reports the first configuration error, if any. It runs before
// any engine call.
func (l Layout) Validate() error {
	if l.NumEnvs <= 0 {
		return fmt.Errorf("harness: num envs must be positive, got %d", l.NumEnvs)
	}
	if l.AgentsPerEnv <= 0 {
		return fmt.Errorf("harness: agents per env must be positive, got %d", l.AgentsPerEnv)
	}
	if l.Genes < 0 {
		return fmt.Errorf("harness: gene count must be non-negative, got %d", l.Genes)
	}
	if l.Roles < 1 {
		return fmt.Errorf("harness: role count must be positive, got %d", l.Roles)
	}
	return nil
}

// NumAgents returns the total agent count across all environments.
func (l Layout) NumAgents() int { return l.NumEnvs * l.AgentsPerEnv }

// ObsWidth returns the per-agent observation row width in bytes.
func (l Layout) ObsWidth() int {
	return patchSide*patchSide*(patchChannels+l.Genes) + statusPrefix + l.Genes + statusSuffix
}

// KinshipLen returns the flattened kinship matrix length across all
// environments (one agents² block per environment).
func (l Layout) KinshipLen() int {
	return l.NumEnvs * l.AgentsPerEnv * l.AgentsPerEnv
}

// AgentRange returns the half-open agent index range [lo, hi) owned by
// environment env. The union of all ranges tiles [0, NumAgents) exactly.
func (l Layout) AgentRange(env int) (lo, hi int) {
	return env * l.AgentsPerEnv, (env + 1) * l.AgentsPerEnv
}

// KinshipRange returns the half-open kinship index range owned by
// environment env. No kinship row crosses an environment boundary.
func (l Layout) KinshipRange(env int) (lo, hi int) {
	sq := l.AgentsPerEnv * l.AgentsPerEnv
	return env * sq, (env + 1) * sq
}
