package harness

import "testing"

func TestLayoutValidate(t *testing.T) {
	good := Layout{NumEnvs: 2, AgentsPerEnv: 8, Genes: 3, Roles: 2}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid layout rejected: %v", err)
	}

	for _, l := range []Layout{
		{NumEnvs: 0, AgentsPerEnv: 8, Genes: 3, Roles: 2},
		{NumEnvs: -1, AgentsPerEnv: 8, Genes: 3, Roles: 2},
		{NumEnvs: 2, AgentsPerEnv: 0, Genes: 3, Roles: 2},
		{NumEnvs: 2, AgentsPerEnv: 8, Genes: -1, Roles: 2},
		{NumEnvs: 2, AgentsPerEnv: 8, Genes: 3, Roles: 0},
	} {
		if err := l.Validate(); err == nil {
			t.Fatalf("layout %+v must be rejected", l)
		}
	}
}

func TestObsWidth(t *testing.T) {
	l := Layout{NumEnvs: 1, AgentsPerEnv: 1, Genes: 3, Roles: 2}
	// 9*9*(10+3) + 5 + 3 + 5
	if got := l.ObsWidth(); got != 1066 {
		t.Fatalf("ObsWidth() = %d, want 1066", got)
	}
	l.Genes = 0
	if got := l.ObsWidth(); got != 9*9*10+10 {
		t.Fatalf("ObsWidth() with zero genes = %d", got)
	}
}

func TestLayoutCoverage(t *testing.T) {
	for _, l := range []Layout{
		{NumEnvs: 1, AgentsPerEnv: 1, Genes: 0, Roles: 1},
		{NumEnvs: 1, AgentsPerEnv: 128, Genes: 3, Roles: 2},
		{NumEnvs: 4, AgentsPerEnv: 32, Genes: 2, Roles: 3},
		{NumEnvs: 7, AgentsPerEnv: 5, Genes: 1, Roles: 1},
	} {
		if err := l.Validate(); err != nil {
			t.Fatal(err)
		}

		covered := make([]int, l.NumAgents())
		for e := 0; e < l.NumEnvs; e++ {
			lo, hi := l.AgentRange(e)
			if hi-lo != l.AgentsPerEnv {
				t.Fatalf("%+v: env %d range [%d,%d) has wrong width", l, e, lo, hi)
			}
			for i := lo; i < hi; i++ {
				covered[i]++
			}
		}
		for i, n := range covered {
			if n != 1 {
				t.Fatalf("%+v: agent slot %d covered %d times", l, i, n)
			}
		}

		kinCovered := make([]int, l.KinshipLen())
		for e := 0; e < l.NumEnvs; e++ {
			lo, hi := l.KinshipRange(e)
			if hi-lo != l.AgentsPerEnv*l.AgentsPerEnv {
				t.Fatalf("%+v: env %d kinship range [%d,%d) has wrong width", l, e, lo, hi)
			}
			for i := lo; i < hi; i++ {
				kinCovered[i]++
			}
		}
		for i, n := range kinCovered {
			if n != 1 {
				t.Fatalf("%+v: kinship slot %d covered %d times", l, i, n)
			}
		}
	}
}

func TestBuffersCheck(t *testing.T) {
	l := Layout{NumEnvs: 2, AgentsPerEnv: 4, Genes: 1, Roles: 2}
	b := NewBuffers(l)
	if err := b.Check(l); err != nil {
		t.Fatalf("freshly allocated buffers rejected: %v", err)
	}

	short := NewBuffers(l)
	short.Rewards = short.Rewards[:len(short.Rewards)-1]
	if err := short.Check(l); err == nil {
		t.Fatal("short rewards buffer must be rejected")
	}

	wrongKin := NewBuffers(l)
	wrongKin.Kinship = make([]uint8, l.NumAgents()*l.NumAgents())
	if err := wrongKin.Check(l); err == nil {
		t.Fatal("cross-environment kinship shape must be rejected")
	}
}

func TestSlotSlicesShareMemory(t *testing.T) {
	l := Layout{NumEnvs: 3, AgentsPerEnv: 2, Genes: 0, Roles: 1}
	b := NewBuffers(l)

	s := b.slot(l, 1)
	s.Actions[0] = 42
	s.Rewards[1] = 1.5
	s.Observations[0] = 9
	s.Kinship[0] = 7

	lo, _ := l.AgentRange(1)
	if b.Actions[lo] != 42 {
		t.Fatal("action slice does not alias the shared buffer")
	}
	if b.Rewards[lo+1] != 1.5 {
		t.Fatal("reward slice does not alias the shared buffer")
	}
	if b.Observations[lo*l.ObsWidth()] != 9 {
		t.Fatal("observation slice does not alias the shared buffer")
	}
	klo, _ := l.KinshipRange(1)
	if b.Kinship[klo] != 7 {
		t.Fatal("kinship slice does not alias the shared buffer")
	}
}
