package harness

// EnvHandle owns one environment's slot: the buffer slices carved from the
// shared bundle and the engine instance bound to them at construction.
type EnvHandle struct {
	Index   int
	Binding Binding
	Env     Env
}

// newEnvHandle initializes engine-side state for slot env of the layout.
func newEnvHandle(engine Engine, l Layout, b *Buffers, env int, seed int64, cfg EnvConfig) (*EnvHandle, error) {
	bind := b.slot(l, env)
	bind.Seed = seed
	inst, err := engine.Init(bind, cfg)
	if err != nil {
		return nil, err
	}
	return &EnvHandle{Index: env, Binding: bind, Env: inst}, nil
}
