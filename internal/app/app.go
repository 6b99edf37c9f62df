//go:build ebiten

package app

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"territories/internal/render"
	"territories/internal/terrain"
)

// Viewer displays the upscaled terrain image as an ebiten.Game.
type Viewer struct {
	cfg     terrain.Config
	painter *render.ImagePainter

	display *terrain.Image
	targetH int
	targetW int
	err     error
}

// New synthesizes the terrain for cfg and prepares a viewer showing it at
// targetH x targetW.
func New(cfg terrain.Config, targetH, targetW int) (*Viewer, error) {
	v := &Viewer{cfg: cfg, targetH: targetH, targetW: targetW}
	if err := v.regenerate(); err != nil {
		return nil, err
	}
	v.painter = render.NewImagePainter(targetW, targetH)
	return v, nil
}

func (v *Viewer) regenerate() error {
	_, img, err := terrain.Classify(v.cfg)
	if err != nil {
		return err
	}
	v.display = terrain.Upscale(img, v.targetH, v.targetW)
	return nil
}

// Update handles key input: R regenerates with the same seed, S reseeds
// from the clock, Q or Escape quits.
func (v *Viewer) Update() error {
	if v.err != nil {
		return v.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.err = v.regenerate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		v.cfg.Seed = time.Now().UnixNano()
		v.err = v.regenerate()
	}
	return v.err
}

// Draw renders the current terrain image.
func (v *Viewer) Draw(screen *ebiten.Image) {
	v.painter.Blit(screen, v.display, 1)
}

// Layout returns the logical screen size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.targetW, v.targetH
}
