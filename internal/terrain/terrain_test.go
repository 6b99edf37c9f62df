package terrain

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyDeterministic(t *testing.T) {
	cfg := DefaultConfig()

	g1, img1, err := Classify(cfg)
	if err != nil {
		t.Fatal(err)
	}
	g2, img2, err := Classify(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if g1.Count() != g2.Count() {
		t.Fatalf("soil counts differ: %d != %d", g1.Count(), g2.Count())
	}
	for i := range g1.cells {
		if g1.cells[i] != g2.cells[i] {
			t.Fatalf("class grids differ at cell %d", i)
		}
	}
	for i := range img1.Pix {
		if img1.Pix[i] != img2.Pix[i] {
			t.Fatalf("images differ at component %d", i)
		}
	}
}

func TestClassifySeedChangesField(t *testing.T) {
	cfg := DefaultConfig()
	g1, _, err := Classify(cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Seed = 3
	g2, _, err := Classify(cfg)
	if err != nil {
		t.Fatal(err)
	}

	same := true
	for i := range g1.cells {
		if g1.cells[i] != g2.cells[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical class grids")
	}
}

func TestClassifyRejectsBadConfig(t *testing.T) {
	for _, cfg := range []Config{
		{Rows: 0, Cols: 96, Scale: 15, Octaves: 4, Persistence: 0.5, Lacunarity: 20},
		{Rows: 96, Cols: -1, Scale: 15, Octaves: 4, Persistence: 0.5, Lacunarity: 20},
		{Rows: 96, Cols: 96, Scale: 0, Octaves: 4, Persistence: 0.5, Lacunarity: 20},
		{Rows: 96, Cols: 96, Scale: 15, Octaves: 0, Persistence: 0.5, Lacunarity: 20},
	} {
		if _, _, err := Classify(cfg); err == nil {
			t.Fatalf("config %+v must be rejected", cfg)
		}
	}
}

// shiftGrid returns g translated by (dr, dc) with toroidal wrapping.
func shiftGrid(g *ClassGrid, dr, dc int) *ClassGrid {
	out := NewClassGrid(g.Rows, g.Cols)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			out.Set(r, c, g.At(r-dr, c-dc))
		}
	}
	return out
}

func TestOpeningShiftConsistent(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 0))
	g := NewClassGrid(24, 17)
	for i := range g.cells {
		g.cells[i] = rng.IntN(3) != 0
	}

	for _, shift := range [][2]int{{1, 0}, {0, 1}, {7, 13}, {23, 16}, {-5, 40}} {
		dr, dc := shift[0], shift[1]
		a := openPeriodic(shiftGrid(g, dr, dc))
		b := shiftGrid(openPeriodic(g), dr, dc)
		for i := range a.cells {
			if a.cells[i] != b.cells[i] {
				t.Fatalf("shift (%d,%d): opening not wrap-consistent at cell %d", dr, dc, i)
			}
		}
	}
}

func TestOpeningRemovesSpecks(t *testing.T) {
	g := NewClassGrid(16, 16)
	g.Set(4, 4, true) // isolated speck, must not survive erosion

	// a solid 4x4 block survives opening intact
	for r := 8; r < 12; r++ {
		for c := 8; c < 12; c++ {
			g.Set(r, c, true)
		}
	}

	out := openPeriodic(g)
	if out.At(4, 4) {
		t.Fatal("isolated speck survived opening")
	}
	for r := 8; r < 12; r++ {
		for c := 8; c < 12; c++ {
			if !out.At(r, c) {
				t.Fatalf("block cell (%d,%d) lost by opening", r, c)
			}
		}
	}
	if got := out.Count(); got != 16 {
		t.Fatalf("opened grid has %d soil cells, want 16", got)
	}
}

func TestOpeningWrapsBlocks(t *testing.T) {
	// A 3x3 block straddling all four corners must survive, which only
	// happens when edge cells get full wrapped neighborhoods.
	g := NewClassGrid(12, 12)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := g.Wrap(dr, dc)
			g.Set(r, c, true)
		}
	}

	out := openPeriodic(g)
	if out.Count() != 9 {
		t.Fatalf("corner-straddling block reduced to %d cells, want 9", out.Count())
	}
	if !out.At(0, 0) || !out.At(11, 11) || !out.At(0, 11) || !out.At(11, 0) {
		t.Fatal("corner cells of the wrapped block were clipped")
	}
}

func TestComposeColors(t *testing.T) {
	g := NewClassGrid(2, 2)
	g.Set(0, 0, true)
	img := Compose(g)

	if img.At(0, 0) != SoilColor {
		t.Fatalf("soil cell colored %v, want %v", img.At(0, 0), SoilColor)
	}
	if img.At(1, 1) != GrassColor {
		t.Fatalf("grass cell colored %v, want %v", img.At(1, 1), GrassColor)
	}
}

func TestUpscaleReplicatesBlocks(t *testing.T) {
	src := NewImage(2, 3)
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			base := (r*3 + c) * 3
			src.Pix[base] = float64(r)
			src.Pix[base+1] = float64(c)
			src.Pix[base+2] = float64(r * c)
		}
	}

	dst := Upscale(src, 8, 12)
	if dst.H != 8 || dst.W != 12 {
		t.Fatalf("upscaled to %dx%d, want 8x12", dst.H, dst.W)
	}
	for r := 0; r < 8; r++ {
		for c := 0; c < 12; c++ {
			want := src.At(r/4, c/4)
			if got := dst.At(r, c); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want replicated %v", r, c, got, want)
			}
		}
	}
}

func TestCapacityZeroOnSoil(t *testing.T) {
	g := NewClassGrid(3, 3)
	g.Set(1, 1, true)

	m := Capacity(g, MaxCapacity, SustainedFraction)
	for i := range m.Max {
		if i == g.Index(1, 1) {
			if m.Max[i] != 0 || m.Sustained[i] != 0 {
				t.Fatalf("soil cell has capacity %v/%v, want 0", m.Max[i], m.Sustained[i])
			}
			continue
		}
		if m.Max[i] != MaxCapacity {
			t.Fatalf("cell %d max capacity %v, want %v", i, m.Max[i], MaxCapacity)
		}
		if m.Sustained[i] != MaxCapacity*SustainedFraction {
			t.Fatalf("cell %d sustained capacity %v", i, m.Sustained[i])
		}
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	dir := t.TempDir()
	g := NewClassGrid(5, 7)
	g.Set(0, 0, true)
	g.Set(4, 6, true)
	g.Set(2, 3, true)

	path, err := WriteArtifact(dir, g)
	if err != nil {
		t.Fatal(err)
	}
	if want := ArtifactName(5, 7); path == "" || path[len(path)-len(want):] != want {
		t.Fatalf("artifact written to %q, want name %q", path, want)
	}

	back, err := ReadArtifact(dir, 5, 7)
	if err != nil {
		t.Fatal(err)
	}
	for i := range g.cells {
		if g.cells[i] != back.cells[i] {
			t.Fatalf("artifact cell %d mismatch", i)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, ArtifactName(2, 2)), []byte{1, 0, 1}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadArtifact(dir, 2, 2); err == nil {
		t.Fatal("truncated artifact must be rejected")
	}
}
