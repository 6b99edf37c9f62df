package terrain

import (
	"fmt"

	"territories/internal/noise"
)

// soilCutoff is the fBm threshold below which a cell classifies as soil.
// The value is inherited from the reference map data and has no derivation
// beyond "classification cutoff".
const soilCutoff = -0.18

// Reference colors for the composed RGB image, float channels in [0, 1].
var (
	SoilColor  = [3]float64{120.0 / 255.0, 72.0 / 255.0, 0.0}
	GrassColor = [3]float64{85.0 / 255.0, 168.0 / 255.0, 74.0 / 255.0}
)

// Config controls terrain synthesis. Identical configs always produce
// bit-identical grids and images.
type Config struct {
	Rows int   `yaml:"rows"`
	Cols int   `yaml:"cols"`
	Seed int64 `yaml:"seed"`

	Scale       float64 `yaml:"scale"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
}

// DefaultConfig returns the standard map parameters.
func DefaultConfig() Config {
	return Config{
		Rows:        96,
		Cols:        96,
		Seed:        2,
		Scale:       15.0,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  20.0,
	}
}

// Validate reports the first configuration error, if any.
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("terrain: grid %dx%d must be positive", c.Rows, c.Cols)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("terrain: scale %v must be positive", c.Scale)
	}
	if c.Octaves < 1 {
		return fmt.Errorf("terrain: octaves must be >= 1, got %d", c.Octaves)
	}
	return nil
}

// Classify synthesizes the fBm field, thresholds it into the soil/grass
// grid, cleans the grid with a periodic binary opening and composes the
// RGB image.
func Classify(cfg Config) (*ClassGrid, *Image, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	perlin := noise.New(cfg.Seed)
	grid := NewClassGrid(cfg.Rows, cfg.Cols)
	for i := 0; i < cfg.Rows; i++ {
		for j := 0; j < cfg.Cols; j++ {
			v, err := noise.FBM(perlin, float64(i)/cfg.Scale, float64(j)/cfg.Scale,
				cfg.Octaves, cfg.Persistence, cfg.Lacunarity)
			if err != nil {
				return nil, nil, err
			}
			grid.Set(i, j, v < soilCutoff)
		}
	}

	cleaned := openPeriodic(grid)
	return cleaned, Compose(cleaned), nil
}

// Compose maps the class grid to an RGB image: soil cells take SoilColor,
// every other cell takes GrassColor.
func Compose(g *ClassGrid) *Image {
	img := NewImage(g.Rows, g.Cols)
	for i, soil := range g.cells {
		col := GrassColor
		if soil {
			col = SoilColor
		}
		base := i * 3
		img.Pix[base+0] = col[0]
		img.Pix[base+1] = col[1]
		img.Pix[base+2] = col[2]
	}
	return img
}

// openPadding is one cell of wrap padding per morphological pass: the
// erosion consumes the outer ring, leaving a correct ring for the dilation,
// so the cropped interior is exactly toroidal.
const openPadding = 2

// openPeriodic applies a binary opening (erosion then dilation) with an
// 8-connected 3x3 structuring element under periodic boundaries, using the
// wrap-pad-then-crop strategy.
func openPeriodic(g *ClassGrid) *ClassGrid {
	rows, cols := g.Rows, g.Cols
	pr := rows + 2*openPadding
	pc := cols + 2*openPadding

	padded := make([]bool, pr*pc)
	for r := 0; r < pr; r++ {
		for c := 0; c < pc; c++ {
			padded[r*pc+c] = g.At(r-openPadding, c-openPadding)
		}
	}

	eroded := make([]bool, pr*pc)
	for r := 1; r < pr-1; r++ {
	erode:
		for c := 1; c < pc-1; c++ {
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if !padded[(r+dr)*pc+c+dc] {
						continue erode
					}
				}
			}
			eroded[r*pc+c] = true
		}
	}

	out := NewClassGrid(rows, cols)
	for r := 0; r < rows; r++ {
	dilate:
		for c := 0; c < cols; c++ {
			pr0 := r + openPadding
			pc0 := c + openPadding
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if eroded[(pr0+dr)*pc+pc0+dc] {
						out.Set(r, c, true)
						continue dilate
					}
				}
			}
		}
	}
	return out
}
