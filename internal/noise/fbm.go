package noise

import "fmt"

// FBM accumulates octaves of gradient noise into fractal Brownian motion.
// Frequency starts at 1 and grows by lacunarity each octave; amplitude
// starts at 1 and decays by persistence. The sum is normalized by the
// accumulated amplitude so the result stays within the single-octave range
// no matter how many octaves are requested. Octaves below 1 are a
// configuration error (the amplitude sum would be zero).
func FBM(n *Perlin, x, y float64, octaves int, persistence, lacunarity float64) (float64, error) {
	if octaves < 1 {
		return 0, fmt.Errorf("noise: octaves must be >= 1, got %d", octaves)
	}

	amplitude := 1.0
	frequency := 1.0
	value := 0.0
	maxAmpl := 0.0
	for i := 0; i < octaves; i++ {
		value += n.Sample(x*frequency, y*frequency) * amplitude
		maxAmpl += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	return value / maxAmpl, nil
}
