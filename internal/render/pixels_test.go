package render

import (
	"testing"

	"territories/internal/terrain"
)

func TestFillImageRGBA(t *testing.T) {
	img := terrain.NewImage(1, 3)
	copy(img.Pix, []float64{
		0, 0.5, 1,
		-0.2, 1.3, 0.25,
		terrain.SoilColor[0], terrain.SoilColor[1], terrain.SoilColor[2],
	})

	buf := make([]byte, 4*3)
	fillImageRGBA(buf, img)

	want := []byte{
		0, 128, 255, 0xff,
		0, 255, 64, 0xff,
		120, 72, 0, 0xff,
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, buf[i], want[i])
		}
	}
}
