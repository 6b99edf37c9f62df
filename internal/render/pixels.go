package render

import "territories/internal/terrain"

// fillImageRGBA converts a float RGB image into RGBA pixels in buf. Channel
// values are clamped to [0, 1] before quantization; alpha is opaque.
func fillImageRGBA(buf []byte, img *terrain.Image) {
	for i := 0; i < img.H*img.W; i++ {
		src := i * 3
		dst := i * 4
		buf[dst+0] = quantize(img.Pix[src+0])
		buf[dst+1] = quantize(img.Pix[src+1])
		buf[dst+2] = quantize(img.Pix[src+2])
		buf[dst+3] = 0xff
	}
}

func quantize(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
