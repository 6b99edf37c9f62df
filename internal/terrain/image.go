package terrain

// Image is an H x W x 3 float RGB image in row-major order with channel
// values in [0, 1].
type Image struct {
	H, W int
	Pix  []float64
}

// NewImage allocates a black image with the given dimensions.
func NewImage(h, w int) *Image {
	if h <= 0 {
		h = 1
	}
	if w <= 0 {
		w = 1
	}
	return &Image{H: h, W: w, Pix: make([]float64, h*w*3)}
}

// At returns the RGB triple of pixel (r, c).
func (im *Image) At(r, c int) [3]float64 {
	base := (r*im.W + c) * 3
	return [3]float64{im.Pix[base], im.Pix[base+1], im.Pix[base+2]}
}

// Upscale resizes the image to targetH x targetW with nearest-neighbor
// resampling, each spatial axis mapped independently by the ratio of the
// extents. The channel axis is never resampled, and no blending occurs, so
// integer factors replicate source pixels into exact blocks.
func Upscale(src *Image, targetH, targetW int) *Image {
	if targetH <= 0 {
		targetH = 1
	}
	if targetW <= 0 {
		targetW = 1
	}
	dst := NewImage(targetH, targetW)
	for r := 0; r < targetH; r++ {
		sr := r * src.H / targetH
		for c := 0; c < targetW; c++ {
			sc := c * src.W / targetW
			sBase := (sr*src.W + sc) * 3
			dBase := (r*targetW + c) * 3
			dst.Pix[dBase+0] = src.Pix[sBase+0]
			dst.Pix[dBase+1] = src.Pix[sBase+1]
			dst.Pix[dBase+2] = src.Pix[sBase+2]
		}
	}
	return dst
}
