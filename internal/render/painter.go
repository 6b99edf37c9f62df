//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"territories/internal/terrain"
)

// ImagePainter uploads a float RGB terrain image into a single ebiten
// texture and draws it at integer scale.
type ImagePainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewImagePainter allocates a painter for images of size w*h.
func NewImagePainter(w, h int) *ImagePainter {
	ip := &ImagePainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	ip.img = ebiten.NewImage(w, h)
	return ip
}

// Blit uploads the image pixels and draws them onto dst.
func (ip *ImagePainter) Blit(dst *ebiten.Image, img *terrain.Image, scale int) {
	if img.W != ip.w || img.H != ip.h {
		return
	}
	fillImageRGBA(ip.buf, img)
	ip.img.WritePixels(ip.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(ip.img, op)
}

// Size returns the dimensions of the underlying texture.
func (ip *ImagePainter) Size() (int, int) { return ip.w, ip.h }
