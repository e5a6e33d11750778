package convert

import (
	"image"

	"golang.org/x/image/draw"
)

// Fit scales img down so its longest side is at most maxSide, keeping the
// aspect ratio. Images already small enough are returned unchanged.
func Fit(img *image.NRGBA, maxSide int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	tw, th := maxSide, maxSide
	if w > h {
		th = max(1, h*maxSide/w)
	} else if h > w {
		tw = max(1, w*maxSide/h)
	}

	// Scale in premultiplied space, straight alpha bleeds dark fringes
	// into transparent edges.
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premultiply(img), b, draw.Src, nil)

	return unpremultiply(dst)
}

func premultiply(src *image.NRGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si, di := src.PixOffset(x, y), dst.PixOffset(x, y)
			a := uint32(src.Pix[si+3])
			for c := 0; c < 3; c++ {
				dst.Pix[di+c] = uint8((uint32(src.Pix[si+c])*a + 127) / 255)
			}
			dst.Pix[di+3] = uint8(a)
		}
	}
	return dst
}

// unpremultiply leaves colour at zero for pixels that are (almost) fully
// transparent.
func unpremultiply(src *image.RGBA) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si, di := src.PixOffset(x, y), dst.PixOffset(x, y)
			a := src.Pix[si+3]
			if a > 1 {
				for c := 0; c < 3; c++ {
					dst.Pix[di+c] = clamp8(float64(src.Pix[si+c]) * 255 / float64(a))
				}
			}
			dst.Pix[di+3] = a
		}
	}
	return dst
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
