package convert

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// SourceExts lists the file types that can be converted.
var SourceExts = []string{".png", ".jpg", ".jpeg", ".tga"}

// LoadImage decodes a PNG, JPEG or TGA file into NRGBA.
func LoadImage(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("convert: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("convert: decode %s: %w", path, err)
	}

	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func isSource(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range SourceExts {
		if ext == e {
			return true
		}
	}
	return false
}
