package detect

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"
)

// loadImageCHW decodes an image file, resizes it to w x h and returns
// the pixels as a CHW float32 tensor with per-channel transform
// applied: out = (value - mean) * scale, value in 0..255.
func loadImageCHW(path string, w, h uint, mean, scale float32) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img = resize.Resize(w, h, img, resize.Bilinear)

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	plane := width * height
	data := make([]float32, 3*plane)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			data[i] = (float32(r>>8) - mean) * scale
			data[plane+i] = (float32(g>>8) - mean) * scale
			data[2*plane+i] = (float32(b>>8) - mean) * scale
			i++
		}
	}
	return data, nil
}
