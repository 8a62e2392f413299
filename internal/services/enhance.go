package services

import (
	"image"

	"github.com/disintegration/imaging"
)

// enhanceForOCR prepares a rendered page for recognition: grayscale
// conversion, a light gaussian blur to suppress scan noise, then an
// adaptive mean threshold so text survives uneven lighting.
func enhanceForOCR(img image.Image) *image.Gray {
	gray := toGray(imaging.Grayscale(img))
	denoised := toGray(imaging.Blur(gray, 0.8))
	return adaptiveThreshold(denoised, 11, 2)
}

func toGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}
	return gray
}

// adaptiveThreshold binarizes against the mean of a window x window
// neighborhood minus a constant c, using an integral image so the pass
// stays linear in pixel count.
func adaptiveThreshold(gray *image.Gray, window, c int) *image.Gray {
	bounds := gray.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w == 0 || h == 0 {
		return gray
	}

	integral := make([][]int64, h+1)
	for i := range integral {
		integral[i] = make([]int64, w+1)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := int64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			integral[y+1][x+1] = v + integral[y][x+1] + integral[y+1][x] - integral[y][x]
		}
	}

	half := window / 2
	out := image.NewGray(bounds)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0 := max(x-half, 0)
			y0 := max(y-half, 0)
			x1 := min(x+half+1, w)
			y1 := min(y+half+1, h)

			area := int64((x1 - x0) * (y1 - y0))
			sum := integral[y1][x1] - integral[y0][x1] - integral[y1][x0] + integral[y0][x0]
			mean := sum / area

			v := int64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			if v > mean-int64(c) {
				out.Pix[y*out.Stride+x] = 255
			} else {
				out.Pix[y*out.Stride+x] = 0
			}
		}
	}

	return out
}
