package renderer

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jmrtz/go-pathtracer/pkg/core"
)

// ImageSOA stores the framebuffer as three planar channel slices.
// Pixels are gamma-encoded at write time, so the buffer holds final
// display bytes, not linear radiance.
type ImageSOA struct {
	width  int
	height int
	r      []uint8
	g      []uint8
	b      []uint8
}

// NewImageSOA allocates a framebuffer of the given dimensions
func NewImageSOA(width, height int) (*ImageSOA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image dimensions must be positive, got %dx%d", width, height)
	}
	n := width * height
	return &ImageSOA{
		width:  width,
		height: height,
		r:      make([]uint8, n),
		g:      make([]uint8, n),
		b:      make([]uint8, n),
	}, nil
}

// Width returns the image width in pixels
func (img *ImageSOA) Width() int { return img.width }

// Height returns the image height in pixels
func (img *ImageSOA) Height() int { return img.height }

// encodeChannel clamps a linear value to [0,1], gamma-encodes it, and
// truncates to a display byte
func encodeChannel(linear, gamma float64) uint8 {
	clamped := math.Min(math.Max(linear, 0), 1)
	return uint8(math.Pow(clamped, 1.0/gamma) * 255.0)
}

// SetPixel gamma-encodes a linear color into pixel (x, y)
func (img *ImageSOA) SetPixel(x, y int, color core.Vec3, gamma float64) {
	idx := y*img.width + x
	img.r[idx] = encodeChannel(color.X, gamma)
	img.g[idx] = encodeChannel(color.Y, gamma)
	img.b[idx] = encodeChannel(color.Z, gamma)
}

// Pixel returns the encoded bytes of pixel (x, y)
func (img *ImageSOA) Pixel(x, y int) (r, g, b uint8) {
	idx := y*img.width + x
	return img.r[idx], img.g[idx], img.b[idx]
}

// WritePPM emits the image as text PPM (P3), one pixel per line
func (img *ImageSOA) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.width, img.height); err != nil {
		return err
	}
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			idx := y*img.width + x
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", img.r[idx], img.g[idx], img.b[idx]); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// SavePPM writes the image to a file, truncating any existing file
func (img *ImageSOA) SavePPM(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file: %s", path)
	}
	defer file.Close()

	if err := img.WritePPM(file); err != nil {
		return fmt.Errorf("failed to write PPM: %v", err)
	}
	return nil
}
