package geom

import "fmt"

// Extent2D is a resolution in pixels.
type Extent2D struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

func Extent(width, height uint32) Extent2D {
	return Extent2D{Width: width, Height: height}
}

// IsZero reports whether either dimension is zero.
func (e Extent2D) IsZero() bool {
	return e.Width == 0 || e.Height == 0
}

func (e Extent2D) String() string {
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}
