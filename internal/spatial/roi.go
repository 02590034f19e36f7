package spatial

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
)

// ParseRegionRect parses the pipeline's "[x0,y0,x1,y1]" ROI coordinate text
// into a planar rectangle in pixel space. Corner order is not guaranteed by
// the pipeline, so the rect is normalized from both points.
func ParseRegionRect(coor string) (r2.Rect, error) {
	s := strings.TrimSpace(coor)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return r2.Rect{}, fmt.Errorf("roi coordinates %q: expected 4 values", coor)
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return r2.Rect{}, fmt.Errorf("roi coordinates %q: %w", coor, err)
		}
		vals[i] = v
	}

	return r2.RectFromPoints(
		r2.Point{X: vals[0], Y: vals[1]},
		r2.Point{X: vals[2], Y: vals[3]},
	), nil
}

// RectArea returns the rectangle's area in square pixels.
func RectArea(rect r2.Rect) float64 {
	return rect.Size().X * rect.Size().Y
}
