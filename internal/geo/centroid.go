package geo

import "errors"

// Point is a geographic coordinate (WGS 84).
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ErrEmptyPolygon is returned when a centroid is requested for an empty
// vertex set. This is the one condition the caller must handle as a hard
// error rather than a fallback.
var ErrEmptyPolygon = errors.New("polygon has no vertices")

// Centroid returns the signed-area-weighted centroid of the polygon
// described by vertices, in input order, closing the ring implicitly.
// One or two vertices describe no area, so their arithmetic mean is
// returned instead; a degenerate polygon (collinear vertices, zero signed
// area) also falls back to the mean. Lat plays the x role and Lng the y
// role throughout; callers must not transpose.
func Centroid(vertices []Point) (Point, error) {
	n := len(vertices)
	if n == 0 {
		return Point{}, ErrEmptyPolygon
	}
	if n < 3 {
		return vertexMean(vertices), nil
	}

	var twiceArea, cx, cy float64
	for i := 0; i < n; i++ {
		p := vertices[i]
		q := vertices[(i+1)%n]

		cross := p.Lat*q.Lng - q.Lat*p.Lng
		twiceArea += cross
		cx += (p.Lat + q.Lat) * cross
		cy += (p.Lng + q.Lng) * cross
	}

	area := twiceArea / 2
	if area == 0 {
		return vertexMean(vertices), nil
	}
	return Point{Lat: cx / (6 * area), Lng: cy / (6 * area)}, nil
}

func vertexMean(vertices []Point) Point {
	var lat, lng float64
	for _, v := range vertices {
		lat += v.Lat
		lng += v.Lng
	}
	n := float64(len(vertices))
	return Point{Lat: lat / n, Lng: lng / n}
}
