// Package hexcore provides pure hex-grid coordinate math for a flat-top,
// odd-q offset grid. It has no external dependencies so it stays easy to
// test and reuse from every other package in the engine.
package hexcore

import "math"

// Coord identifies a cell by its offset column/row. Columns are the outer
// index; visual parity alternates with Col&1.
type Coord struct {
	Col, Row int
}

// Axial is the cube-free axial coordinate pair used internally for
// rounding and distance math.
type Axial struct {
	Q, R int
}

// Point is a pixel-space position.
type Point struct {
	X, Y float64
}

// Bounds describes a rectangular grid extent used for in-bounds checks.
type Bounds struct {
	Cols, Rows int
}

// InBounds reports whether c falls inside [0,Cols) x [0,Rows).
func (b Bounds) InBounds(c Coord) bool {
	return c.Col >= 0 && c.Col < b.Cols && c.Row >= 0 && c.Row < b.Rows
}

// OffsetToAxial converts an odd-q offset coordinate to axial.
func OffsetToAxial(c Coord) Axial {
	r := c.Row - (c.Col-(c.Col&1))/2
	return Axial{Q: c.Col, R: r}
}

// AxialToOffset is the inverse of OffsetToAxial.
func AxialToOffset(a Axial) Coord {
	row := a.R + (a.Q-(a.Q&1))/2
	return Coord{Col: a.Q, Row: row}
}

// evenColDeltas and oddColDeltas give the six neighbor offsets in fixed
// clockwise order. This ordering is part of the ABI: neighbor i and
// neighbor (i+1)%6 are guaranteed mutually adjacent, which is what lets
// the triangle matcher and cluster rotation build genuine triangles.
var evenColDeltas = [6]Coord{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {0, 1},
}

var oddColDeltas = [6]Coord{
	{1, 1}, {1, 0}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1},
}

// Neighbors returns the six neighbor coordinates of c in fixed clockwise
// order, regardless of whether they are in bounds.
func Neighbors(c Coord) [6]Coord {
	deltas := &evenColDeltas
	if c.Col&1 == 1 {
		deltas = &oddColDeltas
	}
	var out [6]Coord
	for i, d := range deltas {
		out[i] = Coord{Col: c.Col + d.Col, Row: c.Row + d.Row}
	}
	return out
}

// InBoundsNeighbors returns the subset of Neighbors(c) that fall inside b,
// alongside a parallel ok mask so callers can tell which index was dropped.
func InBoundsNeighbors(c Coord, b Bounds) (neighbors [6]Coord, ok [6]bool) {
	neighbors = Neighbors(c)
	for i, n := range neighbors {
		ok[i] = b.InBounds(n)
	}
	return neighbors, ok
}

// HexToPixel converts a grid coordinate to a pixel position for a
// flat-top odd-q layout with hex "radius" size, centered at origin.
func HexToPixel(c Coord, origin Point, size float64) Point {
	x := origin.X + float64(c.Col)*size*1.5
	y := origin.Y + float64(c.Row)*math.Sqrt(3)*size
	if c.Col&1 == 1 {
		y += math.Sqrt(3) / 2 * size
	}
	return Point{X: x, Y: y}
}

// PixelToHex inverts HexToPixel, returning the coordinate of the hex
// containing (x,y). Uses fractional axial coordinates followed by cube
// rounding.
func PixelToHex(p Point, origin Point, size float64) Coord {
	dx := p.X - origin.X
	dy := p.Y - origin.Y

	q := (2.0 / 3.0 * dx) / size
	r := (-1.0/3.0*dx + math.Sqrt(3)/3.0*dy) / size

	return AxialToOffset(roundAxial(q, r))
}

// roundAxial rounds fractional cube coordinates to the nearest hex,
// correcting whichever axis has the largest rounding residual so q+r+s
// stays exactly zero.
func roundAxial(qf, rf float64) Axial {
	sf := -qf - rf

	q := math.Round(qf)
	r := math.Round(rf)
	s := math.Round(sf)

	dq := math.Abs(q - qf)
	dr := math.Abs(r - rf)
	ds := math.Abs(s - sf)

	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	}

	return Axial{Q: int(q), R: int(r)}
}

// Triangle is one of the six (center, n_i, n_(i+1)) triangles around a
// cell, as used for hit-testing a pixel to a cluster selection.
type Triangle struct {
	A, B, C Coord
}

// centroidPixel returns the average pixel position of a,b,c.
func centroidPixel(a, b, c Coord, origin Point, size float64) Point {
	pa := HexToPixel(a, origin, size)
	pb := HexToPixel(b, origin, size)
	pc := HexToPixel(c, origin, size)
	return Point{
		X: (pa.X + pb.X + pc.X) / 3,
		Y: (pa.Y + pb.Y + pc.Y) / 3,
	}
}

func dist2(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// FindClusterAtPixel computes the hex under the pixel, then picks among
// the six (center, n_i, n_{i+1 mod 6}) triangles the one whose centroid is
// nearest the pixel, rejecting any triangle with an out-of-bounds member.
// Returns false if the hex under the pixel is itself out of bounds or no
// triangle is fully in bounds.
func FindClusterAtPixel(p Point, origin Point, size float64, b Bounds) (Triangle, bool) {
	center := PixelToHex(p, origin, size)
	if !b.InBounds(center) {
		return Triangle{}, false
	}

	neighbors := Neighbors(center)

	bestDist := math.Inf(1)
	var best Triangle
	found := false

	for i := 0; i < 6; i++ {
		n0 := neighbors[i]
		n1 := neighbors[(i+1)%6]
		if !b.InBounds(n0) || !b.InBounds(n1) {
			continue
		}
		cp := centroidPixel(center, n0, n1, origin, size)
		d := dist2(p, cp)
		if d < bestDist {
			bestDist = d
			best = Triangle{A: center, B: n0, C: n1}
			found = true
		}
	}

	return best, found
}
