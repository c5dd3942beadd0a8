// Package motion holds the small numeric toolkit shared by the effects:
// 2D vectors, easing curves, fixed-duration tweens, springs and colour
// blending.
package motion

import "math"

// Vec is a 2D vector in pixel space.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }

func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Lerp interpolates from v towards o.
func (v Vec) Lerp(o Vec, t float64) Vec {
	return Vec{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Rect is an axis-aligned rectangle in pixel space.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the rectangle's centre point.
func (r Rect) Center() Vec {
	return Vec{r.X + r.W/2, r.Y + r.H/2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Empty reports whether r has zero area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
