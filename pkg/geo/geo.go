// Package geo provides the small 2D vector and color types shared by the
// schema compiler and the world loader. Coordinates follow the engine
// convention: origin bottom-left, Y increasing upward.
package geo

import "fmt"

// IVec2 is a 2D vector with integer components, used for pixel and
// grid-cell coordinates.
type IVec2 struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// IV is a shorthand constructor for IVec2.
func IV(x, y int) IVec2 {
	return IVec2{X: x, Y: y}
}

// Add returns v + w.
func (v IVec2) Add(w IVec2) IVec2 {
	return IVec2{v.X + w.X, v.Y + w.Y}
}

// Sub returns v - w.
func (v IVec2) Sub(w IVec2) IVec2 {
	return IVec2{v.X - w.X, v.Y - w.Y}
}

// Scale returns v * s.
func (v IVec2) Scale(s int) IVec2 {
	return IVec2{v.X * s, v.Y * s}
}

func (v IVec2) String() string {
	return fmt.Sprintf("(%d, %d)", v.X, v.Y)
}

// Vec2 is a 2D vector with float components, used for pivots and
// point-valued fields.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is a shorthand constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
