// Package model provides the shared value types for sheet composition
// and recovery.
//
// This package defines the user-facing data structures every other
// package consumes: pixel-space geometric primitives ([Point], [Rect],
// [Matrix]), the immutable layout configuration ([LayoutSettings],
// [PageGeometry]), the four canonical sheet corners ([Corner]), and
// the fixed registration constants shared by the composer and the
// resolver.
//
// # Geometry
//
// [Rect] is an integer pixel rectangle with its origin at the top-left
// corner, matching image coordinates. [Point] and [Matrix] are
// float64-based because detected code positions and affine transforms
// are sub-pixel.
//
// # Settings
//
// [LayoutSettings] is a plain immutable value: it is created per call,
// validated with [LayoutSettings.Validate], and discarded after use.
// No type in this package owns shared mutable state.
package model
