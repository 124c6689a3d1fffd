// Package layout implements the page-grid geometry engine.
//
// Given a [model.LayoutSettings] and a [model.PageGeometry], the
// engine computes the pixel rectangle of every page slot and the size
// of the canvas that holds them. The arithmetic is deliberately exact
// and integer-only: the composer, the resolver, and the extractor all
// re-derive the same geometry from the same inputs, sometimes without
// a payload to consult, so any drift between consumers would corrupt
// extraction.
//
// Pages read right to left: page 1 occupies the rightmost slot of the
// first row (or the slot beside it when the sheet starts with a left
// page). Columns are grouped into left/right pairs; one page-spacing
// gap separates adjacent pairs, with no gap inside a pair.
package layout
