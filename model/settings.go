package model

import (
	"errors"
	"fmt"
)

// Fixed registration constants. These are baked into every composed
// sheet and assumed by the resolver when a payload predates the fields
// that carry them.
const (
	// RegistrationBorder is the margin, in pixels, added to the user
	// padding on all four sides so that markers and the payload code
	// always sit outside visible page content.
	RegistrationBorder = 160

	// MarkerSize and MarkerMargin describe the three corner marker
	// codes: each is a MarkerSize square drawn MarkerMargin pixels in
	// from the two nearest canvas edges.
	MarkerSize   = 150
	MarkerMargin = 32

	// PayloadCodeSize and PayloadCodeMargin describe the payload code
	// occupying the top-right corner.
	PayloadCodeSize   = 300
	PayloadCodeMargin = 32
)

// AllowedPagesPerRow lists the valid values for
// LayoutSettings.PagesPerRow. Pages are laid out in left/right pairs,
// so only even values are meaningful.
var AllowedPagesPerRow = []int{2, 4, 6, 8, 10, 12}

// ErrInvalidSettings reports a configuration error: disallowed
// pages-per-row, non-positive page count, negative spacing or padding,
// or an out-of-range composer argument. Configuration errors are
// immediate and never retried.
var ErrInvalidSettings = errors.New("invalid layout settings")

// Corner identifies one of the four canonical sheet corners. The
// top-right corner is reserved for the payload code; the other three
// carry fixed-text alignment markers.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// Corners lists all four corners in the deterministic search order
// used throughout the resolver: TL, TR, BL, BR.
var Corners = []Corner{TopLeft, TopRight, BottomLeft, BottomRight}

// String returns the short name of the corner.
func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "TL"
	case TopRight:
		return "TR"
	case BottomLeft:
		return "BL"
	case BottomRight:
		return "BR"
	default:
		return "??"
	}
}

// MarkerText returns the fixed text encoded into the alignment marker
// for this corner, or "" for TopRight, which hosts the payload code
// instead of a marker.
func (c Corner) MarkerText() string {
	if c == TopRight {
		return ""
	}
	return c.String()
}

// MarkerCorners lists the three corners that carry a physical marker
// code (TopRight is skipped; the payload code anchors that corner).
var MarkerCorners = []Corner{TopLeft, BottomLeft, BottomRight}

// LayoutSettings describes the page grid of a composite sheet. All
// distances are pixels. The zero value is not valid; use Validate
// before deriving geometry from a settings value.
type LayoutSettings struct {
	TotalPages        int
	PagesPerRow       int
	StartWithLeftPage bool
	PageSpacing       int
	RowSpacing        int
	PaddingX          int
	PaddingY          int
}

// Validate checks the settings and returns an error wrapping
// ErrInvalidSettings when any field is out of range.
func (s LayoutSettings) Validate() error {
	if s.TotalPages <= 0 {
		return fmt.Errorf("%w: total pages must be positive, got %d", ErrInvalidSettings, s.TotalPages)
	}
	allowed := false
	for _, v := range AllowedPagesPerRow {
		if s.PagesPerRow == v {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: pages per row must be one of %v, got %d", ErrInvalidSettings, AllowedPagesPerRow, s.PagesPerRow)
	}
	if s.PageSpacing < 0 || s.RowSpacing < 0 {
		return fmt.Errorf("%w: spacing must not be negative (page=%d row=%d)", ErrInvalidSettings, s.PageSpacing, s.RowSpacing)
	}
	if s.PaddingX < 0 || s.PaddingY < 0 {
		return fmt.Errorf("%w: padding must not be negative (x=%d y=%d)", ErrInvalidSettings, s.PaddingX, s.PaddingY)
	}
	return nil
}

// WithRegistrationBorder returns a copy of the settings with the fixed
// registration border folded into the padding. Composition, recovery,
// and extraction all derive pixel geometry from this effective value;
// payloads store the user padding without the border.
func (s LayoutSettings) WithRegistrationBorder() LayoutSettings {
	s.PaddingX += RegistrationBorder
	s.PaddingY += RegistrationBorder
	return s
}

// CodeRect returns the square a visual code of the given size and
// margin occupies in the named corner of a width x height canvas. The
// composer draws codes into these rectangles and the resolver uses the
// same function for canonical positions, so the two can never drift.
func CodeRect(corner Corner, width, height, size, margin int) Rect {
	x, y := margin, margin
	if corner == TopRight || corner == BottomRight {
		x = width - margin - size
	}
	if corner == BottomLeft || corner == BottomRight {
		y = height - margin - size
	}
	return NewRect(x, y, size, size)
}

// PageGeometry is the pixel size of a single page slot.
type PageGeometry struct {
	Width  int
	Height int
}

// PageGeometryFromTemplate derives the page size from a template image
// size. A template wider than tall is treated as a two-page spread and
// halved; the returned bool reports whether that happened.
func PageGeometryFromTemplate(width, height int) (PageGeometry, bool) {
	if width > height {
		return PageGeometry{Width: width / 2, Height: height}, true
	}
	return PageGeometry{Width: width, Height: height}, false
}

// Validate checks that the page size is positive.
func (g PageGeometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: page size must be positive, got %dx%d", ErrInvalidSettings, g.Width, g.Height)
	}
	return nil
}
