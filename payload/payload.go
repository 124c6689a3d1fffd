// Package payload implements the compact metadata codec embedded in
// the sheet's payload code.
//
// The wire form is a small JSON object using short keys; fields equal
// to their default (zero or false) are omitted to keep the code
// physically small. Parsing is lenient and backward compatible: each
// field is looked up by its short key, then by a legacy long key, and
// finally defaulted. Text that does not parse, or whose required
// fields are non-positive, is reported as "not a valid payload" rather
// than a hard error, so callers can tell a payload code apart from a
// marker code sharing the same visual-code channel.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tsawler/folio/model"
)

// ErrNotPayload reports that a decoded text was not a valid metadata
// payload. It is not a terminal failure: the resolver uses it to keep
// searching for other codes.
var ErrNotPayload = errors.New("not a valid payload")

// Payload is an immutable snapshot of the geometry in force when a
// sheet was composed. Optional fields are zero when the payload was
// written by an older producer that omitted them; consumers must
// re-derive such fields instead of trusting the zero.
type Payload struct {
	PageWidth         int  `json:"w"`
	PageHeight        int  `json:"h"`
	TotalPages        int  `json:"n"`
	StartWithLeftPage bool `json:"l,omitempty"`
	PageSpacing       int  `json:"ps,omitempty"`
	RowSpacing        int  `json:"rs,omitempty"`
	PaddingX          int  `json:"px,omitempty"` // user padding, excludes the registration border
	PaddingY          int  `json:"py,omitempty"`

	// Derived fields, absent from older payload variants.
	CanvasWidth  int `json:"cw,omitempty"`
	CanvasHeight int `json:"ch,omitempty"`
	PagesPerRow  int `json:"ppr,omitempty"`
	Rows         int `json:"r,omitempty"`

	// Marker and payload-code metrics in force at composition time,
	// also absent from older payloads.
	PayloadCodeSize   int `json:"qs,omitempty"`
	PayloadCodeMargin int `json:"qm,omitempty"`
	MarkerSize        int `json:"ms,omitempty"`
	MarkerMargin      int `json:"mm,omitempty"`
}

// longKeys maps each short key to the legacy long key accepted on
// read for payloads written before the compact schema.
var longKeys = map[string]string{
	"w":   "pageWidth",
	"h":   "pageHeight",
	"n":   "totalPages",
	"l":   "startWithLeftPage",
	"ps":  "pageSpacing",
	"rs":  "rowSpacing",
	"px":  "paddingX",
	"py":  "paddingY",
	"cw":  "canvasWidth",
	"ch":  "canvasHeight",
	"ppr": "pagesPerRow",
	"r":   "rows",
	"qs":  "qrSize",
	"qm":  "qrMargin",
	"ms":  "markerSize",
	"mm":  "markerMargin",
}

// New builds the payload for a sheet composed with the given user
// settings, page geometry, and full canvas size, capturing the marker
// constants in force.
func New(s model.LayoutSettings, pg model.PageGeometry, canvasWidth, canvasHeight, rows int) *Payload {
	return &Payload{
		PageWidth:         pg.Width,
		PageHeight:        pg.Height,
		TotalPages:        s.TotalPages,
		StartWithLeftPage: s.StartWithLeftPage,
		PageSpacing:       s.PageSpacing,
		RowSpacing:        s.RowSpacing,
		PaddingX:          s.PaddingX,
		PaddingY:          s.PaddingY,
		CanvasWidth:       canvasWidth,
		CanvasHeight:      canvasHeight,
		PagesPerRow:       s.PagesPerRow,
		Rows:              rows,
		PayloadCodeSize:   model.PayloadCodeSize,
		PayloadCodeMargin: model.PayloadCodeMargin,
		MarkerSize:        model.MarkerSize,
		MarkerMargin:      model.MarkerMargin,
	}
}

// Encode serializes the payload to its compact text form. Fields equal
// to their default are omitted by the struct tags.
func (p *Payload) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding payload: %w", err)
	}
	return string(data), nil
}

// Parse decodes text into a payload. It returns an error wrapping
// ErrNotPayload when the text is not JSON, not an object, or lacks a
// positive page size and page count.
func Parse(text string) (*Payload, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotPayload, firstLine(text))
	}

	p := &Payload{
		PageWidth:         intField(raw, "w"),
		PageHeight:        intField(raw, "h"),
		TotalPages:        intField(raw, "n"),
		StartWithLeftPage: boolField(raw, "l"),
		PageSpacing:       intField(raw, "ps"),
		RowSpacing:        intField(raw, "rs"),
		PaddingX:          intField(raw, "px"),
		PaddingY:          intField(raw, "py"),
		CanvasWidth:       intField(raw, "cw"),
		CanvasHeight:      intField(raw, "ch"),
		PagesPerRow:       intField(raw, "ppr"),
		Rows:              intField(raw, "r"),
		PayloadCodeSize:   intField(raw, "qs"),
		PayloadCodeMargin: intField(raw, "qm"),
		MarkerSize:        intField(raw, "ms"),
		MarkerMargin:      intField(raw, "mm"),
	}

	if p.PageWidth <= 0 || p.PageHeight <= 0 || p.TotalPages <= 0 {
		return nil, fmt.Errorf("%w: required fields missing or non-positive (w=%d h=%d n=%d)",
			ErrNotPayload, p.PageWidth, p.PageHeight, p.TotalPages)
	}
	return p, nil
}

// intField looks a number up by short key, then legacy long key, and
// defaults to zero. Values that are not numbers default as well.
func intField(raw map[string]any, key string) int {
	v, ok := raw[key]
	if !ok {
		v, ok = raw[longKeys[key]]
	}
	if !ok {
		return 0
	}
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return int(f)
}

// boolField looks a bool up by short key, then legacy long key, and
// defaults to false.
func boolField(raw map[string]any, key string) bool {
	v, ok := raw[key]
	if !ok {
		v, ok = raw[longKeys[key]]
	}
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		return false
	}
	return b
}

// firstLine truncates decoded text for error messages; a photographed
// code can decode to arbitrary noise.
func firstLine(text string) string {
	const max = 60
	for i, r := range text {
		if r == '\n' || i >= max {
			return text[:i] + "..."
		}
	}
	return text
}

// Settings reconstructs the layout settings stored in the payload.
// PagesPerRow may be zero for older payloads; callers must infer it
// before deriving geometry.
func (p *Payload) Settings() model.LayoutSettings {
	return model.LayoutSettings{
		TotalPages:        p.TotalPages,
		PagesPerRow:       p.PagesPerRow,
		StartWithLeftPage: p.StartWithLeftPage,
		PageSpacing:       p.PageSpacing,
		RowSpacing:        p.RowSpacing,
		PaddingX:          p.PaddingX,
		PaddingY:          p.PaddingY,
	}
}

// PageGeometry returns the page size stored in the payload.
func (p *Payload) PageGeometry() model.PageGeometry {
	return model.PageGeometry{Width: p.PageWidth, Height: p.PageHeight}
}

// HasCanvasMetrics reports whether the payload carries the derived
// canvas size (newer payloads only).
func (p *Payload) HasCanvasMetrics() bool {
	return p.CanvasWidth > 0 && p.CanvasHeight > 0
}

// MarkerMetrics returns the marker code size and margin, falling back
// to the fixed constants when the payload predates those fields.
func (p *Payload) MarkerMetrics() (size, margin int) {
	size, margin = p.MarkerSize, p.MarkerMargin
	if size <= 0 {
		size = model.MarkerSize
	}
	if margin <= 0 {
		margin = model.MarkerMargin
	}
	return size, margin
}

// PayloadCodeMetrics returns the payload code size and margin, falling
// back to the fixed constants when the payload predates those fields.
func (p *Payload) PayloadCodeMetrics() (size, margin int) {
	size, margin = p.PayloadCodeSize, p.PayloadCodeMargin
	if size <= 0 {
		size = model.PayloadCodeSize
	}
	if margin <= 0 {
		margin = model.PayloadCodeMargin
	}
	return size, margin
}
