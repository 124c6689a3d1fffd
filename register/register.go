package register

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/tsawler/folio/internal/imgio"
	"github.com/tsawler/folio/layout"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/payload"
	"github.com/tsawler/folio/qr"
)

// ErrNoPayload reports that no detected code parsed as a valid
// metadata payload after every search strategy, including the single
// markers-only rectification fallback, was exhausted.
var ErrNoPayload = errors.New("no metadata payload found")

// ErrRegistration reports that a payload was found but a usable affine
// transform could not be solved: fewer than three registration points,
// or a degenerate point configuration. No further fallback exists.
var ErrRegistration = errors.New("registration failed")

// Resolution is the outcome of resolving a captured sheet: the
// rectified canonical canvas, the recovered payload, the settings
// with any re-derived fields filled in, and the solved transform.
type Resolution struct {
	Canvas   *image.RGBA
	Payload  *payload.Payload
	Settings model.LayoutSettings
	Matrix   model.Matrix

	// MarkersOnly is true when the payload was only readable after the
	// markers-only rectification fallback. That fallback assumes the
	// capture was not cropped; results are best-effort.
	MarkersOnly bool

	// InferredPagesPerRow is true when the payload predates the
	// pages-per-row field and the value was inferred from the observed
	// canvas width.
	InferredPagesPerRow bool
}

// Resolve recovers the payload and canonical geometry from an
// arbitrary capture of a composed sheet and returns the rectified
// canvas. See the package documentation for the full strategy order.
func Resolve(src image.Image) (*Resolution, error) {
	working := imgio.ToRGBA(src)
	res := &Resolution{}

	p, det, ok := findPayload(working)
	if !ok {
		rectified, err := rectifyByMarkers(working)
		if err != nil {
			return nil, err
		}
		working = rectified
		res.MarkersOnly = true
		p, det, ok = findPayload(working)
		if !ok {
			return nil, fmt.Errorf("%w: markers-only rectification did not expose a payload", ErrNoPayload)
		}
	}

	b := working.Bounds()
	s, inferred := resolveSettings(p, b.Dx())
	res.Settings = s
	res.InferredPagesPerRow = inferred

	width, height := canonicalCanvas(p, s)
	pairs := gatherPairs(working, p, det, width, height)
	if len(pairs) < 3 {
		return nil, fmt.Errorf("%w: only %d of 3 required registration points found", ErrRegistration, len(pairs))
	}

	m, err := SolveAffine(pairs)
	if err != nil {
		return nil, err
	}

	res.Payload = p
	res.Matrix = m
	res.Canvas = Rectify(working, m, width, height)
	return res, nil
}

// findPayload walks the ordered search regions until a detected code
// parses as a payload. It returns the payload, the detection that
// carried it, and whether one was found.
func findPayload(img *image.RGBA) (*payload.Payload, qr.Detection, bool) {
	b := img.Bounds()
	for _, region := range SearchRegions(b.Dx(), b.Dy()) {
		for _, det := range detectRegion(img, region) {
			if p, err := payload.Parse(det.Text); err == nil {
				return p, det, true
			}
		}
	}
	return nil, qr.Detection{}, false
}

// rectifyByMarkers attempts the one permitted fallback when no payload
// is readable: find the three alignment markers, fit an affine against
// the fixed marker constants using the input's own dimensions as the
// assumed canonical size, and rectify. Correct only when the capture
// was not cropped.
func rectifyByMarkers(img *image.RGBA) (*image.RGBA, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	found := map[model.Corner]model.Point{}
	for _, det := range cornerDetections(img) {
		for _, c := range model.MarkerCorners {
			if det.Text == c.MarkerText() {
				if _, dup := found[c]; !dup {
					found[c] = det.Center
				}
			}
		}
	}
	if len(found) < 3 {
		return nil, fmt.Errorf("%w: no payload code readable and only %d of 3 markers found", ErrNoPayload, len(found))
	}

	var pairs []PointPair
	for c, observed := range found {
		canonical := model.CodeRect(c, width, height, model.MarkerSize, model.MarkerMargin).Center()
		pairs = append(pairs, PointPair{Observed: observed, Canonical: canonical})
	}
	m, err := SolveAffine(pairs)
	if err != nil {
		return nil, err
	}
	return Rectify(img, m, width, height), nil
}

// resolveSettings reconstructs layout settings from the payload,
// inferring pages-per-row from the observed canvas width when the
// payload predates the field.
func resolveSettings(p *payload.Payload, imageWidth int) (model.LayoutSettings, bool) {
	s := p.Settings()
	if s.PagesPerRow != 0 {
		return s, false
	}
	observedWidth := imageWidth
	if p.HasCanvasMetrics() {
		observedWidth = p.CanvasWidth
	}
	s.PagesPerRow = layout.InferPagesPerRow(
		p.PageWidth, p.PageSpacing, p.PaddingX+model.RegistrationBorder,
		s.StartWithLeftPage, observedWidth)
	return s, true
}

// canonicalCanvas returns the canonical canvas size: straight from the
// payload when present, otherwise re-derived through the layout
// engine's canvas formula.
func canonicalCanvas(p *payload.Payload, s model.LayoutSettings) (int, int) {
	if p.HasCanvasMetrics() {
		return p.CanvasWidth, p.CanvasHeight
	}
	return layout.CanvasSize(s.WithRegistrationBorder(), p.PageGeometry())
}

// gatherPairs re-searches the four corner regions for marker codes and
// the payload anchor, pairing each observed centroid with its
// canonical position. The payload's own detection from the initial
// search backstops the top-right anchor in case the corner re-search
// misses it.
func gatherPairs(img *image.RGBA, p *payload.Payload, payloadDet qr.Detection, width, height int) []PointPair {
	markerSize, markerMargin := p.MarkerMetrics()
	codeSize, codeMargin := p.PayloadCodeMetrics()

	canonical := map[model.Corner]model.Point{
		model.TopRight: model.CodeRect(model.TopRight, width, height, codeSize, codeMargin).Center(),
	}
	for _, c := range model.MarkerCorners {
		canonical[c] = model.CodeRect(c, width, height, markerSize, markerMargin).Center()
	}

	observed := map[model.Corner]model.Point{}
	for _, det := range cornerDetections(img) {
		if _, err := payload.Parse(det.Text); err == nil {
			if _, dup := observed[model.TopRight]; !dup {
				observed[model.TopRight] = det.Center
			}
			continue
		}
		for _, c := range model.MarkerCorners {
			if det.Text == c.MarkerText() {
				if _, dup := observed[c]; !dup {
					observed[c] = det.Center
				}
			}
		}
	}
	if _, ok := observed[model.TopRight]; !ok && payloadDet.Text != "" {
		observed[model.TopRight] = payloadDet.Center
	}

	// Deterministic pair order: TL, TR, BL, BR.
	var pairs []PointPair
	for _, c := range model.Corners {
		if pt, ok := observed[c]; ok {
			pairs = append(pairs, PointPair{Observed: pt, Canonical: canonical[c]})
		}
	}
	return pairs
}

// Rectify renders a canonical-size canvas by resampling src through
// the solved observed-to-canonical transform with bicubic
// interpolation. Areas outside the source stay white.
func Rectify(src image.Image, m model.Matrix, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	stddraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, stddraw.Src)

	src2dst := f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
	xdraw.CatmullRom.Transform(dst, src2dst, src, src.Bounds(), xdraw.Over, nil)
	return dst
}
