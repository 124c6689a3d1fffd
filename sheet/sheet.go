// Package sheet composes page content, alignment markers, and the
// metadata payload code onto a single canvas.
//
// Three composition modes exist:
//
//   - a single template image, auto-detected as one page (taller than
//     wide) or a two-page spread (wider than tall; the left half feeds
//     even pages, the right half odd pages);
//   - distinct left and right template images of identical size;
//   - one source image per page, scaled down (never up) to fit a
//     percentage box of its slot and centered.
//
// Every composed canvas is freshly allocated and self-sufficient:
// the embedded payload code carries everything a later recovery needs.
package sheet

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/tsawler/folio/layout"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/payload"
	"github.com/tsawler/folio/qr"
)

// ErrMissingAsset reports an absent or unusable input image, such as
// mismatched left/right template sizes. Asset errors are immediate and
// never retried.
var ErrMissingAsset = errors.New("missing or unusable asset")

// Sheet is a composed canvas together with the payload embedded in it.
type Sheet struct {
	Canvas  *image.RGBA
	Payload *payload.Payload
}

// ComposeTemplate lays out every page from one template image. A
// template wider than tall is treated as a two-page spread: its left
// half becomes the even pages and its right half the odd pages.
func ComposeTemplate(tmpl image.Image, s model.LayoutSettings) (*Sheet, error) {
	b := tmpl.Bounds()
	pg, spread := model.PageGeometryFromTemplate(b.Dx(), b.Dy())
	return compose(s, pg, func(canvas *image.RGBA, page int, slot model.Rect) error {
		src := b
		if spread {
			src = templateHalf(b, pg, page%2 == 1)
		}
		stddraw.Draw(canvas, slot.ImageRect(), tmpl, src.Min, stddraw.Src)
		return nil
	})
}

// ComposeLeftRight lays out every page from two templates: right for
// odd pages, left for even pages. The templates must share the same
// pixel dimensions.
func ComposeLeftRight(left, right image.Image, s model.LayoutSettings) (*Sheet, error) {
	lb, rb := left.Bounds(), right.Bounds()
	if lb.Dx() != rb.Dx() || lb.Dy() != rb.Dy() {
		return nil, fmt.Errorf("%w: left template is %dx%d but right is %dx%d",
			ErrMissingAsset, lb.Dx(), lb.Dy(), rb.Dx(), rb.Dy())
	}
	pg := model.PageGeometry{Width: lb.Dx(), Height: lb.Dy()}
	return compose(s, pg, func(canvas *image.RGBA, page int, slot model.Rect) error {
		tmpl, src := left, lb
		if page%2 == 1 {
			tmpl, src = right, rb
		}
		stddraw.Draw(canvas, slot.ImageRect(), tmpl, src.Min, stddraw.Src)
		return nil
	})
}

// ComposeImages lays out one caller-supplied source image per page.
// Each image is scaled down, never up, to fit within scalePercent of
// its slot box and centered there. The page geometry defines the slot
// size independently of the sources.
func ComposeImages(images []image.Image, scalePercent int, pg model.PageGeometry, s model.LayoutSettings) (*Sheet, error) {
	if len(images) != s.TotalPages {
		return nil, fmt.Errorf("%w: got %d images for %d pages", model.ErrInvalidSettings, len(images), s.TotalPages)
	}
	if scalePercent <= 0 || scalePercent > 100 {
		return nil, fmt.Errorf("%w: image scale must be in 1..100 percent, got %d", model.ErrInvalidSettings, scalePercent)
	}
	return compose(s, pg, func(canvas *image.RGBA, page int, slot model.Rect) error {
		drawFitted(canvas, images[page-1], slot, scalePercent)
		return nil
	})
}

// compose runs the shared pipeline: validate, add the registration
// border, paint the white canvas, draw each page through drawPage,
// then overlay the three corner markers and the payload code.
func compose(s model.LayoutSettings, pg model.PageGeometry, drawPage func(*image.RGBA, int, model.Rect) error) (*Sheet, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := pg.Validate(); err != nil {
		return nil, err
	}

	eff := s.WithRegistrationBorder()
	width, height := layout.CanvasSize(eff, pg)
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	stddraw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, stddraw.Src)

	for page := 1; page <= s.TotalPages; page++ {
		slot, err := layout.SlotRect(eff, pg, page)
		if err != nil {
			return nil, err
		}
		if err := drawPage(canvas, page, slot); err != nil {
			return nil, err
		}
	}

	p := payload.New(s, pg, width, height, layout.Rows(s))
	if err := drawCodes(canvas, p); err != nil {
		return nil, err
	}
	return &Sheet{Canvas: canvas, Payload: p}, nil
}

// drawCodes overlays the three alignment markers (TL, BL, BR) and the
// payload code (TR) at their canonical positions.
func drawCodes(canvas *image.RGBA, p *payload.Payload) error {
	w := canvas.Bounds().Dx()
	h := canvas.Bounds().Dy()

	for _, corner := range model.MarkerCorners {
		img, err := qr.Encode(corner.MarkerText(), model.MarkerSize)
		if err != nil {
			return fmt.Errorf("marker %s: %w", corner, err)
		}
		r := model.CodeRect(corner, w, h, model.MarkerSize, model.MarkerMargin)
		stddraw.Draw(canvas, r.ImageRect(), img, img.Bounds().Min, stddraw.Src)
	}

	text, err := p.Encode()
	if err != nil {
		return err
	}
	img, err := qr.Encode(text, model.PayloadCodeSize)
	if err != nil {
		return fmt.Errorf("payload code: %w", err)
	}
	r := model.CodeRect(model.TopRight, w, h, model.PayloadCodeSize, model.PayloadCodeMargin)
	stddraw.Draw(canvas, r.ImageRect(), img, img.Bounds().Min, stddraw.Src)
	return nil
}

// templateHalf selects the half of a spread template feeding the given
// page: the right half for odd pages, the left for even.
func templateHalf(b image.Rectangle, pg model.PageGeometry, odd bool) image.Rectangle {
	if odd {
		return image.Rect(b.Min.X+pg.Width, b.Min.Y, b.Min.X+2*pg.Width, b.Min.Y+b.Dy())
	}
	return image.Rect(b.Min.X, b.Min.Y, b.Min.X+pg.Width, b.Min.Y+b.Dy())
}

// drawFitted scales src down to fit within scalePercent of the slot
// box and draws it centered. A source already smaller than the box is
// drawn at its native size: sources are never upscaled.
func drawFitted(canvas *image.RGBA, src image.Image, slot model.Rect, scalePercent int) {
	boxW := slot.Width * scalePercent / 100
	boxH := slot.Height * scalePercent / 100
	sb := src.Bounds()
	srcW, srcH := sb.Dx(), sb.Dy()
	if srcW <= 0 || srcH <= 0 || boxW <= 0 || boxH <= 0 {
		return
	}

	scale := 1.0
	if fx := float64(boxW) / float64(srcW); fx < scale {
		scale = fx
	}
	if fy := float64(boxH) / float64(srcH); fy < scale {
		scale = fy
	}
	dstW := int(float64(srcW) * scale)
	dstH := int(float64(srcH) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	x := slot.X + (slot.Width-dstW)/2
	y := slot.Y + (slot.Height-dstH)/2
	dst := image.Rect(x, y, x+dstW, y+dstH)
	if scale == 1.0 {
		stddraw.Draw(canvas, dst, src, sb.Min, stddraw.Src)
		return
	}
	xdraw.CatmullRom.Scale(canvas, dst, src, sb, xdraw.Src, nil)
}
