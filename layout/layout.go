package layout

import (
	"fmt"

	"github.com/tsawler/folio/model"
)

// Rows returns the number of rows needed to hold every page slot.
// Starting with a left page consumes one extra slot, since the
// rightmost slot of the first row stays empty.
func Rows(s model.LayoutSettings) int {
	slots := s.TotalPages
	if s.StartWithLeftPage {
		slots++
	}
	return (slots + s.PagesPerRow - 1) / s.PagesPerRow
}

// slotIndex returns the 0-based slot occupied by a 1-based page
// number.
func slotIndex(s model.LayoutSettings, page int) int {
	idx := page - 1
	if s.StartWithLeftPage {
		idx++
	}
	return idx
}

// pairGapsBefore counts the page-spacing gaps between column 0 and the
// given column. Columns are grouped into left/right pairs of two, so a
// gap opens at every pair boundary crossed; starting with a left page
// inserts one extra gap immediately after column 0.
func pairGapsBefore(col int, startWithLeft bool) int {
	gaps := col / 2
	if startWithLeft && col >= 1 {
		gaps++
	}
	return gaps
}

// gapsPerRow returns the number of page-spacing gaps a full row
// contains.
func gapsPerRow(pagesPerRow int, startWithLeft bool) int {
	return pairGapsBefore(pagesPerRow-1, startWithLeft)
}

// SlotRect computes the pixel rectangle of the given 1-based page.
// Reading order is right to left: lower page numbers occupy columns
// further to the right.
func SlotRect(s model.LayoutSettings, pg model.PageGeometry, page int) (model.Rect, error) {
	if err := s.Validate(); err != nil {
		return model.Rect{}, err
	}
	if err := pg.Validate(); err != nil {
		return model.Rect{}, err
	}
	if page < 1 || page > s.TotalPages {
		return model.Rect{}, fmt.Errorf("%w: page %d out of range 1..%d", model.ErrInvalidSettings, page, s.TotalPages)
	}

	slot := slotIndex(s, page)
	row := slot / s.PagesPerRow
	colFromRight := slot % s.PagesPerRow
	col := s.PagesPerRow - 1 - colFromRight

	x := s.PaddingX + col*pg.Width + pairGapsBefore(col, s.StartWithLeftPage)*s.PageSpacing
	y := s.PaddingY + row*pg.Height + row*s.RowSpacing
	return model.NewRect(x, y, pg.Width, pg.Height), nil
}

// ContentSize returns the pixel size of the page grid without padding.
func ContentSize(s model.LayoutSettings, pg model.PageGeometry) (int, int) {
	rows := Rows(s)
	width := pg.Width*s.PagesPerRow + s.PageSpacing*gapsPerRow(s.PagesPerRow, s.StartWithLeftPage)
	height := pg.Height*rows + s.RowSpacing*(rows-1)
	return width, height
}

// CanvasSize returns the full canvas size: content plus padding on all
// sides. The caller decides whether the settings already include the
// registration border.
func CanvasSize(s model.LayoutSettings, pg model.PageGeometry) (int, int) {
	w, h := ContentSize(s, pg)
	return w + 2*s.PaddingX, h + 2*s.PaddingY
}

// InferPagesPerRow recovers the pages-per-row value from an observed
// canvas width when the payload predates the field. For each allowed
// value it computes the content width the documented formula would
// produce and picks the value whose width is closest to the observed
// content width (canvas width minus the padding on both sides).
func InferPagesPerRow(pageWidth, pageSpacing, paddingX int, startWithLeft bool, canvasWidth int) int {
	observed := canvasWidth - 2*paddingX
	best := model.AllowedPagesPerRow[0]
	bestDiff := -1
	for _, v := range model.AllowedPagesPerRow {
		expected := pageWidth*v + pageSpacing*gapsPerRow(v, startWithLeft)
		diff := expected - observed
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best = v
			bestDiff = diff
		}
	}
	return best
}
