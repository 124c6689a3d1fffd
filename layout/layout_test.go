package layout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tsawler/folio/model"
)

var page = model.PageGeometry{Width: 720, Height: 1000}

// ============================================================================
// Slot Geometry Tests
// ============================================================================

// Eight pages on rows of six with right-to-left reading order: page 1
// sits in the rightmost column, two pair gaps open per full row.
func TestEightPagesOnSixPerRow(t *testing.T) {
	s := model.LayoutSettings{
		TotalPages:  8,
		PagesPerRow: 6,
		PageSpacing: 20,
		RowSpacing:  30,
	}

	if got := Rows(s); got != 2 {
		t.Fatalf("Rows() = %d, want 2", got)
	}

	w, h := ContentSize(s, page)
	if w != 4360 { // 720*6 + 20*2
		t.Errorf("content width = %d, want 4360", w)
	}
	if h != 2030 { // 1000*2 + 30
		t.Errorf("content height = %d, want 2030", h)
	}

	tests := []struct {
		pageNum int
		want    model.Rect
	}{
		// Row 0, right to left: page 1 rightmost.
		{1, model.NewRect(5*720+2*20, 0, 720, 1000)},
		{2, model.NewRect(4*720+2*20, 0, 720, 1000)},
		{3, model.NewRect(3*720+1*20, 0, 720, 1000)},
		{4, model.NewRect(2*720+1*20, 0, 720, 1000)},
		{5, model.NewRect(1*720+0*20, 0, 720, 1000)},
		{6, model.NewRect(0, 0, 720, 1000)},
		// Row 1 starts at the right again.
		{7, model.NewRect(5*720+2*20, 1030, 720, 1000)},
		{8, model.NewRect(4*720+2*20, 1030, 720, 1000)},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.pageNum), func(t *testing.T) {
			got, err := SlotRect(s, page, tt.pageNum)
			if err != nil {
				t.Fatalf("SlotRect() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SlotRect() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Starting with a left page leaves the rightmost slot of row 0 empty:
// page 1 shifts one column left and picks up the extra leading gap.
func TestStartWithLeftPage(t *testing.T) {
	s := model.LayoutSettings{
		TotalPages:        7,
		PagesPerRow:       6,
		StartWithLeftPage: true,
		PageSpacing:       20,
		RowSpacing:        30,
	}

	// 7 pages + 1 leading empty slot = 8 slots on rows of 6.
	if got := Rows(s); got != 2 {
		t.Fatalf("Rows() = %d, want 2", got)
	}

	p1, err := SlotRect(s, page, 1)
	if err != nil {
		t.Fatalf("SlotRect() error: %v", err)
	}
	// Column 4 with two pair gaps plus the extra leading gap.
	want := model.NewRect(4*720+3*20, 0, 720, 1000)
	if p1 != want {
		t.Errorf("page 1 = %v, want %v", p1, want)
	}

	// Page 1 is the rightmost occupied slot of row 0.
	for n := 2; n <= 5; n++ {
		r, err := SlotRect(s, page, n)
		if err != nil {
			t.Fatalf("SlotRect(%d) error: %v", n, err)
		}
		if r.Y != 0 {
			t.Fatalf("page %d should be in row 0", n)
		}
		if r.X >= p1.X {
			t.Errorf("page %d at x=%d should be left of page 1 at x=%d", n, r.X, p1.X)
		}
	}

	// The extra leading gap widens the full row by one spacing.
	w, _ := ContentSize(s, page)
	if w != 720*6+20*3 {
		t.Errorf("content width = %d, want %d", w, 720*6+20*3)
	}
}

func TestSlotRectErrors(t *testing.T) {
	s := model.LayoutSettings{TotalPages: 4, PagesPerRow: 2}

	tests := []struct {
		name string
		s    model.LayoutSettings
		pg   model.PageGeometry
		page int
	}{
		{"page zero", s, page, 0},
		{"page beyond total", s, page, 5},
		{"invalid settings", model.LayoutSettings{TotalPages: 4, PagesPerRow: 3}, page, 1},
		{"invalid page geometry", s, model.PageGeometry{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SlotRect(tt.s, tt.pg, tt.page)
			if !errors.Is(err, model.ErrInvalidSettings) {
				t.Errorf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

// ============================================================================
// Canvas Property Tests
// ============================================================================

// Every valid settings combination must yield pairwise non-overlapping
// slots that all fit inside the computed canvas.
func TestSlotsDisjointAndInsideCanvas(t *testing.T) {
	pg := model.PageGeometry{Width: 120, Height: 170}

	for _, ppr := range model.AllowedPagesPerRow {
		for _, startLeft := range []bool{false, true} {
			for _, total := range []int{1, 3, ppr, ppr + 1, 2*ppr + 3} {
				for _, spacing := range [][2]int{{0, 0}, {14, 23}} {
					s := model.LayoutSettings{
						TotalPages:        total,
						PagesPerRow:       ppr,
						StartWithLeftPage: startLeft,
						PageSpacing:       spacing[0],
						RowSpacing:        spacing[1],
						PaddingX:          7,
						PaddingY:          11,
					}
					name := fmt.Sprintf("ppr=%d left=%v total=%d ps=%d", ppr, startLeft, total, spacing[0])
					t.Run(name, func(t *testing.T) {
						w, h := CanvasSize(s, pg)
						rects := make([]model.Rect, 0, total)
						for n := 1; n <= total; n++ {
							r, err := SlotRect(s, pg, n)
							if err != nil {
								t.Fatalf("SlotRect(%d): %v", n, err)
							}
							if !r.In(w, h) {
								t.Fatalf("page %d rect %v outside canvas %dx%d", n, r, w, h)
							}
							for i, other := range rects {
								if r.Intersects(other) {
									t.Fatalf("page %d rect %v overlaps page %d rect %v", n, r, i+1, other)
								}
							}
							rects = append(rects, r)
						}
					})
				}
			}
		}
	}
}

// ============================================================================
// Inference Tests
// ============================================================================

// The inference must recover the exact original pages-per-row for
// every allowed value from a canvas built with the content-width
// formula.
func TestInferPagesPerRow(t *testing.T) {
	pg := model.PageGeometry{Width: 720, Height: 1000}

	for _, ppr := range model.AllowedPagesPerRow {
		for _, startLeft := range []bool{false, true} {
			t.Run(fmt.Sprintf("ppr=%d left=%v", ppr, startLeft), func(t *testing.T) {
				s := model.LayoutSettings{
					TotalPages:        ppr + 1,
					PagesPerRow:       ppr,
					StartWithLeftPage: startLeft,
					PageSpacing:       20,
					RowSpacing:        30,
					PaddingX:          40,
					PaddingY:          25,
				}
				canvasWidth, _ := CanvasSize(s, pg)
				got := InferPagesPerRow(pg.Width, s.PageSpacing, s.PaddingX, startLeft, canvasWidth)
				if got != ppr {
					t.Errorf("InferPagesPerRow() = %d, want %d", got, ppr)
				}
			})
		}
	}
}

// A slightly off observed width (a rescaled capture) still snaps to
// the nearest valid value.
func TestInferPagesPerRowTolerance(t *testing.T) {
	got := InferPagesPerRow(720, 20, 0, false, 4360+35)
	if got != 6 {
		t.Errorf("InferPagesPerRow() = %d, want 6", got)
	}
}
