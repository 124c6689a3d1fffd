package pages

import (
	"errors"
	"image"
	"image/color"
	stddraw "image/draw"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/folio/internal/imgio"
	"github.com/tsawler/folio/layout"
	"github.com/tsawler/folio/model"
)

var slotColors = []color.RGBA{
	{255, 0, 0, 255},
	{0, 128, 0, 255},
	{0, 0, 255, 255},
}

// paintedCanvas builds a canvas with each page slot filled in its own
// color, the way a composed-then-rectified sheet would look.
func paintedCanvas(t *testing.T, s model.LayoutSettings, pg model.PageGeometry) *image.RGBA {
	t.Helper()
	eff := s.WithRegistrationBorder()
	w, h := layout.CanvasSize(eff, pg)
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	stddraw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, stddraw.Src)
	for page := 1; page <= s.TotalPages; page++ {
		r, err := layout.SlotRect(eff, pg, page)
		if err != nil {
			t.Fatalf("SlotRect(%d) error: %v", page, err)
		}
		stddraw.Draw(canvas, r.ImageRect(), image.NewUniform(slotColors[page-1]), image.Point{}, stddraw.Src)
	}
	return canvas
}

// ============================================================================
// Crop Tests
// ============================================================================

func TestCropCopiesPixels(t *testing.T) {
	canvas := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			canvas.SetRGBA(x, y, color.RGBA{uint8(x * 10), uint8(y * 10), 0, 255})
		}
	}

	got, err := Crop(canvas, model.NewRect(5, 8, 4, 3), 1)
	if err != nil {
		t.Fatalf("Crop() error: %v", err)
	}
	if b := got.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("crop is %dx%d, want 4x3", b.Dx(), b.Dy())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			want := canvas.RGBAAt(5+x, 8+y)
			if c := got.RGBAAt(x, y); c != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, c, want)
			}
		}
	}
}

func TestCropOutOfBounds(t *testing.T) {
	canvas := image.NewRGBA(image.Rect(0, 0, 100, 100))

	tests := []struct {
		name string
		r    model.Rect
	}{
		{"past the right edge", model.NewRect(50, 0, 60, 40)},
		{"past the bottom edge", model.NewRect(0, 80, 40, 40)},
		{"negative origin", model.NewRect(-1, 0, 40, 40)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Crop(canvas, tt.r, 3)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("expected ErrOutOfBounds, got %v", err)
			}
			// The failing page number is part of the diagnosis.
			if want := "page 3"; !strings.Contains(err.Error(), want) {
				t.Errorf("error %q does not name %q", err, want)
			}
		})
	}
}

// ============================================================================
// Extract Tests
// ============================================================================

func TestExtract(t *testing.T) {
	s := model.LayoutSettings{TotalPages: 3, PagesPerRow: 2}
	pg := model.PageGeometry{Width: 40, Height: 60}
	canvas := paintedCanvas(t, s, pg)
	dir := t.TempDir()

	// A stale file from an earlier run must be cleared.
	stale := filepath.Join(dir, "007.png")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := Extract(canvas, s, pg, dir, "png")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	want := []string{
		filepath.Join(dir, "001.png"),
		filepath.Join(dir, "002.png"),
		filepath.Join(dir, "003.png"),
	}
	if len(paths) != len(want) {
		t.Fatalf("got %d paths, want %d", len(paths), len(want))
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("path %d = %q, want %q", i, p, want[i])
		}
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file survived extraction")
	}

	for i, p := range paths {
		img, err := imgio.Read(p)
		if err != nil {
			t.Fatalf("reading %s: %v", p, err)
		}
		if b := img.Bounds(); b.Dx() != pg.Width || b.Dy() != pg.Height {
			t.Errorf("page %d is %dx%d, want %dx%d", i+1, b.Dx(), b.Dy(), pg.Width, pg.Height)
		}
		if c := img.RGBAAt(pg.Width/2, pg.Height/2); c != slotColors[i] {
			t.Errorf("page %d center = %v, want %v", i+1, c, slotColors[i])
		}
	}
}

func TestExtractInvalidFormat(t *testing.T) {
	s := model.LayoutSettings{TotalPages: 2, PagesPerRow: 2}
	pg := model.PageGeometry{Width: 40, Height: 60}
	canvas := paintedCanvas(t, s, pg)

	_, err := Extract(canvas, s, pg, t.TempDir(), "gif")
	if !errors.Is(err, model.ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestExtractOutOfBounds(t *testing.T) {
	// A canvas too small for the claimed geometry must fail rather than
	// produce truncated pages.
	s := model.LayoutSettings{TotalPages: 2, PagesPerRow: 2}
	pg := model.PageGeometry{Width: 40, Height: 60}
	small := image.NewRGBA(image.Rect(0, 0, 100, 100))

	_, err := Extract(small, s, pg, t.TempDir(), "png")
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}
