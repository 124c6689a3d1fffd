package model

import (
	"errors"
	"testing"
)

func TestLayoutSettingsValidate(t *testing.T) {
	valid := LayoutSettings{TotalPages: 8, PagesPerRow: 6, PageSpacing: 20, RowSpacing: 30}

	tests := []struct {
		name    string
		mutate  func(*LayoutSettings)
		wantErr bool
	}{
		{"valid", func(s *LayoutSettings) {}, false},
		{"zero pages", func(s *LayoutSettings) { s.TotalPages = 0 }, true},
		{"negative pages", func(s *LayoutSettings) { s.TotalPages = -1 }, true},
		{"odd pages per row", func(s *LayoutSettings) { s.PagesPerRow = 5 }, true},
		{"pages per row too large", func(s *LayoutSettings) { s.PagesPerRow = 14 }, true},
		{"zero pages per row", func(s *LayoutSettings) { s.PagesPerRow = 0 }, true},
		{"negative page spacing", func(s *LayoutSettings) { s.PageSpacing = -1 }, true},
		{"negative row spacing", func(s *LayoutSettings) { s.RowSpacing = -1 }, true},
		{"negative padding x", func(s *LayoutSettings) { s.PaddingX = -1 }, true},
		{"negative padding y", func(s *LayoutSettings) { s.PaddingY = -1 }, true},
		{"zero spacing is fine", func(s *LayoutSettings) { s.PageSpacing = 0; s.RowSpacing = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("error should wrap ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestAllowedPagesPerRowValues(t *testing.T) {
	for _, v := range AllowedPagesPerRow {
		s := LayoutSettings{TotalPages: 1, PagesPerRow: v}
		if err := s.Validate(); err != nil {
			t.Errorf("PagesPerRow=%d should be valid: %v", v, err)
		}
	}
}

func TestWithRegistrationBorder(t *testing.T) {
	s := LayoutSettings{TotalPages: 4, PagesPerRow: 2, PaddingX: 10, PaddingY: 25}
	eff := s.WithRegistrationBorder()

	if eff.PaddingX != 10+RegistrationBorder || eff.PaddingY != 25+RegistrationBorder {
		t.Errorf("effective padding = (%d, %d), want (%d, %d)",
			eff.PaddingX, eff.PaddingY, 10+RegistrationBorder, 25+RegistrationBorder)
	}
	if s.PaddingX != 10 || s.PaddingY != 25 {
		t.Error("WithRegistrationBorder must not mutate the receiver")
	}
}

func TestPageGeometryFromTemplate(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		want       PageGeometry
		wantSpread bool
	}{
		{"taller than wide is single", 720, 1000, PageGeometry{720, 1000}, false},
		{"wider than tall is spread", 1440, 1000, PageGeometry{720, 1000}, true},
		{"square is single", 500, 500, PageGeometry{500, 500}, false},
		{"odd spread width halves down", 1441, 1000, PageGeometry{720, 1000}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, spread := PageGeometryFromTemplate(tt.w, tt.h)
			if got != tt.want || spread != tt.wantSpread {
				t.Errorf("PageGeometryFromTemplate(%d, %d) = %+v, %v; want %+v, %v",
					tt.w, tt.h, got, spread, tt.want, tt.wantSpread)
			}
		})
	}
}

func TestCornerMarkerText(t *testing.T) {
	tests := []struct {
		corner Corner
		want   string
	}{
		{TopLeft, "TL"},
		{BottomLeft, "BL"},
		{BottomRight, "BR"},
		{TopRight, ""}, // reserved for the payload code
	}
	for _, tt := range tests {
		if got := tt.corner.MarkerText(); got != tt.want {
			t.Errorf("%v.MarkerText() = %q, want %q", tt.corner, got, tt.want)
		}
	}
}

func TestCodeRect(t *testing.T) {
	const w, h = 1000, 800
	tests := []struct {
		name   string
		corner Corner
		size   int
		margin int
		want   Rect
	}{
		{"marker top-left", TopLeft, MarkerSize, MarkerMargin, NewRect(32, 32, 150, 150)},
		{"marker bottom-left", BottomLeft, MarkerSize, MarkerMargin, NewRect(32, 618, 150, 150)},
		{"marker bottom-right", BottomRight, MarkerSize, MarkerMargin, NewRect(818, 618, 150, 150)},
		{"payload top-right", TopRight, PayloadCodeSize, PayloadCodeMargin, NewRect(668, 32, 300, 300)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CodeRect(tt.corner, w, h, tt.size, tt.margin)
			if got != tt.want {
				t.Errorf("CodeRect() = %v, want %v", got, tt.want)
			}
		})
	}
}
