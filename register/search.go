package register

import (
	"image"
	stddraw "image/draw"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/qr"
)

// Region sizing for corner searches. zxing-style detectors show a bias
// toward codes near the image center, so after the whole-image pass
// the resolver crops each corner out and searches it in isolation.
const (
	// RegionFraction of min(width, height) sets the corner region edge.
	RegionFraction = 0.45
	// RegionMinSize and RegionMaxSize clamp the corner region edge, in
	// pixels.
	RegionMinSize = 260
	RegionMaxSize = 1200
)

// RegionSize returns the corner search region edge length for an
// image of the given size.
func RegionSize(width, height int) int {
	m := width
	if height < m {
		m = height
	}
	size := int(RegionFraction * float64(m))
	if size < RegionMinSize {
		size = RegionMinSize
	}
	if size > RegionMaxSize {
		size = RegionMaxSize
	}
	if size > width {
		size = width
	}
	if size > height {
		size = height
	}
	return size
}

// CornerRegion returns the search rectangle for one corner of an
// image of the given size.
func CornerRegion(corner model.Corner, width, height int) model.Rect {
	size := RegionSize(width, height)
	x, y := 0, 0
	if corner == model.TopRight || corner == model.BottomRight {
		x = width - size
	}
	if corner == model.BottomLeft || corner == model.BottomRight {
		y = height - size
	}
	return model.NewRect(x, y, size, size)
}

// SearchRegions returns the ordered list of regions every code search
// walks: the whole image first, then the four corners in TL, TR, BL,
// BR order.
func SearchRegions(width, height int) []model.Rect {
	regions := make([]model.Rect, 0, 5)
	regions = append(regions, model.NewRect(0, 0, width, height))
	for _, c := range model.Corners {
		regions = append(regions, CornerRegion(c, width, height))
	}
	return regions
}

// detectRegion searches one region of img and returns detections with
// coordinates already shifted into img's space. The whole-image region
// skips the copy.
func detectRegion(img *image.RGBA, r model.Rect) []qr.Detection {
	b := img.Bounds()
	if r.X == 0 && r.Y == 0 && r.Width == b.Dx() && r.Height == b.Dy() {
		return qr.DetectAll(img, model.Point{})
	}
	crop := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	stddraw.Draw(crop, crop.Bounds(), img, image.Pt(r.X, r.Y), stddraw.Src)
	return qr.DetectAll(crop, model.Point{X: float64(r.X), Y: float64(r.Y)})
}

// cornerDetections searches only the four corner regions, in order,
// and returns every detection found. Duplicate texts are kept; callers
// dedupe by role.
func cornerDetections(img *image.RGBA) []qr.Detection {
	b := img.Bounds()
	var out []qr.Detection
	for _, c := range model.Corners {
		out = append(out, detectRegion(img, CornerRegion(c, b.Dx(), b.Dy()))...)
	}
	return out
}
