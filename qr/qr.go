// Package qr provides the visual-code channel used for registration:
// encoding short texts into square QR codes and detecting zero or more
// codes in a bitmap.
//
// This package wraps two external engines. Encoding uses
// github.com/skip2/go-qrcode; detection uses
// github.com/makiuchi-d/gozxing, preferring its multi-result QR reader
// and falling back to the single-result reader when the multi reader
// finds nothing. Both are pure Go, so no system dependency is needed.
package qr

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	zxmulti "github.com/makiuchi-d/gozxing/multi/qrcode"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
	skip2 "github.com/skip2/go-qrcode"

	"github.com/tsawler/folio/model"
)

// Detection is one decoded code: its text and the centroid of the
// symbol in the coordinate space of the image the caller searched.
// When detection runs over a cropped region, the centroid is
// constructed already shifted into full-image coordinates.
type Detection struct {
	Text   string
	Center model.Point
}

// Encode renders text as a square QR code image of the given pixel
// size, quiet zone included. Medium error correction tolerates the
// print-and-photograph round trip the codes are made for.
func Encode(text string, size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("code size must be positive, got %d", size)
	}
	code, err := skip2.New(text, skip2.Medium)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", text, err)
	}
	return code.Image(size), nil
}

// hints enables the slower, more thorough detector paths; captured
// sheets are small in number and never decoded interactively.
var hints = map[gozxing.DecodeHintType]interface{}{
	gozxing.DecodeHintType_TRY_HARDER: true,
}

// DetectAll finds every readable QR code in img. The offset is added
// to each centroid, so searching a copied-out region of a larger image
// yields coordinates in the larger image's space. A bitmap with no
// readable code returns nil rather than an error; the caller decides
// when exhausted strategies become a failure.
func DetectAll(img image.Image, offset model.Point) []Detection {
	bmp, err := binaryBitmap(img)
	if err != nil {
		return nil
	}

	if results, err := zxmulti.NewQRCodeMultiReader().DecodeMultiple(bmp, hints); err == nil && len(results) > 0 {
		out := make([]Detection, 0, len(results))
		for _, r := range results {
			out = append(out, fromResult(r, offset))
		}
		return out
	}

	// Multi found nothing; the single reader sometimes succeeds where
	// the multi reader's grouping heuristics give up.
	if r, err := zxqr.NewQRCodeReader().Decode(bmp, hints); err == nil {
		return []Detection{fromResult(r, offset)}
	}
	return nil
}

// binaryBitmap prepares an image for the zxing detectors.
func binaryBitmap(img image.Image) (*gozxing.BinaryBitmap, error) {
	src := gozxing.NewLuminanceSourceFromImage(img)
	return gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(src))
}

// fromResult converts a zxing result into a Detection with the offset
// applied.
func fromResult(r *gozxing.Result, offset model.Point) Detection {
	c := centroid(r.GetResultPoints())
	return Detection{
		Text:   r.GetText(),
		Center: model.Point{X: c.X + offset.X, Y: c.Y + offset.Y},
	}
}

func (p Detection) String() string {
	return fmt.Sprintf("%q@(%.1f,%.1f)", p.Text, p.Center.X, p.Center.Y)
}

// centroid estimates the symbol center from the detector's result
// points. zxing reports the finder pattern centers in the order
// bottom-left, top-left, top-right (plus an alignment pattern for
// larger symbols). The bottom-left and top-right finders sit on a
// diagonal of the symbol, so their midpoint is the exact center under
// any affine distortion; the plain mean of all points is biased toward
// the top-left corner and is used only when fewer points are
// available.
func centroid(points []gozxing.ResultPoint) model.Point {
	if len(points) >= 3 {
		bl := model.Point{X: points[0].GetX(), Y: points[0].GetY()}
		tr := model.Point{X: points[2].GetX(), Y: points[2].GetY()}
		return bl.Midpoint(tr)
	}
	var sum model.Point
	if len(points) == 0 {
		return sum
	}
	for _, pt := range points {
		sum.X += pt.GetX()
		sum.Y += pt.GetY()
	}
	return model.Point{X: sum.X / float64(len(points)), Y: sum.Y / float64(len(points))}
}
