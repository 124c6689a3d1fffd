package folio

import (
	"fmt"
	"image"
	"os"

	"github.com/tsawler/folio/internal/imgio"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/pages"
	"github.com/tsawler/folio/payload"
	"github.com/tsawler/folio/register"
	"github.com/tsawler/folio/sheet"
)

// Recovery provides a fluent interface for recovering pages from a
// captured sheet. Each configuration method returns a new Recovery
// instance.
type Recovery struct {
	filename string
	img      image.Image
	options  recoverOptions

	err error
}

// Scan starts a recovery chain from an image file.
//
// Example:
//
//	paths, warnings, err := folio.Scan("photo.jpg").Extract("out/")
func Scan(filename string) *Recovery {
	return &Recovery{filename: filename, options: defaultRecoverOptions()}
}

// ScanImage starts a recovery chain from an in-memory image.
func ScanImage(img image.Image) *Recovery {
	return &Recovery{img: img, options: defaultRecoverOptions()}
}

// clone creates a copy of the Recovery.
func (r *Recovery) clone() *Recovery {
	return &Recovery{
		filename: r.filename,
		img:      r.img,
		options:  r.options,
		err:      r.err,
	}
}

// Format sets the output extension ("png" or "jpg") for extracted
// pages. The default is "png".
func (r *Recovery) Format(ext string) *Recovery {
	newR := r.clone()
	newR.options.format = ext
	return newR
}

// Recovered is the result of resolving a capture: the rectified
// canonical canvas, the decoded payload, and the layout settings with
// any re-derived fields filled in.
type Recovered struct {
	Canvas   image.Image
	Payload  *payload.Payload
	Settings model.LayoutSettings
}

// Resolve is a terminal operation: it locates the payload and marker
// codes, solves the registration transform, and returns the rectified
// canvas without extracting pages.
func (r *Recovery) Resolve() (*Recovered, []Warning, error) {
	res, warnings, err := r.resolve()
	if err != nil {
		return nil, warnings, err
	}
	return &Recovered{Canvas: res.Canvas, Payload: res.Payload, Settings: res.Settings}, warnings, nil
}

// Extract is a terminal operation: Resolve, then crop every page and
// write it into dir in reading order as zero-padded files. The
// destination directory is cleared first; extraction is not atomic.
func (r *Recovery) Extract(dir string) ([]string, []Warning, error) {
	res, warnings, err := r.resolve()
	if err != nil {
		return nil, warnings, err
	}
	paths, err := pages.Extract(res.Canvas, res.Settings, res.Payload.PageGeometry(), dir, r.options.format)
	if err != nil {
		return nil, warnings, err
	}
	return paths, warnings, nil
}

// resolve loads the capture if needed and runs registration.
func (r *Recovery) resolve() (*register.Resolution, []Warning, error) {
	if r.err != nil {
		return nil, nil, r.err
	}

	img := r.img
	if img == nil {
		loaded, err := imgio.Read(r.filename)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil, fmt.Errorf("%w: %s", sheet.ErrMissingAsset, r.filename)
			}
			return nil, nil, err
		}
		img = loaded
	}

	res, err := register.Resolve(img)
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	if res.MarkersOnly {
		warnings = append(warnings, Warning{
			Message: "payload readable only after markers-only rectification; result assumes an uncropped capture",
		})
	}
	if res.InferredPagesPerRow {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("payload omitted pages per row; inferred %d from canvas width", res.Settings.PagesPerRow),
		})
	}
	return res, warnings, nil
}
