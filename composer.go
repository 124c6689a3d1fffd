package folio

import (
	"fmt"
	"image"
	"os"

	"github.com/tsawler/folio/internal/imgio"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/sheet"
)

// Composer provides a fluent interface for composing a sheet. Each
// configuration method returns a new Composer instance, making it safe
// to branch a partially configured chain.
type Composer struct {
	settings model.LayoutSettings
	options  composeOptions

	// Accumulated error (fail-fast at the terminal operation)
	err error
}

// NewSheet starts a composition chain for the given layout settings.
// Exactly one content source must be configured before the terminal
// operation: Template, Templates, or Sources.
//
// Example:
//
//	img, _, err := folio.NewSheet(settings).Template("spread.png").Compose()
func NewSheet(settings model.LayoutSettings) *Composer {
	return &Composer{settings: settings}
}

// clone creates a copy of the Composer with a deep copy of options.
func (c *Composer) clone() *Composer {
	return &Composer{
		settings: c.settings,
		options:  c.options.clone(),
		err:      c.err,
	}
}

// Template configures a single template image for every page. A
// template wider than tall is treated as a two-page spread: left half
// even pages, right half odd pages.
func (c *Composer) Template(path string) *Composer {
	newC := c.clone()
	newC.options.mode = modeTemplate
	newC.options.templatePath = path
	return newC
}

// Templates configures distinct left and right page templates. Both
// images must share the same pixel dimensions.
func (c *Composer) Templates(leftPath, rightPath string) *Composer {
	newC := c.clone()
	newC.options.mode = modeLeftRight
	newC.options.leftPath = leftPath
	newC.options.rightPath = rightPath
	return newC
}

// Sources configures one source image per page, each scaled down
// (never up) to fit within scalePercent of its slot and centered.
// Requires PageSize, since the slot size is independent of the source
// images.
func (c *Composer) Sources(scalePercent int, paths ...string) *Composer {
	newC := c.clone()
	newC.options.mode = modeSources
	newC.options.scalePercent = scalePercent
	newC.options.sourcePaths = append([]string(nil), paths...)
	return newC
}

// PageSize sets the page slot size in pixels for Sources mode. The
// template modes derive the page size from the template instead.
func (c *Composer) PageSize(width, height int) *Composer {
	newC := c.clone()
	newC.options.pageWidth = width
	newC.options.pageHeight = height
	return newC
}

// Compose is a terminal operation: it loads the configured content,
// lays out every page, overlays the alignment markers and payload
// code, and returns the finished canvas.
func (c *Composer) Compose() (image.Image, []Warning, error) {
	s, err := c.composeSheet()
	if err != nil {
		return nil, nil, err
	}
	return s.Canvas, nil, nil
}

// WriteFile is a terminal operation: Compose, then encode the canvas
// to path as PNG or JPEG by extension.
func (c *Composer) WriteFile(path string) ([]Warning, error) {
	s, err := c.composeSheet()
	if err != nil {
		return nil, err
	}
	if err := imgio.Write(path, s.Canvas); err != nil {
		return nil, err
	}
	return nil, nil
}

// composeSheet runs the configured composition.
func (c *Composer) composeSheet() (*sheet.Sheet, error) {
	if c.err != nil {
		return nil, c.err
	}

	switch c.options.mode {
	case modeTemplate:
		tmpl, err := loadAsset(c.options.templatePath)
		if err != nil {
			return nil, err
		}
		return sheet.ComposeTemplate(tmpl, c.settings)

	case modeLeftRight:
		left, err := loadAsset(c.options.leftPath)
		if err != nil {
			return nil, err
		}
		right, err := loadAsset(c.options.rightPath)
		if err != nil {
			return nil, err
		}
		return sheet.ComposeLeftRight(left, right, c.settings)

	case modeSources:
		images := make([]image.Image, 0, len(c.options.sourcePaths))
		for _, path := range c.options.sourcePaths {
			img, err := loadAsset(path)
			if err != nil {
				return nil, err
			}
			images = append(images, img)
		}
		pg := model.PageGeometry{Width: c.options.pageWidth, Height: c.options.pageHeight}
		return sheet.ComposeImages(images, c.options.scalePercent, pg, c.settings)

	default:
		return nil, fmt.Errorf("%w: no content source configured (use Template, Templates, or Sources)", model.ErrInvalidSettings)
	}
}

// loadAsset reads an input image, mapping a missing file onto the
// asset error class.
func loadAsset(path string) (image.Image, error) {
	img, err := imgio.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", sheet.ErrMissingAsset, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", sheet.ErrMissingAsset, path, err)
	}
	return img, nil
}
