// Package folio composes a parametric page grid into one printable,
// scannable sheet with embedded registration codes, and recovers the
// individual pages from a photograph of that sheet.
//
// Composing:
//
//	settings := model.LayoutSettings{TotalPages: 8, PagesPerRow: 6, PageSpacing: 20, RowSpacing: 30}
//	warnings, err := folio.NewSheet(settings).Template("spread.png").WriteFile("sheet.png")
//	if err != nil {
//	    // handle error
//	}
//
// Recovering pages from a capture, however rotated or rescaled:
//
//	paths, warnings, err := folio.Scan("photo.jpg").Extract("out/")
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", folio.FormatWarnings(warnings))
//	}
//
// For advanced use cases the lower-level layout, sheet, register, and
// pages packages are also available.
package folio

import (
	"strings"
)

// Warning describes a non-fatal condition encountered while composing
// or recovering: the operation succeeded but the result deserves
// caller attention (for example, recovery needed the markers-only
// fallback, which assumes an uncropped capture).
type Warning struct {
	Message string
}

// FormatWarnings joins warnings into a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		msgs[i] = w.Message
	}
	return strings.Join(msgs, "; ")
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult is a helper that wraps a terminal operation returning
// (T, []Warning, error) and panics if the error is non-nil, discarding
// warnings.
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
