// Package imgio normalizes image I/O for the rest of the module:
// every source format decodes into a plain *image.RGBA buffer, and
// results encode as PNG or JPEG chosen by file extension.
package imgio

import (
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// jpegQuality keeps extracted pages readable after a second
// print/scan cycle.
const jpegQuality = 95

// SupportedExts lists the output extensions Write accepts, without
// the leading dot.
var SupportedExts = []string{"png", "jpg"}

// Read decodes the image file at path into a freshly allocated RGBA
// buffer.
func Read(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img as an *image.RGBA with its origin at (0,0),
// copying unless img already has that exact representation.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// ValidExt reports whether ext (without dot) is a supported output
// extension.
func ValidExt(ext string) bool {
	for _, e := range SupportedExts {
		if ext == e {
			return true
		}
	}
	return false
}

// Write encodes img to path, choosing the codec from the file
// extension (.png or .jpg).
func Write(path string, img image.Image) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !ValidExt(ext) {
		return fmt.Errorf("unsupported output extension %q (want png or jpg)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch ext {
	case "png":
		err = png.Encode(f, img)
	case "jpg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
