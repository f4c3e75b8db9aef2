package svgstock

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// jpegQuality is the encoding quality of the marketplace JPG deliverables.
const jpegQuality = 95

// flattenToJPEG composes the transparent PNG produced by the export
// onto a white background and encodes it as JPEG. Marketplaces reject
// JPG files with alpha, so the transparency has to be filled.
func flattenToJPEG(src, dest string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open the rasterized image: %w", err)
	}

	bounds := img.Bounds()
	background := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	flat := imaging.Overlay(background, img, image.Pt(0, 0), 1.0)

	if err := imaging.Save(flat, dest, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("unable to encode %s: %w", dest, err)
	}
	return nil
}
