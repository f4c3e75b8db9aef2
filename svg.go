package svgstock

import (
	"encoding/xml"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// svgHeader captures the root element attributes needed to size an export.
type svgHeader struct {
	XMLName xml.Name `xml:"svg"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr"`
}

var lengthRe = regexp.MustCompile(`\d+\.?\d*`)

// svgDimensions reads the intrinsic width and height of an SVG file.
// Width and height attributes take precedence, unit suffixes (px, mm,
// pt and the like) are ignored; the viewBox is used as a fallback.
func svgDimensions(path string) (width, height float64, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}

	var hdr svgHeader
	if err := xml.Unmarshal(data, &hdr); err != nil {
		return 0, 0, fmt.Errorf("parsing %s: %w", path, err)
	}

	width = parseLength(hdr.Width)
	height = parseLength(hdr.Height)
	if width > 0 && height > 0 {
		return width, height, nil
	}

	if parts := strings.Fields(hdr.ViewBox); len(parts) == 4 {
		w, errw := strconv.ParseFloat(parts[2], 64)
		h, errh := strconv.ParseFloat(parts[3], 64)
		if errw == nil && errh == nil && w > 0 && h > 0 {
			return w, h, nil
		}
	}

	return 0, 0, fmt.Errorf("cannot determine the dimensions of %s", path)
}

// parseLength extracts the leading numeric value of an SVG length
// attribute like "1024", "210mm" or "36.5 px". Returns 0 when the
// attribute holds no number.
func parseLength(attr string) float64 {
	m := lengthRe.FindString(attr)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}
