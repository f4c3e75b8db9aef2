package svgstock

import "strings"

// Format is one of the export formats a platform may require.
type Format int

const (
	FormatEPS Format = iota
	FormatJPG
	FormatPNG
	FormatSVG
	FormatSVGCropped
)

// Ext returns the destination file extension of the format.
func (f Format) Ext() string {
	switch f {
	case FormatEPS:
		return ".eps"
	case FormatJPG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	case FormatSVG, FormatSVGCropped:
		return ".svg"
	}
	return ""
}

// String returns the human readable name of the format.
func (f Format) String() string {
	switch f {
	case FormatEPS:
		return "EPS"
	case FormatJPG:
		return "JPG"
	case FormatPNG:
		return "PNG"
	case FormatSVG:
		return "SVG"
	case FormatSVGCropped:
		return "SVG (cropped)"
	}
	return "unknown"
}

// Platform describes the deliverables one microstock marketplace expects.
// The capability table below is the only place a new platform has to be added.
type Platform struct {
	// ID is the lowercase identifier used on the command line.
	ID string
	// Name is the display and output directory name.
	Name string
	// Formats lists every export format the platform requires.
	Formats []Format
	// Bundle indicates that the generated files of one source image
	// must be combined into a single zip archive.
	Bundle bool
}

// Platforms holds the supported marketplaces in the order their
// jobs are planned. The order is fixed so repeated runs over the
// same input produce the same job sequence.
var Platforms = []Platform{
	{ID: "shutterstock", Name: "Shutterstock", Formats: []Format{FormatEPS}},
	{ID: "vectorstock", Name: "Vectorstock", Formats: []Format{FormatJPG, FormatEPS}},
	{ID: "pngtree", Name: "PNGTree", Formats: []Format{FormatPNG, FormatEPS}, Bundle: true},
	{ID: "dreamstime", Name: "Dreamstime", Formats: []Format{FormatJPG, FormatEPS}},
	{ID: "adobestock", Name: "AdobeStock", Formats: []Format{FormatSVG}},
	{ID: "canva", Name: "Canva", Formats: []Format{FormatPNG}},
	{ID: "miricanvas", Name: "MiriCanvas", Formats: []Format{FormatSVGCropped}},
	{ID: "desainstock", Name: "Desainstock", Formats: []Format{FormatJPG}},
}

// LookupPlatform returns the platform registered under the given identifier.
func LookupPlatform(id string) (Platform, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, p := range Platforms {
		if p.ID == id {
			return p, true
		}
	}
	return Platform{}, false
}

// PlatformIDs returns the identifiers of all supported platforms.
func PlatformIDs() []string {
	ids := make([]string, 0, len(Platforms))
	for _, p := range Platforms {
		ids = append(ids, p.ID)
	}
	return ids
}
