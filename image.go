package xl2html

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"math"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ImagePlacement is a floating image positioned relative to its anchor cell.
// The offsets are carried both as numbers and as a CSS margin so the image
// floats inside the cell without disturbing table layout.
type ImagePlacement struct {
	Col     int // 1-based anchor column
	Row     int // 1-based anchor row
	OffsetX int // px
	OffsetY int // px
	Width   int // px
	Height  int // px
	Src     string // data URI
	Style   StyleSet
}

// newImagePlacement converts a document image into its grid placement.
func newImagePlacement(img FloatingImage) ImagePlacement {
	w, h := imageSize(img)
	return ImagePlacement{
		Col:     img.AnchorCol,
		Row:     img.AnchorRow,
		OffsetX: img.OffsetX,
		OffsetY: img.OffsetY,
		Width:   w,
		Height:  h,
		Src:     dataURI(img.Extension, img.Data),
		Style: StyleSet{
			"margin-left": fmt.Sprintf("%dpx", img.OffsetX),
			"margin-top":  fmt.Sprintf("%dpx", img.OffsetY),
		},
	}
}

// imageSize resolves the rendered pixel size: the intrinsic size of the
// encoded image, scaled by an explicit transform when one is declared.
func imageSize(img FloatingImage) (w, h int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return 0, 0
	}
	w, h = cfg.Width, cfg.Height
	if img.ScaleX > 0 && img.ScaleX != 1 {
		w = int(math.Round(float64(w) * img.ScaleX))
	}
	if img.ScaleY > 0 && img.ScaleY != 1 {
		h = int(math.Round(float64(h) * img.ScaleY))
	}
	return w, h
}

var imageMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".svg":  "image/svg+xml",
	".emf":  "image/x-emf",
	".wmf":  "image/x-wmf",
}

// dataURI encodes image bytes as a base64 data URI.
func dataURI(extension string, data []byte) string {
	mimeType, ok := imageMIMETypes[strings.ToLower(extension)]
	if !ok {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
