package poster

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // logo decoders
	_ "image/jpeg" // logo decoders
	_ "image/png"  // logo decoders
	"os"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Assets are the optional inputs of a render. Any field may be nil.
// Assets are read-only once loaded and may be shared between renderers.
type Assets struct {
	Logo    image.Image
	Regular *opentype.Font
	Bold    *opentype.Font
}

// HasFonts reports whether real font metrics are available.
func (a Assets) HasFonts() bool {
	return a.Regular != nil || a.Bold != nil
}

// LoadAssets reads the logo and fonts from disk. Empty paths are skipped.
// Missing or undecodable files are logged and left nil; this never fails,
// so a render always has something to work with.
func LoadAssets(logoPath, regularFontPath, boldFontPath string) Assets {
	var a Assets
	if logoPath != "" {
		logo, err := LoadLogo(logoPath)
		if err != nil {
			Logger().Warn("logo unavailable, rendering without it", "path", logoPath, "err", err)
		} else {
			a.Logo = logo
		}
	}
	a.Regular = loadFontOrWarn(regularFontPath, "regular")
	a.Bold = loadFontOrWarn(boldFontPath, "bold")
	if !a.HasFonts() {
		Logger().Warn("no fonts loaded, using estimated text metrics")
	}
	return a
}

func loadFontOrWarn(path, weight string) *opentype.Font {
	if path == "" {
		return nil
	}
	f, err := LoadFont(path)
	if err != nil {
		Logger().Warn("font unavailable", "weight", weight, "path", path, "err", err)
		return nil
	}
	return f
}

// LoadLogo decodes a PNG, JPEG or GIF logo file.
func LoadLogo(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read logo: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	return img, nil
}

// LoadFont parses a TrueType or OpenType font file.
func LoadFont(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return f, nil
}

// GoFonts returns the Go font family embedded in the binary, for machines
// without font files.
func GoFonts() (regular, bold *opentype.Font, err error) {
	regular, err = opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, nil, fmt.Errorf("parse go regular: %w", err)
	}
	bold, err = opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, nil, fmt.Errorf("parse go bold: %w", err)
	}
	return regular, bold, nil
}

// WithGoFonts fills in missing fonts from the embedded Go family.
func (a Assets) WithGoFonts() Assets {
	if a.Regular != nil && a.Bold != nil {
		return a
	}
	regular, bold, err := GoFonts()
	if err != nil {
		Logger().Warn("embedded fonts unavailable", "err", err)
		return a
	}
	if a.Regular == nil {
		a.Regular = regular
	}
	if a.Bold == nil {
		a.Bold = bold
	}
	return a
}

// typefaces picks the regular and bold faces, substituting one weight for
// the other when only one was loaded.
func (a Assets) typefaces() (regular, bold typeface) {
	reg, bld := a.Regular, a.Bold
	if reg == nil {
		reg = bld
	}
	if bld == nil {
		bld = reg
	}
	if reg == nil {
		fallback := bitmapFace{charWidth: 0}
		return fallback, fallback
	}
	return outlineFace{font: reg}, outlineFace{font: bld}
}
