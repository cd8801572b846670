package model

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"
)

// AppConfig holds application-wide preferences and poster defaults.
type AppConfig struct {
	// Branding
	BrandName  string `json:"brand_name"`
	LogoPath   string `json:"logo_path"`   // empty = no logo
	FilePrefix string `json:"file_prefix"` // prefix of exported poster files

	// Fonts; empty or unreadable paths fall back to estimated metrics
	FontPath     string `json:"font_path"`
	BoldFontPath string `json:"bold_font_path"`

	// Colors as #RRGGBB
	AvailableColor string `json:"available_color"`
	SoldColor      string `json:"sold_color"`
	TextDarkColor  string `json:"text_dark_color"`
	TextLightColor string `json:"text_light_color"`

	// Canvas in pixels
	CanvasWidth  int `json:"canvas_width"`
	CanvasHeight int `json:"canvas_height"`

	// Sales
	TicketPrice float64 `json:"ticket_price"`
	Currency    string  `json:"currency"`

	// Base URL that share links point to
	ShareBaseURL string `json:"share_base_url"`

	// Active brand preset ID, empty when none
	PresetID string `json:"preset_id"`
}

// DefaultAppConfig returns an AppConfig populated with the house brand.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		BrandName:      "Rifas Blue",
		LogoPath:       "assets/logo_rifas_blue.png",
		FilePrefix:     "rifa_blue",
		FontPath:       "DejaVuSans.ttf",
		BoldFontPath:   "DejaVuSans-Bold.ttf",
		AvailableColor: "#6BB6E0", // parakeet blue
		SoldColor:      "#E63946", // red
		TextDarkColor:  "#000000",
		TextLightColor: "#FFFFFF",
		CanvasWidth:    1080,
		CanvasHeight:   1580,
		TicketPrice:    0,
		Currency:       "$",
		ShareBaseURL:   "http://localhost:8501/",
	}
}

// ApplyPreset copies the branding of a preset into the config.
func (c *AppConfig) ApplyPreset(p BrandPreset) {
	c.BrandName = p.BrandName
	c.LogoPath = p.LogoPath
	c.FilePrefix = p.FilePrefix
	c.AvailableColor = p.AvailableColor
	c.SoldColor = p.SoldColor
	c.TicketPrice = p.TicketPrice
	c.PresetID = p.ID
}

// DefaultTitle is the raffle name used when none was persisted.
func DefaultTitle(now time.Time) string {
	return "Raffle " + now.Format("2006-01-02")
}

// PosterTitle composes the poster headline from the raffle name and brand.
func PosterTitle(name, brand string) string {
	if brand == "" {
		return strings.TrimSpace("Number Board - " + name)
	}
	return strings.TrimSpace(fmt.Sprintf("Number Board - %s (%s)", name, brand))
}

// FileName returns the export file name for a poster created on the given day.
func FileName(prefix string, now time.Time, ext string) string {
	if prefix == "" {
		prefix = "rifa"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format("2006-01-02"), strings.TrimPrefix(ext, "."))
}

// ParseHexColor converts "#RRGGBB" or "RRGGBB" into an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
