package model

import (
	"time"

	"github.com/google/uuid"
)

// BrandPreset is a reusable poster branding: name, logo, colors and price.
type BrandPreset struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	BrandName      string  `json:"brand_name"`
	LogoPath       string  `json:"logo_path"`
	FilePrefix     string  `json:"file_prefix"`
	AvailableColor string  `json:"available_color"`
	SoldColor      string  `json:"sold_color"`
	TicketPrice    float64 `json:"ticket_price"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// NewBrandPreset captures the branding of cfg under a new preset name.
func NewBrandPreset(name string, cfg AppConfig) BrandPreset {
	now := time.Now().UTC().Format(time.RFC3339)
	return BrandPreset{
		ID:             uuid.New().String()[:8],
		Name:           name,
		BrandName:      cfg.BrandName,
		LogoPath:       cfg.LogoPath,
		FilePrefix:     cfg.FilePrefix,
		AvailableColor: cfg.AvailableColor,
		SoldColor:      cfg.SoldColor,
		TicketPrice:    cfg.TicketPrice,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// PresetStore holds a collection of brand presets.
type PresetStore struct {
	Presets []BrandPreset `json:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []BrandPreset{},
	}
}

// Add adds a preset to the store, replacing one with the same name.
func (ps *PresetStore) Add(p BrandPreset) {
	for i := range ps.Presets {
		if ps.Presets[i].Name == p.Name {
			p.ID = ps.Presets[i].ID
			p.CreatedAt = ps.Presets[i].CreatedAt
			ps.Presets[i] = p
			return
		}
	}
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *BrandPreset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *BrandPreset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns the preset names in store order.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}
