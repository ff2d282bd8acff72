// Package export turns the guestbook into a GeoJSON FeatureCollection, one
// Point feature per message, for use in external mapping tools.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nfrund/guestmap/internal/domain"
	"github.com/spf13/afero"
)

// Geometry is a GeoJSON Point. Coordinates are [longitude, latitude].
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Feature pairs a message's point with its displayable properties.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// FeatureCollection is the GeoJSON document root.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Collection builds a FeatureCollection from the given messages, preserving
// their order.
func Collection(msgs []domain.Message) FeatureCollection {
	features := make([]Feature, 0, len(msgs))
	for _, m := range msgs {
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: [2]float64{m.Longitude, m.Latitude},
			},
			Properties: map[string]any{
				"id":      m.ID,
				"name":    m.Name,
				"message": m.Message,
				"date":    m.Date.UTC().Format(time.RFC3339),
			},
		})
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

// Write serializes the messages as GeoJSON to path on the given filesystem.
func Write(fs afero.Fs, path string, msgs []domain.Message) error {
	data, err := json.MarshalIndent(Collection(msgs), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write GeoJSON file: %w", err)
	}
	return nil
}
