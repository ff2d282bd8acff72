package export_test

import (
	"encoding/json"
	"testing"

	"github.com/nfrund/guestmap/internal/domain"
	"github.com/nfrund/guestmap/internal/export"
	"github.com/nfrund/guestmap/internal/testutils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection(t *testing.T) {
	msgs := []domain.Message{
		testutils.NewTestMessage(45.5, -73.6),
		testutils.NewTestMessage(51.5, -0.1),
	}

	fc := export.Collection(msgs)

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)

	first := fc.Features[0]
	assert.Equal(t, "Feature", first.Type)
	assert.Equal(t, "Point", first.Geometry.Type)
	// GeoJSON wants [lng, lat].
	assert.InDelta(t, -73.6, first.Geometry.Coordinates[0], 0.0001)
	assert.InDelta(t, 45.5, first.Geometry.Coordinates[1], 0.0001)
	assert.Equal(t, "CJ", first.Properties["name"])
	assert.Equal(t, "coolest app ever", first.Properties["message"])
}

func TestCollection_Empty(t *testing.T) {
	fc := export.Collection(nil)
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Empty(t, fc.Features)
}

func TestWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	msgs := []domain.Message{testutils.NewTestMessage(10.1234, 20.5678)}

	err := export.Write(fs, "guestbook.geojson", msgs)
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "guestbook.geojson")
	require.NoError(t, err)

	var fc export.FeatureCollection
	require.NoError(t, json.Unmarshal(data, &fc))
	require.Len(t, fc.Features, 1)
	assert.InDelta(t, 20.5678, fc.Features[0].Geometry.Coordinates[0], 0.0001)
}
