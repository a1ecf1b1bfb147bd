package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogapp "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/application"
	catalogdomain "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/domain"
)

func TestCatalogDocumentRoundTrip(t *testing.T) {
	seed := catalogdomain.SeedCatalog()
	doc := buildCatalogDocument(seed, time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, catalogStateKey, doc.ID)
	require.Len(t, doc.Stores, 2)
	assert.Equal(t, 172, doc.Stores[0].Prices["regular"])

	restored, err := mapCatalogDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, seed, restored)
}

func TestMapCatalogDocumentRejectsUnknownFuel(t *testing.T) {
	doc := buildCatalogDocument(catalogdomain.SeedCatalog(), time.Now())
	doc.Stores[0].Prices["kerosene"] = 120

	_, err := mapCatalogDocument(doc)
	assert.ErrorIs(t, err, catalogapp.ErrMalformedState)
}

func TestMapCatalogDocumentRejectsInvalidShape(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*catalogStateDocument)
	}{
		{"ID欠落", func(doc *catalogStateDocument) { doc.Stores[0].ID = "" }},
		{"ID重複", func(doc *catalogStateDocument) { doc.Stores[1].ID = doc.Stores[0].ID }},
		{"油種キー欠落", func(doc *catalogStateDocument) { delete(doc.Stores[0].Prices, "diesel") }},
		{"負の金額", func(doc *catalogStateDocument) { doc.Stores[0].Discounts["regular"] = -7 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := buildCatalogDocument(catalogdomain.SeedCatalog(), time.Now())
			tt.mutate(&doc)

			_, err := mapCatalogDocument(doc)
			assert.ErrorIs(t, err, catalogapp.ErrMalformedState)
		})
	}
}
