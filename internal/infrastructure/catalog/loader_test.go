package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "product-info.json")
	doc := `{
		"store": {"nome": "TennisShop Pro", "email": "info@tennisshoppro.it"},
		"categorie": {"racchette": {"nome": "Racchette", "descrizione": "Racchette da tennis"}},
		"ordine_demo": {"numero_ordine": "TS123456", "stato": "Spedito"},
		"prodotti": [{"id": "p1", "name": "Test Racket", "price": 99.9, "category": "racchette"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	info := Load(path, nil)

	assert.Equal(t, "TennisShop Pro", info.Store.Nome)
	require.Len(t, info.Prodotti, 1)
	assert.Equal(t, "Test Racket", info.Prodotti[0].Name)
	assert.InDelta(t, 99.9, info.Prodotti[0].Price, 1e-9)
	require.NotNil(t, info.OrdineDemo)
	assert.Equal(t, "TS123456", info.OrdineDemo.NumeroOrdine)
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	info := Load(filepath.Join(t.TempDir(), "nope.json"), nil)

	require.NotNil(t, info)
	assert.Equal(t, "TennisShop Pro", info.Store.Nome)
	assert.NotEmpty(t, info.Categorie)
	assert.NotEmpty(t, info.FlowTypes)
}

func TestLoadMalformedFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	info := Load(path, nil)

	require.NotNil(t, info)
	assert.Equal(t, "TennisShop Pro", info.Store.Nome)
}
