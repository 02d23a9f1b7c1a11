package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/catalog"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/logging"
)

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	config := logging.DefaultLoggerConfig()
	config.OutputToConsole = false
	logger, err := logging.NewChanneledLogger(config)
	require.NoError(t, err)
	return logger
}

func testLimits() Limits {
	return Limits{
		MaxTokensPerSession: 8000,
		MaxChatsPerSession:  3,
		MaxFlowsPerSession:  5,
		MaxCostPerChat:      0.05,
		InputTokenCost:      0.00015,
		OutputTokenCost:     0.0006,
	}
}

func testCatalog() *catalog.ProductInfo {
	return &catalog.ProductInfo{
		Store: catalog.Store{
			Nome:      "TennisShop Pro",
			Telefono:  "+39 02 1234567",
			Email:     "info@tennisshoppro.it",
			Indirizzo: "Via dei Campi 12, Milano",
		},
		Categorie: map[string]catalog.Category{
			"racchette": {Nome: "Racchette", Descrizione: "Racchette da tennis"},
			"scarpe":    {Nome: "Scarpe", Descrizione: "Scarpe da tennis"},
		},
		Servizi: map[string]catalog.Service{
			"incordatura": {Nome: "Incordatura", Descrizione: "Incordatura in giornata"},
		},
		Brands: map[string]catalog.Brand{
			"wilson": {Nome: "Wilson"},
		},
		OrdineDemo: &catalog.DemoOrder{
			NumeroOrdine: "TS123456",
			Stato:        "Spedito",
			Tracking:     "BRT-7712938456",
			LinkTracking: "https://www.brt.it/tracking?id=BRT-7712938456",
		},
		Prodotti: []catalog.Product{
			{ID: "rkt-001", Name: "Wilson Starter 25", Price: 49.9, Category: "racchette"},
			{ID: "rkt-002", Name: "Babolat Drive Evo", Price: 129.0, Category: "racchette"},
			{ID: "rkt-003", Name: "Wilson Blade Pro 98", Price: 249.0, Category: "racchette"},
			{ID: "sho-001", Name: "Asics Gel Dedicate 8", Price: 79.9, Category: "scarpe"},
			{ID: "sho-002", Name: "Asics Gel Resolution 9 Clay", Price: 159.0, Category: "scarpe"},
			{ID: "sho-003", Name: "Asics Court FF 3 Pro", Price: 209.0, Category: "scarpe"},
			{ID: "acc-001", Name: "Overgrip Comfort x3", Price: 8.9, Category: "accessori"},
		},
	}
}

func fixedTime() time.Time {
	return time.Date(2025, time.March, 14, 15, 30, 0, 0, time.UTC)
}
