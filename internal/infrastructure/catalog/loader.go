// Package catalog loads the store catalog document at startup. The loaded
// document is treated as immutable read-only state for the process lifetime.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/catalog"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/logging"
)

// Load reads the product-info document from path. A missing or unreadable
// file degrades to the hardcoded minimal fallback instead of failing startup.
func Load(path string, logger *logging.ChanneledLogger) *catalog.ProductInfo {
	info, err := loadFromFile(path)
	if err != nil {
		if logger != nil {
			logger.Catalog().Warn("Product info unavailable, using minimal fallback", "path", path, "error", err.Error())
		}
		return MinimalFallback()
	}

	if logger != nil {
		logger.Catalog().Info("Product info loaded", "path", path, "products", len(info.Prodotti), "categories", len(info.Categorie), "demoOrder", info.OrdineDemo != nil)
	}
	return info
}

func loadFromFile(path string) (*catalog.ProductInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read product info file: %w", err)
	}

	var info catalog.ProductInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse product info file: %w", err)
	}

	return &info, nil
}

// MinimalFallback returns the hardcoded catalog used when product-info.json
// is absent or unreadable
func MinimalFallback() *catalog.ProductInfo {
	return &catalog.ProductInfo{
		Store: catalog.Store{
			Nome:        "TennisShop Pro",
			Descrizione: "Il tuo negozio specializzato per tennis e racchettismo",
			Settore:     "Abbigliamento e Attrezzatura Sportiva - Tennis",
			Fondato:     "2019",
			Slogan:      "Performance. Passione. Professionalità.",
			Telefono:    "+39 02 1234 5678",
			Email:       "info@tennisshoppro.it",
			Indirizzo:   "Via del Tennis 10, Milano (MI)",
			Spedizioni:  "Spedizione gratuita per ordini sopra €50",
		},
		Categorie: map[string]catalog.Category{
			"racchette": {
				Nome:        "Racchette da Tennis",
				Descrizione: "Racchette professionali per ogni livello",
				Icona:       "fas fa-table-tennis",
			},
			"abbigliamento": {
				Nome:        "Abbigliamento Tennis",
				Descrizione: "Vestiario tecnico e alla moda",
				Icona:       "fas fa-tshirt",
			},
			"scarpe": {
				Nome:        "Scarpe da Tennis",
				Descrizione: "Calzature per ogni superficie",
				Icona:       "fas fa-shoe-prints",
			},
			"accessori": {
				Nome:        "Accessori Tennis",
				Descrizione: "Grip, palline, borse e altro",
				Icona:       "fas fa-briefcase",
			},
		},
		Servizi: map[string]catalog.Service{
			"consulenza_prodotti": {
				Nome:        "Consulenza Prodotti",
				Descrizione: "Ti aiutiamo a scegliere l'attrezzatura perfetta",
			},
			"spedizione_gratuita": {
				Nome:        "Spedizione Gratuita",
				Descrizione: "Spedizione gratuita per ordini superiori a €50",
			},
		},
		Brands: map[string]catalog.Brand{
			"wilson":  {Nome: "Wilson", Specialita: "Racchette professionali"},
			"babolat": {Nome: "Babolat", Specialita: "Corde e racchette"},
			"nike":    {Nome: "Nike", Specialita: "Abbigliamento e calzature"},
		},
		FlowTypes: map[string]catalog.FlowType{
			"product_consultation": {
				Nome:        "Consulenza Prodotto",
				Descrizione: "Ti aiutiamo a trovare il prodotto perfetto",
			},
			"size_guide": {
				Nome:        "Guida Taglie",
				Descrizione: "Assistenza per la scelta della taglia",
			},
			"order_support": {
				Nome:        "Supporto Ordine",
				Descrizione: "Aiuto per ordini e spedizioni",
			},
		},
	}
}
