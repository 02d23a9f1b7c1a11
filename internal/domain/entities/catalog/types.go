// Package catalog defines the store catalog entities loaded from product-info.json
package catalog

// Store holds the storefront metadata rendered into the assistant's context
type Store struct {
	Nome        string `json:"nome"`
	Descrizione string `json:"descrizione"`
	Settore     string `json:"settore"`
	Fondato     string `json:"fondato"`
	Slogan      string `json:"slogan"`
	Telefono    string `json:"telefono"`
	Email       string `json:"email"`
	Indirizzo   string `json:"indirizzo"`
	Spedizioni  string `json:"spedizioni"`
}

// Category describes one product category of the storefront
type Category struct {
	Nome        string `json:"nome"`
	Descrizione string `json:"descrizione"`
	Icona       string `json:"icona,omitempty"`
}

// Service describes one customer-facing service (consultation, free shipping, ...)
type Service struct {
	Nome        string `json:"nome"`
	Descrizione string `json:"descrizione"`
}

// Brand describes one carried brand and its specialty
type Brand struct {
	Nome       string `json:"nome"`
	Specialita string `json:"specialita,omitempty"`
}

// FlowType describes a guided flow as presented to the storefront UI
type FlowType struct {
	Nome        string `json:"nome"`
	Descrizione string `json:"descrizione"`
}

// Product is a single catalog entry, read-only for the assistant
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image,omitempty"`
}

// DemoOrder is the single hardcoded order record used to simulate tracking lookups
type DemoOrder struct {
	NumeroOrdine string `json:"numero_ordine"`
	Stato        string `json:"stato"`
	Tracking     string `json:"tracking"`
	LinkTracking string `json:"link_tracking"`
}

// ProductInfo is the full catalog document loaded once at startup
type ProductInfo struct {
	Store      Store               `json:"store"`
	Categorie  map[string]Category `json:"categorie"`
	Servizi    map[string]Service  `json:"servizi"`
	Brands     map[string]Brand    `json:"brands"`
	FlowTypes  map[string]FlowType `json:"flow_types"`
	OrdineDemo *DemoOrder          `json:"ordine_demo,omitempty"`
	Prodotti   []Product           `json:"prodotti"`
}
