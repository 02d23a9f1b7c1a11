package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/catalog"
	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/conversation"
)

var italianWeekdays = [...]string{
	"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato",
}

var italianMonths = [...]string{
	"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
	"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
}

const promptContextProducts = 5

// PromptService builds the system prompt for AI fallback responses from the
// catalog, the current store time and the session state.
type PromptService struct {
	productInfo *catalog.ProductInfo
	location    *time.Location
	now         func() time.Time
}

func NewPromptService(productInfo *catalog.ProductInfo) *PromptService {
	// store operates on Italian local time
	location, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		location = time.UTC
	}
	return &PromptService{
		productInfo: productInfo,
		location:    location,
		now:         time.Now,
	}
}

// BuildSystemPrompt assembles the assistant persona, store context, a catalog
// excerpt and the session's collected preferences into one prompt. A non-empty
// contextProducts slice, supplied by the storefront widget with the request,
// replaces the server-side catalog excerpt.
func (s *PromptService) BuildSystemPrompt(session *conversation.Session, contextProducts []catalog.Product) string {
	store := s.productInfo.Store
	now := s.now().In(s.location)

	dateLine := fmt.Sprintf("%s %d %s %d, ore %02d:%02d",
		italianWeekdays[now.Weekday()], now.Day(), italianMonths[now.Month()-1], now.Year(),
		now.Hour(), now.Minute())

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Sei l'assistente virtuale di %s, un negozio italiano specializzato in articoli da tennis.\n", store.Nome))
	if store.Descrizione != "" {
		b.WriteString(store.Descrizione + "\n")
	}
	b.WriteString(fmt.Sprintf("Data e ora attuali in Italia: %s.\n\n", dateLine))

	b.WriteString("INFORMAZIONI NEGOZIO:\n")
	if store.Indirizzo != "" {
		b.WriteString(fmt.Sprintf("- Indirizzo: %s\n", store.Indirizzo))
	}
	if store.Telefono != "" {
		b.WriteString(fmt.Sprintf("- Telefono: %s\n", store.Telefono))
	}
	if store.Email != "" {
		b.WriteString(fmt.Sprintf("- Email: %s\n", store.Email))
	}
	if store.Spedizioni != "" {
		b.WriteString(fmt.Sprintf("- Spedizioni: %s\n", store.Spedizioni))
	}

	if len(s.productInfo.Categorie) > 0 {
		names := make([]string, 0, len(s.productInfo.Categorie))
		for _, key := range sortedKeys(s.productInfo.Categorie) {
			names = append(names, s.productInfo.Categorie[key].Nome)
		}
		b.WriteString(fmt.Sprintf("\nCATEGORIE: %s\n", strings.Join(names, ", ")))
	}

	if len(s.productInfo.Servizi) > 0 {
		b.WriteString("\nSERVIZI:\n")
		for _, key := range sortedKeys(s.productInfo.Servizi) {
			svc := s.productInfo.Servizi[key]
			b.WriteString(fmt.Sprintf("- %s: %s\n", svc.Nome, svc.Descrizione))
		}
	}

	if len(s.productInfo.Brands) > 0 {
		names := make([]string, 0, len(s.productInfo.Brands))
		for _, key := range sortedKeys(s.productInfo.Brands) {
			names = append(names, s.productInfo.Brands[key].Nome)
		}
		b.WriteString(fmt.Sprintf("\nMARCHI TRATTATI: %s\n", strings.Join(names, ", ")))
	}

	excerpt := s.productInfo.Prodotti
	if len(contextProducts) > 0 {
		excerpt = contextProducts
	}
	if len(excerpt) > 0 {
		b.WriteString("\nALCUNI PRODOTTI A CATALOGO:\n")
		for i, p := range excerpt {
			if i == promptContextProducts {
				break
			}
			b.WriteString(fmt.Sprintf("- %s (%s): €%.2f - %s\n", p.Name, p.Category, p.Price, p.Description))
		}
	}

	prefs := session.UserPreferences
	if prefs.Level != "" || prefs.Budget != "" {
		b.WriteString("\nPREFERENZE DEL CLIENTE:\n")
		if prefs.Level != "" {
			b.WriteString(fmt.Sprintf("- Livello di gioco: %s\n", prefs.Level))
		}
		if prefs.Budget != "" {
			b.WriteString(fmt.Sprintf("- Budget: %s\n", prefs.Budget))
		}
	}

	if session.FlowActive() {
		b.WriteString(fmt.Sprintf("\nNOTA: il cliente sta completando il percorso guidato \"%s\", riportalo gentilmente al percorso se divaga.\n", session.CurrentFlowName()))
	}

	b.WriteString("\nREGOLE:\n")
	b.WriteString("- Rispondi sempre in italiano, con tono cordiale e professionale.\n")
	b.WriteString("- Parla solo di tennis, dei nostri prodotti e dei nostri servizi.\n")
	b.WriteString("- Se non conosci una risposta, invita a contattare il negozio.\n")
	b.WriteString("- Risposte brevi e utili, formattate con <br> per gli a capo.\n")

	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
