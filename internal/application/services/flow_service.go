package services

import (
	"fmt"
	"strings"

	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/catalog"
	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/conversation"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/logging"
)

// FlowResult is the outcome of feeding one message into a guided flow
type FlowResult struct {
	Response        string
	Invalid         bool
	Continue        bool
	Progress        string
	Completed       bool
	CompletedFlow   conversation.FlowType
	Recommendations string
	Products        []catalog.Product
}

// FlowService drives the guided conversation flows: starting them from
// detected intent, validating and storing answers step by step, and
// generating the completion response when the last step is answered.
type FlowService struct {
	recommendations *RecommendationService
	logger          *logging.ChanneledLogger
}

func NewFlowService(recommendations *RecommendationService, logger *logging.ChanneledLogger) *FlowService {
	return &FlowService{
		recommendations: recommendations,
		logger:          logger,
	}
}

// DetectIntent scans a message for flow trigger keywords and returns the
// matching flow type. Consultation keywords win over size guide keywords,
// which win over order support keywords.
func (s *FlowService) DetectIntent(message string) (conversation.FlowType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(message))
	for _, flowType := range intentPriority {
		for _, keyword := range intentKeywords[flowType] {
			if strings.Contains(normalized, keyword) {
				return flowType, true
			}
		}
	}
	return "", false
}

// StartFlow activates a flow on the session and returns the first question.
// The caller must hold the session lock.
func (s *FlowService) StartFlow(session *conversation.Session, flowType conversation.FlowType) FlowResult {
	steps := flowSteps[flowType]
	if len(steps) == 0 {
		return FlowResult{}
	}

	session.Flow = &conversation.FlowState{
		Type: flowType,
		Step: 0,
		Data: make(map[string]string),
	}

	s.logger.Flow().Info("Flow started", "flowType", string(flowType), "steps", len(steps))

	return FlowResult{
		Response: steps[0].Question,
		Continue: true,
		Progress: fmt.Sprintf("1/%d", len(steps)),
	}
}

// ProcessStep validates the message against the current step. Invalid input
// re-asks the same question without touching flow state; valid input is
// stored and either advances to the next question or finalizes the flow.
// The caller must hold the session lock.
func (s *FlowService) ProcessStep(session *conversation.Session, message string) FlowResult {
	flow := session.Flow
	steps := flowSteps[flow.Type]
	step := steps[flow.Step]

	// synonyms are resolved before validation so that shorthand answers
	// ("50", "esperto") pass the same pattern their canonical form does
	canonical := canonicalizeAnswer(step.Field, normalizeAnswer(message))
	if !step.Validation.MatchString(canonical) {
		s.logger.Flow().Debug("Invalid flow input",
			"flowType", string(flow.Type), "step", flow.Step, "field", step.Field)
		return FlowResult{
			Response: "❌ " + step.Error + "<br><br>" + step.Question,
			Invalid:  true,
			Continue: true,
			Progress: fmt.Sprintf("%d/%d", flow.Step+1, len(steps)),
		}
	}

	flow.Data[step.Field] = canonical
	flow.Step++

	// level and budget answers are useful beyond the flow, mirror them
	// immediately so an abandoned flow still informs the AI prompt
	switch step.Field {
	case "level":
		session.UserPreferences.Level = canonical
	case "budget":
		session.UserPreferences.Budget = canonical
	}

	if flow.Step < len(steps) {
		return FlowResult{
			Response: steps[flow.Step].Question,
			Continue: true,
			Progress: fmt.Sprintf("%d/%d", flow.Step+1, len(steps)),
		}
	}

	return s.finalize(session)
}

// finalize clears the flow from the session, counts it against the flow
// limit and builds the completion response for the collected answers.
func (s *FlowService) finalize(session *conversation.Session) FlowResult {
	flow := session.Flow
	data := flow.Data
	flowType := flow.Type

	session.Flow = nil
	session.FlowCount++

	s.logger.Flow().Info("Flow completed",
		"flowType", string(flowType), "flowCount", session.FlowCount)

	result := FlowResult{
		Completed:     true,
		CompletedFlow: flowType,
	}

	switch flowType {
	case conversation.FlowProductConsultation:
		products := s.recommendations.FilterByPreferences(data["level"], data["budget"], data["category"])
		result.Response = s.consultationResponse(data, products)
		result.Recommendations = result.Response
		result.Products = products
	case conversation.FlowSizeGuide:
		result.Response = sizeGuideResponse(data["product_type"])
	case conversation.FlowOrderSupport:
		result.Response = orderSupportResponse(data["support_type"])
	}

	return result
}

// normalizeAnswer prepares a flow answer for validation: trimmed, lowercased,
// currency sign dropped.
func normalizeAnswer(message string) string {
	normalized := strings.ToLower(strings.TrimSpace(message))
	normalized = strings.ReplaceAll(normalized, "€", "")
	return strings.Join(strings.Fields(normalized), " ")
}

// canonicalizeAnswer maps a validated answer to its canonical stored value
func canonicalizeAnswer(field, normalized string) string {
	switch field {
	case "level":
		if canonical, ok := levelSynonyms[normalized]; ok {
			return canonical
		}
	case "budget":
		if canonical, ok := budgetSynonyms[normalized]; ok {
			return canonical
		}
	case "category", "product_type":
		return canonicalCategory(normalized)
	case "support_type":
		return canonicalSupportType(normalized)
	}
	return normalized
}

func canonicalCategory(value string) string {
	switch value {
	case "racchetta", "racchette", "racket":
		return "racchette"
	case "abbigliamento", "clothing":
		return "abbigliamento"
	case "scarpa", "scarpe", "shoes":
		return "scarpe"
	case "accessori", "accessories":
		return "accessori"
	}
	return value
}

func canonicalSupportType(value string) string {
	switch value {
	case "tracking", "spedizione", "shipping":
		return "tracking"
	case "reso", "cambio", "return":
		return "reso"
	case "pagamento", "payment":
		return "pagamento"
	case "generale", "general":
		return "generale"
	}
	return value
}

// consultationResponse builds the final consultation message: a canned
// opener matched to the collected level and category plus the concrete
// product picks from the catalog.
func (s *FlowService) consultationResponse(data map[string]string, products []catalog.Product) string {
	level := data["level"]
	category := data["category"]

	var b strings.Builder
	b.WriteString("🎯 <strong>Ecco i miei consigli per te!</strong><br><br>")

	switch {
	case category == "racchette" && level == "principiante":
		b.WriteString("Per un principiante consiglio racchette leggere e maneggevoli, con un piatto corde generoso che perdona i colpi decentrati.<br><br>")
	case category == "racchette" && level == "professionale":
		b.WriteString("A livello agonistico servono racchette da controllo, con telai più rigidi e piatti corde ridotti per la massima precisione.<br><br>")
	case category == "racchette":
		b.WriteString("Per il tuo livello consiglio racchette bilanciate tra potenza e controllo.<br><br>")
	case category == "scarpe":
		b.WriteString("Per le scarpe da tennis conta soprattutto la superficie di gioco: suola clay per la terra rossa, all court per il cemento.<br><br>")
	case category == "abbigliamento":
		b.WriteString("Per l'abbigliamento tecnico punta su tessuti traspiranti che tengono asciutti anche nei match più lunghi.<br><br>")
	default:
		b.WriteString("Ecco gli accessori più utili per completare la tua attrezzatura.<br><br>")
	}

	if len(products) > 0 {
		b.WriteString("🛍️ <strong>Prodotti selezionati per te:</strong><br>")
		for _, p := range products {
			b.WriteString(fmt.Sprintf("• <strong>%s</strong> - €%.2f<br>%s<br><br>", p.Name, p.Price, p.Description))
		}
	} else {
		b.WriteString("Al momento non ho prodotti in catalogo che rispettano esattamente i tuoi criteri, ma passa in negozio: il nostro staff saprà consigliarti!<br><br>")
	}

	b.WriteString("Vuoi altri consigli o informazioni su uno di questi prodotti? 😊")
	return b.String()
}

func sizeGuideResponse(productType string) string {
	switch productType {
	case "scarpe":
		return "👟 <strong>Guida Taglie Scarpe da Tennis</strong><br><br>" +
			"EU 40 = US 7 = 25.0cm<br>" +
			"EU 41 = US 8 = 25.5cm<br>" +
			"EU 42 = US 8.5 = 26.0cm<br>" +
			"EU 43 = US 9.5 = 27.0cm<br>" +
			"EU 44 = US 10 = 27.5cm<br>" +
			"EU 45 = US 11 = 28.5cm<br><br>" +
			"💡 <strong>Consiglio:</strong> per il tennis scegli mezza taglia in più rispetto alle scarpe casual, il piede deve poter lavorare negli scatti.<br><br>" +
			"Posso aiutarti con altro? 😊"
	case "abbigliamento":
		return "👕 <strong>Guida Taglie Abbigliamento</strong><br><br>" +
			"<strong>S:</strong> torace 88-96cm, vita 76-84cm<br>" +
			"<strong>M:</strong> torace 96-104cm, vita 84-92cm<br>" +
			"<strong>L:</strong> torace 104-112cm, vita 92-100cm<br>" +
			"<strong>XL:</strong> torace 112-120cm, vita 100-108cm<br><br>" +
			"💡 <strong>Consiglio:</strong> l'abbigliamento tecnico da tennis veste aderente, se sei tra due taglie scegli la più grande.<br><br>" +
			"Posso aiutarti con altro? 😊"
	default:
		return "🧢 <strong>Guida Taglie Accessori</strong><br><br>" +
			"<strong>Cappelli:</strong> S/M 55-58cm, L/XL 58-61cm di circonferenza<br>" +
			"<strong>Polsini e fasce:</strong> taglia unica elasticizzata<br>" +
			"<strong>Grip racchetta:</strong> misura da 1 (più sottile) a 5 (più spesso)<br><br>" +
			"Posso aiutarti con altro? 😊"
	}
}

func orderSupportResponse(supportType string) string {
	switch supportType {
	case "tracking":
		return "📦 <strong>Tracking Spedizione</strong><br><br>" +
			"Per controllare la tua spedizione mi serve il numero d'ordine. Lo trovi nella mail di conferma, ha il formato <strong>TS</strong> seguito da almeno 6 cifre (es. TS123456).<br><br>" +
			"Scrivimi il tuo numero d'ordine e lo verifico subito! 🔍"
	case "reso":
		return "↩️ <strong>Resi e Cambi</strong><br><br>" +
			"Hai <strong>30 giorni</strong> dalla consegna per resi e cambi. Il prodotto deve essere intatto e nella confezione originale.<br><br>" +
			"1️⃣ Compila il modulo reso nella tua area ordini<br>" +
			"2️⃣ Stampa l'etichetta prepagata<br>" +
			"3️⃣ Consegna il pacco in un punto di ritiro<br><br>" +
			"Il rimborso arriva entro 14 giorni dal ricevimento del reso. Posso aiutarti con altro? 😊"
	case "pagamento":
		return "💳 <strong>Pagamenti</strong><br><br>" +
			"Accettiamo carte di credito/debito, PayPal, bonifico e pagamento alla consegna (+€4.90).<br><br>" +
			"Se un pagamento risulta non andato a buon fine, l'ordine resta in attesa per 48 ore prima dell'annullamento automatico.<br><br>" +
			"Hai bisogno di altro? 😊"
	default:
		return "❓ <strong>Supporto Ordini</strong><br><br>" +
			"Sono qui per aiutarti! Se hai il numero d'ordine (formato TS + 6 cifre) scrivimelo e controllo subito lo stato.<br><br>" +
			"Per tutto il resto puoi anche contattarci:<br>" +
			"📞 +39 02 1234567<br>" +
			"📧 info@tennisshoppro.it<br><br>" +
			"Come posso aiutarti? 😊"
	}
}
