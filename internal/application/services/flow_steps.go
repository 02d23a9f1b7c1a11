package services

import (
	"regexp"

	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/conversation"
)

// FlowStep is one question in a guided flow: the field it fills, the prompt,
// the validation rule, and the error shown on invalid input.
type FlowStep struct {
	Field      string
	Question   string
	Validation *regexp.Regexp
	Error      string
}

// flowSteps maps each flow type to its ordered step sequence. Flows are
// added by extending this table, not by new code branches.
var flowSteps = map[conversation.FlowType][]FlowStep{
	conversation.FlowProductConsultation: {
		{
			Field:      "level",
			Question:   "🎾 Perfetto! Per consigliarti al meglio, dimmi il tuo livello di gioco:<br><br>🟢 <strong>Principiante</strong> - Ho appena iniziato<br>🟡 <strong>Intermedio</strong> - Gioco da qualche anno<br>🟠 <strong>Avanzato</strong> - Gioco regolarmente<br>🔴 <strong>Professionale</strong> - Livello agonistico",
			Validation: regexp.MustCompile(`(?i)^(principiante|intermedio|avanzato|professionale|beginner|intermediate|advanced|professional|1|2|3|4)$`),
			Error:      "Per favore scegli tra: principiante, intermedio, avanzato, professionale",
		},
		{
			Field:      "budget",
			Question:   "💰 Ottimo! Qual è il tuo budget orientativo?<br><br>💚 <strong>Fino a €50</strong><br>💛 <strong>€50 - €100</strong><br>🧡 <strong>€100 - €200</strong><br>❤️ <strong>Oltre €200</strong>",
			Validation: regexp.MustCompile(`(?i)^(fino a €?50|sotto 50|meno di 50|under50|50[\s-]100|tra 50 e 100|50to100|100[\s-]200|tra 100 e 200|100to200|oltre €?200|sopra 200|più di 200|over200|tutti|100|200|da 100 a 200|oltre i 200)$`),
			Error:      "Per favore indica un range di budget valido",
		},
		{
			Field:      "category",
			Question:   "🛍️ Che tipo di prodotto stai cercando?<br><br>🎾 <strong>Racchette</strong><br>👕 <strong>Abbigliamento</strong><br>👟 <strong>Scarpe</strong><br>🎒 <strong>Accessori</strong>",
			Validation: regexp.MustCompile(`(?i)^(racchette?|abbigliamento|scarpe?|accessori|racket|clothing|shoes|accessories)$`),
			Error:      "Per favore scegli tra: racchette, abbigliamento, scarpe, accessori",
		},
	},
	conversation.FlowSizeGuide: {
		{
			Field:      "product_type",
			Question:   "📏 Per quale tipo di prodotto ti serve la guida taglie?<br><br>👕 <strong>Abbigliamento</strong> (maglie, pantaloni, giacche)<br>👟 <strong>Scarpe</strong> (da tennis)<br>🧢 <strong>Accessori</strong> (cappelli, polsini)",
			Validation: regexp.MustCompile(`(?i)^(abbigliamento|scarpe?|accessori|clothing|shoes|accessories)$`),
			Error:      "Per favore scegli tra: abbigliamento, scarpe, accessori",
		},
	},
	conversation.FlowOrderSupport: {
		{
			Field:      "support_type",
			Question:   "💬 Come posso aiutarti con il tuo ordine?<br><br>📦 <strong>Tracking spedizione</strong><br>↩️ <strong>Reso/Cambio</strong><br>💳 <strong>Pagamento</strong><br>❓ <strong>Domanda generale</strong>",
			Validation: regexp.MustCompile(`(?i)^(tracking|spedizione|reso|cambio|pagamento|generale|shipping|return|payment|general)$`),
			Error:      "Per favore scegli tra: tracking, reso, pagamento, generale",
		},
	},
}

// levelSynonyms normalizes flexible level input to its canonical value
var levelSynonyms = map[string]string{
	"principiante": "principiante", "beginner": "principiante", "1": "principiante",
	"intermedio": "intermedio", "intermediate": "intermedio", "2": "intermedio",
	"avanzato": "avanzato", "advanced": "avanzato", "3": "avanzato",
	"professionale": "professionale", "professional": "professionale", "4": "professionale",
}

// budgetSynonyms normalizes flexible budget phrases to canonical buckets
var budgetSynonyms = map[string]string{
	"fino a 50": "under50", "sotto 50": "under50", "meno di 50": "under50", "under50": "under50",
	"50 100": "50to100", "50-100": "50to100", "tra 50 e 100": "50to100", "50to100": "50to100", "50": "50to100",
	"100 200": "100to200", "100-200": "100to200", "tra 100 e 200": "100to200", "100to200": "100to200", "100": "100to200",
	"oltre 200": "over200", "sopra 200": "over200", "più di 200": "over200", "over200": "over200", "200": "over200",
	"da 100 a 200": "100to200", "oltre i 200": "over200", "tutti": "over200",
}

// intentKeywords maps each flow type to the message substrings that start it.
// Detection walks intentPriority in order; the first flow with a matching
// keyword wins.
var intentKeywords = map[conversation.FlowType][]string{
	conversation.FlowProductConsultation: {"consigli", "consiglio", "aiuto a scegliere", "che racchetta", "che scarpe", "consulenza"},
	conversation.FlowSizeGuide:           {"taglie", "taglia", "misura", "size"},
	conversation.FlowOrderSupport:        {"spedizione", "consegna", "reso", "ordine"},
}

var intentPriority = []conversation.FlowType{
	conversation.FlowProductConsultation,
	conversation.FlowSizeGuide,
	conversation.FlowOrderSupport,
}

// Steps returns the ordered step sequence for a flow type
func Steps(flowType conversation.FlowType) []FlowStep {
	return flowSteps[flowType]
}
