package domain

import "strings"

// AnomalyCheck is the result of classifying a shipment's status and
// event history.
type AnomalyCheck struct {
	// HasAbnormal reports whether the shipment needs human attention.
	HasAbnormal bool `json:"has_abnormal"`
	// Reason is the user-facing explanation; empty when HasAbnormal is false.
	Reason string `json:"reason,omitempty"`
}

// abnormalStatusReasons maps alert-worthy aggregator statuses to their
// user-facing reasons. Membership in this map is what makes a status
// abnormal.
var abnormalStatusReasons = map[TrackingStatus]string{
	StatusException:          "⚠️ Exceção no rastreamento",
	StatusAvailableForPickup: "📦 Aguardando retirada no ponto",
	StatusExpired:            "⏰ Rastreamento expirado",
}

// keywordCategory groups event-description trigger keywords under one
// user-facing reason. Categories are scanned in declaration order, so
// the table must stay ordered.
type keywordCategory struct {
	keywords []string
	reason   string
}

// Keywords cover the carriers' Portuguese event texts plus the English
// strings some cross-border carriers emit. The list is a tuning
// parameter: expanding it changes which orders get flagged.
var keywordCategories = []keywordCategory{
	{
		keywords: []string{
			"alfândega", "customs", "aduana", "desembaraço", "tributação",
			"taxa", "imposto", "documento", "documentação", "rfb",
			"receita federal",
		},
		reason: "🛃 Problema na alfândega/tributação",
	},
	{
		keywords: []string{"falha", "tentativa", "ausente", "não entregue"},
		reason:   "❌ Falha na tentativa de entrega",
	},
	{
		keywords: []string{"endereço incorreto", "endereço insuficiente"},
		reason:   "📍 Problema com endereço",
	},
	{
		keywords: []string{"recusado", "devolvido", "retorno"},
		reason:   "↩️ Pedido recusado/devolvido",
	},
	{
		keywords: []string{
			"aguardando retirada", "disponível para retirada",
			"ponto de coleta", "locker",
		},
		reason: "📦 Aguardando retirada pelo cliente",
	},
	{
		keywords: []string{"extraviado", "perdido"},
		reason:   "🚨 Possível extravio",
	},
	{
		keywords: []string{"danificado", "avariado"},
		reason:   "💥 Pacote possivelmente danificado",
	},
}

// problemKeywords is the flat scan list, built from the category table
// so the two can never drift apart.
var problemKeywords = func() []string {
	var all []string
	for _, category := range keywordCategories {
		all = append(all, category.keywords...)
	}
	return all
}()

// CheckAbnormal decides whether a tracking status or its event history
// signals a delivery problem. Status membership is checked first and
// dominates; otherwise events are scanned in the order supplied and
// the first keyword hit produces the reason.
func CheckAbnormal(status TrackingStatus, events []TrackingEvent) AnomalyCheck {
	if reason, ok := abnormalStatusReasons[status]; ok {
		return AnomalyCheck{HasAbnormal: true, Reason: reason}
	}

	for _, event := range events {
		description := strings.ToLower(event.Description)
		for _, keyword := range problemKeywords {
			if strings.Contains(description, keyword) {
				return AnomalyCheck{
					HasAbnormal: true,
					Reason:      keywordReason(keyword, event.Description),
				}
			}
		}
	}

	return AnomalyCheck{}
}

// keywordReason resolves a matched keyword to its category reason. A
// keyword outside every category falls back to an excerpt of the
// offending description; that cannot happen while problemKeywords is
// derived from the table, but the reason must never come out empty.
func keywordReason(keyword, description string) string {
	for _, category := range keywordCategories {
		for _, k := range category.keywords {
			if k == keyword {
				return category.reason
			}
		}
	}

	runes := []rune(description)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	return "⚠️ Atenção: " + string(runes) + "..."
}
