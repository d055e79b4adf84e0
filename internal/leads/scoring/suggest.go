package scoring

import "strings"

// Suggest returns a human-readable next action for the sales team.
// Rules are evaluated in order; the first match wins. Advisory only.
func Suggest(in Input, score int) string {
	message := strings.ToLower(in.Message)

	switch {
	case score >= ThresholdUrgent:
		return "Ligar imediatamente. Lead muito quente com alta intenção de compra."
	case strings.Contains(message, "preço") || strings.Contains(message, "orçamento"):
		return "Focar no ROI e valor. Preparar proposta comercial."
	case strings.Contains(message, "demo") || strings.Contains(message, "demonstração"):
		return "Agendar demo personalizada. Lead quer ver o produto."
	case in.Source == SourceHeroForm:
		return "Lead captado no hero, interesse inicial. Oferecer análise gratuita."
	case in.Source == SourceExitPopup:
		return "Lead captado no exit popup. Aproveitar desconto de 20%."
	case strings.Contains(message, "urgente"):
		return "Situação urgente. Contactar por telefone primeiro."
	default:
		return "Enviar email personalizado com caso de estudo relevante."
	}
}
