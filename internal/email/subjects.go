package email

import "fmt"

const (
	subjectLeadAlertFmt    = "Lead %s: %s"
	subjectConfirmation    = "Recebemos o seu pedido"
	subjectDailyReportFmt  = "Resumo diário de leads — %s"
	subjectNurturingFallbk = "Temos novidades para si"
)

// nurturingSubjects maps touchpoint template keys to email subjects.
var nurturingSubjects = map[string]string{
	"welcome_urgent":       "Vamos falar hoje?",
	"case_study_relevant":  "Como empresas como a sua pouparam tempo",
	"demo_invitation":      "Convite: demonstração personalizada",
	"welcome_hot":          "Bem-vindo! O próximo passo é simples",
	"value_proposition":    "O que a automação pode fazer pelo seu negócio",
	"social_proof":         "Resultados reais de clientes reais",
	"special_offer":        "Uma proposta especial para si",
	"welcome_warm":         "Obrigado pelo seu interesse",
	"educational_content":  "Guia: por onde começar com automação",
	"case_study":           "Caso de estudo: menos 20 horas de trabalho manual",
	"webinar_invitation":   "Convite para o nosso próximo webinar",
	"final_offer":          "Última oportunidade: condições especiais",
	"welcome_cold":         "Prazer em conhecê-lo",
	"industry_insights":    "Tendências de automação no seu setor",
	"educational_series":   "Série educativa: automação passo a passo",
	"reengagement":         "Ainda faz sentido falarmos?",
}

func nurturingSubject(templateKey string) string {
	if subject, ok := nurturingSubjects[templateKey]; ok {
		return subject
	}
	return subjectNurturingFallbk
}

func leadAlertSubject(priority, name string) string {
	return fmt.Sprintf(subjectLeadAlertFmt, priority, name)
}
