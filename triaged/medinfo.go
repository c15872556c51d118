package triaged

import (
	"fmt"
	"strings"
)

// Protocol holds the clinical guidance attached to an assessment category:
// the sources it was drawn from and the recommendation shown to the user.
type Protocol struct {
	Sources        []string
	Recommendation string
}

// protocols is the static medical-protocol table, keyed by assessment
// category. It stands in for the document store the production service
// queries.
var protocols = map[string]Protocol{
	"emergencias": {
		Sources:        []string{"Protocolo ACLS 2020", "Diretriz Nacional de Urgência e Emergência"},
		Recommendation: "Procure o pronto-socorro mais próximo imediatamente ou chame o SAMU (192).",
	},
	"cardiovascular": {
		Sources:        []string{"Diretriz Brasileira de Cardiologia", "Protocolo de Dor Torácica - SBC"},
		Recommendation: "Procure avaliação cardiológica com prioridade. Evite esforço físico até a consulta.",
	},
	"neurologico": {
		Sources:        []string{"Protocolo de Cefaleia - Academia Brasileira de Neurologia"},
		Recommendation: "Procure avaliação neurológica. Cefaleia súbita e intensa exige atendimento de urgência.",
	},
	"respiratorio": {
		Sources:        []string{"Diretriz GOLD", "Protocolo de Dispneia - SBPT"},
		Recommendation: "Procure avaliação pneumológica. Se a falta de ar piorar em repouso, vá ao pronto-socorro.",
	},
	"gastrointestinal": {
		Sources:        []string{"Protocolo de Abdome Agudo - CBC"},
		Recommendation: "Procure avaliação gastroenterológica. Mantenha hidratação e evite automedicação.",
	},
	"dermatologico": {
		Sources:        []string{"Atlas de Dermatologia - SBD"},
		Recommendation: "Agende consulta dermatológica. Fotografe a lesão para acompanhar a evolução.",
	},
	"infeccioso": {
		Sources:        []string{"Protocolo de Sepse - ILAS", "Manual de Doenças Infecciosas - MS"},
		Recommendation: "Procure avaliação médica. Monitore a temperatura e retorne se houver piora do estado geral.",
	},
	"gineco_obstetrico": {
		Sources:        []string{"Manual de Ginecologia e Obstetrícia - FEBRASGO"},
		Recommendation: "Procure avaliação ginecológica. Sangramento na gravidez exige atendimento de urgência.",
	},
	"geral": {
		Sources:        []string{"Caderno de Atenção Básica - Ministério da Saúde"},
		Recommendation: "Agende consulta com clínico geral para investigação dos sintomas.",
	},
	"indeterminado": {
		Sources:        []string{"Caderno de Atenção Básica - Ministério da Saúde"},
		Recommendation: "Os sintomas relatados não permitem uma triagem específica. Agende uma avaliação clínica.",
	},
}

// lookupProtocol returns the protocol for a category, falling back to the
// indeterminate entry.
func lookupProtocol(category string) Protocol {
	if p, ok := protocols[category]; ok {
		return p
	}
	return protocols["indeterminado"]
}

// explain builds the plain-language explanation for an assessment. The
// production service delegates this to an LLM; the development server uses a
// fixed template over the same inputs.
func explain(a Assessment, symptoms string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Com base nos sintomas relatados (%s), a triagem indica um quadro da categoria %s", strings.TrimSpace(symptoms), a.Category)
	if len(a.Diagnoses) > 0 {
		fmt.Fprintf(&b, ", com hipóteses de: %s", strings.Join(a.Diagnoses, "; "))
	}
	b.WriteString(".\n")
	fmt.Fprintf(&b, "Urgência estimada: %s. Encaminhamento sugerido: %s.\n", a.Urgency, a.Referral)
	b.WriteString("Esta avaliação é orientativa e não substitui uma consulta médica.")
	return b.String()
}
