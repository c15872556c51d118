package triaged

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Assessment is the outcome of one decision-tree evaluation.
type Assessment struct {
	Category  string
	Diagnoses []string
	Urgency   string
	Referral  string
	Alerts    []string
}

type evaluator func(symptoms, history string, age int) *Assessment

// DecisionTree is a keyword-driven symptom classifier. Evaluators run in a
// fixed order from most to least urgent; the first match wins.
type DecisionTree struct {
	evaluators []evaluator
}

// NewDecisionTree creates the standard evaluator chain.
func NewDecisionTree() *DecisionTree {
	return &DecisionTree{
		evaluators: []evaluator{
			evaluateEmergency,
			evaluateCardio,
			evaluateNeuro,
			evaluateRespiratory,
			evaluateGastro,
			evaluateDerma,
			evaluateInfection,
			evaluateGineco,
			evaluateGeneral,
		},
	}
}

// Evaluate classifies a symptom description. Input is normalized to
// lowercase with punctuation stripped before keyword matching. When no
// evaluator matches, the fallback assessment routes to a general
// practitioner at low urgency.
func (t *DecisionTree) Evaluate(symptoms, history string, age int) Assessment {
	s := normalize(symptoms)
	h := normalize(history)
	for _, ev := range t.evaluators {
		if a := ev(s, h, age); a != nil {
			return *a
		}
	}
	return Assessment{
		Category:  "indeterminado",
		Diagnoses: []string{"Avaliação clínica necessária"},
		Urgency:   "Baixa",
		Referral:  "Clínico Geral",
		Alerts:    []string{},
	}
}

// stripAccents removes combining marks so "convulsão" matches the unaccented
// keyword table.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalize(text string) string {
	text = strings.ToLower(text)
	if folded, _, err := transform.String(stripAccents, text); err == nil {
		text = folded
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func evaluateEmergency(symptoms, history string, age int) *Assessment {
	if !containsAny(symptoms,
		"parada cardiaca", "desmaio prolongado", "convulsao",
		"sangramento incontrolavel", "overdose", "queimadura grave",
		"falta de ar severa", "trauma craniano",
	) {
		return nil
	}
	return &Assessment{
		Category:  "emergencias",
		Diagnoses: []string{"Emergência médica"},
		Urgency:   "Altíssima",
		Referral:  "Pronto-Socorro",
		Alerts:    []string{"CHAME O SAMU IMEDIATAMENTE - 192"},
	}
}

func evaluateCardio(symptoms, history string, age int) *Assessment {
	if !containsAny(symptoms,
		"dor no peito", "dor precordial", "palpitacao",
		"taquicardia", "desmaio", "inchaco nas pernas",
	) {
		return nil
	}
	a := &Assessment{
		Category: "cardiovascular",
		Urgency:  "Alta",
		Referral: "Cardiologia",
		Alerts:   []string{},
	}
	if strings.Contains(symptoms, "dor no peito") {
		switch {
		case strings.Contains(symptoms, "irradia para o braco"):
			a.Diagnoses = append(a.Diagnoses, "Infarto Agudo do Miocárdio")
			a.Alerts = append(a.Alerts, "RISCO DE IAM - PRIORIDADE MÁXIMA")
		case strings.Contains(symptoms, "piora com esforco"):
			a.Diagnoses = append(a.Diagnoses, "Angina Pectoris")
		}
	}
	if containsAny(history, "hipertensao", "colesterol", "diabetes") {
		a.Alerts = append(a.Alerts, "Paciente com fatores de risco cardiovascular")
	}
	return a
}

func evaluateNeuro(symptoms, history string, age int) *Assessment {
	if !containsAny(symptoms,
		"cefaleia", "dor de cabeca intensa", "convulsao",
		"perda de consciencia", "confusao mental", "visao dupla",
		"fraqueza muscular", "formigamento",
	) {
		return nil
	}
	a := &Assessment{
		Category: "neurologico",
		Urgency:  "Alta",
		Referral: "Neurologia",
		Alerts:   []string{},
	}
	if containsAny(symptoms, "dor de cabeca", "cefaleia") {
		switch {
		case strings.Contains(symptoms, "intensa") && strings.Contains(symptoms, "repentina"):
			a.Diagnoses = append(a.Diagnoses, "Hemorragia Subaracnóidea")
			a.Alerts = append(a.Alerts, "Possível aneurisma cerebral - TC URGENTE")
		case strings.Contains(symptoms, "vomito") && strings.Contains(symptoms, "fotofobia"):
			a.Diagnoses = append(a.Diagnoses, "Enxaqueca com Aura")
		}
	}
	if containsAny(history, "avc", "acidente vascular cerebral") {
		a.Alerts = append(a.Alerts, "Paciente com histórico de AVC - risco aumentado")
	}
	return a
}

func evaluateRespiratory(symptoms, history string, age int) *Assessment {
	if !containsAny(symptoms,
		"falta de ar", "dispneia", "tosse com sangue",
		"sibilo", "dor toracica ao respirar",
	) {
		return nil
	}
	a := &Assessment{
		Category: "respiratorio",
		Urgency:  "Média",
		Referral: "Pneumologia",
		Alerts:   []string{},
	}
	if strings.Contains(symptoms, "falta de ar") {
		switch {
		case strings.Contains(symptoms, "esforco"):
			if strings.Contains(history, "tabagismo") {
				a.Diagnoses = append(a.Diagnoses, "DPOC")
			} else {
				a.Diagnoses = append(a.Diagnoses, "Asma")
			}
		case strings.Contains(symptoms, "repentina"):
			a.Diagnoses = append(a.Diagnoses, "Tromboembolismo Pulmonar")
			a.Urgency = "Alta"
		}
	}
	return a
}

func evaluateGastro(symptoms, history string, age int) *Assessment {
	if !containsAny(symptoms,
		"dor abdominal", "vomito", "diarreia",
		"sangue nas fezes", "ictericia", "azia",
	) {
		return nil
	}
	a := &Assessment{
		Category: "gastrointestinal",
		Urgency:  "Média",
		Referral: "Gastroenterologia",
		Alerts:   []string{},
	}
	if strings.Contains(symptoms, "dor abdominal") {
		switch {
		case strings.Contains(symptoms, "quadrante superior direito"):
			a.Diagnoses = append(a.Diagnoses, "Colecistite")
		case strings.Contains(symptoms, "rebote"):
			a.Diagnoses = append(a.Diagnoses, "Apendicite Aguda")
			a.Urgency = "Alta"
		}
	}
	return a
}

func evaluateDerma(symptoms, history string, age int) *Assessment {
	if !containsAny(symptoms,
		"erupcao cutanea", "prurido", "lesao na pele",
		"vermelhidao", "bolhas", "descamacao",
	) {
		return nil
	}
	a := &Assessment{
		Category: "dermatologico",
		Urgency:  "Baixa",
		Referral: "Dermatologia",
		Alerts:   []string{},
	}
	switch {
	case containsAny(symptoms, "pele descamando", "bolhas extensas"):
		a.Diagnoses = []string{"Síndrome de Stevens-Johnson (emergência)"}
		a.Urgency = "Alta"
		a.Alerts = []string{"INTERNAÇÃO URGENTE - RISCO DE SEPSE"}
	case strings.Contains(symptoms, "erupcao") && strings.Contains(symptoms, "febre"):
		a.Diagnoses = append(a.Diagnoses, "Doença exantemática (avaliar vacinação)")
	}
	return a
}

func evaluateInfection(symptoms, history string, age int) *Assessment {
	if !containsAny(symptoms,
		"febre alta", "calafrios", "sudorese noturna",
		"linfonodos aumentados", "viagem recente",
	) {
		return nil
	}
	a := &Assessment{
		Category: "infeccioso",
		Urgency:  "Média",
		Referral: "Infectologia",
		Alerts:   []string{},
	}
	switch {
	case strings.Contains(symptoms, "febre alta") && containsAny(symptoms, "confusao", "taquicardia"):
		a.Diagnoses = []string{"Sepse (avaliar SOFA score)"}
		a.Urgency = "Alta"
		a.Alerts = []string{"RISCO DE CHOQUE SÉPTICO - INICIAR PROTOCOLO IMEDIATO"}
	case strings.Contains(history, "viagem recente"):
		a.Diagnoses = append(a.Diagnoses, "Doença tropical (diferencial)")
	}
	return a
}

func evaluateGineco(symptoms, history string, age int) *Assessment {
	if !containsAny(symptoms,
		"sangramento vaginal", "dor pelvica", "corrimento",
		"atraso menstrual", "gravidez", "tpm intensa",
	) {
		return nil
	}
	a := &Assessment{
		Category: "gineco_obstetrico",
		Urgency:  "Média",
		Referral: "Ginecologia",
		Alerts:   []string{},
	}
	if strings.Contains(symptoms, "gravidez") {
		a.Referral = "Obstetrícia"
	}
	switch {
	case strings.Contains(history, "gravidez") && containsAny(symptoms, "sangramento", "contracoes"):
		if age < 40 {
			a.Diagnoses = []string{"Ameaça de aborto"}
		} else {
			a.Diagnoses = []string{"Descolamento prematuro"}
		}
		a.Urgency = "Alta"
		a.Alerts = []string{"RISCO DE PERDA FETAL - ECOGRAFIA URGENTE"}
	case strings.Contains(symptoms, "dor pelvica intensa"):
		a.Diagnoses = append(a.Diagnoses, "Torção de anexo (diferencial)")
	}
	if strings.Contains(symptoms, "corrimento") {
		a.Diagnoses = append(a.Diagnoses, "Vaginose/Candidose (avaliar exames)")
	}
	return a
}

func evaluateGeneral(symptoms, history string, age int) *Assessment {
	if !containsAny(symptoms,
		"febre", "calafrios", "perda de peso",
		"astenia", "mal estar", "cansaco",
	) {
		return nil
	}
	a := &Assessment{
		Category: "geral",
		Urgency:  "Baixa",
		Referral: "Clínico Geral",
		Alerts:   []string{},
	}
	switch {
	case strings.Contains(symptoms, "febre") && strings.Contains(symptoms, "diarreia"):
		a.Diagnoses = append(a.Diagnoses, "Gastroenterite Aguda")
	case strings.Contains(symptoms, "febre") && strings.Contains(symptoms, "tosse"):
		if age > 65 {
			a.Diagnoses = append(a.Diagnoses, "Pneumonia")
		} else {
			a.Diagnoses = append(a.Diagnoses, "Bronquite")
		}
	case strings.Contains(symptoms, "cansaco") && strings.Contains(symptoms, "perda de peso"):
		a.Diagnoses = append(a.Diagnoses, "Anemia (diferencial)")
	}
	return a
}
