package smartnurse

import "strings"

// TriageResult is the structured output of a remote triage call. It is
// immutable once constructed.
type TriageResult struct {
	Category       string
	UrgencyLevel   string
	Alerts         []string
	Sources        []string
	Recommendation string
	Explanation    string
}

// Format renders the result into the multi-line chat display string. The
// alerts section is omitted entirely when there are no alerts.
func (r TriageResult) Format() string {
	var b strings.Builder
	b.WriteString("🔍 Diagnóstico: " + r.Category + "\n")
	b.WriteString("🚨 Nível de Urgência: " + r.UrgencyLevel + "\n\n")

	if len(r.Alerts) > 0 {
		b.WriteString("⚠️ Alertas:\n")
		for _, alert := range r.Alerts {
			b.WriteString("• " + alert + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("📌 Recomendação: " + r.Recommendation + "\n\n")
	b.WriteString("💡 Explicação:\n" + r.Explanation)
	return b.String()
}
