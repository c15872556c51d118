// Package triage implements [smartnurse.TriageClient] for the external
// symptom-triage HTTP service.
//
// The client is stateless and issues exactly one outbound request per
// invocation. Retry policy, if any, belongs to the caller's transport, not
// here. Transport, application and malformed-response failures map to the
// typed errors the session controller renders as chat turns.
package triage

const (
	defaultBaseURL = "http://localhost:8000"
	triagePath     = "/api/triage"
	probePath      = "/test-connection"

	// defaultHistory is the sentinel for "no history provided".
	defaultHistory = "Não informado"
)

// apiRequest is the JSON body sent to the triage endpoint.
type apiRequest struct {
	Symptoms string `json:"symptoms"`
	History  string `json:"history"`
	Age      int    `json:"age"`
}

// apiDiagnosis mirrors the diagnosis object of a success response.
type apiDiagnosis struct {
	Category    string   `json:"category"`
	Urgency     string   `json:"urgency"`
	Alerts      []string `json:"alerts"`
	SpecialtyID string   `json:"specialty_id,omitempty"`
}

// apiRelevantInfo is an optional scored snippet inside medical_info.
type apiRelevantInfo struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// apiMedicalInfo mirrors the medical_info object of a success response.
type apiMedicalInfo struct {
	Sources        []string          `json:"sources"`
	Recommendation string            `json:"recommendation"`
	RelevantInfo   []apiRelevantInfo `json:"relevant_info,omitempty"`
}

// apiResponse is the JSON body of a success response. Diagnosis is the only
// required object; everything else degrades to empty values when absent.
type apiResponse struct {
	Diagnosis     *apiDiagnosis   `json:"diagnosis"`
	MedicalInfo   *apiMedicalInfo `json:"medical_info"`
	AIExplanation string          `json:"ai_explanation"`
	Status        string          `json:"status,omitempty"`
}

// apiErrorResponse is the JSON body of an error response.
type apiErrorResponse struct {
	Detail string `json:"detail"`
}

// apiProbeResponse is the JSON body of the connectivity probe.
type apiProbeResponse struct {
	Connected bool `json:"connected"`
}
