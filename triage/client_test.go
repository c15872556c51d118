package triage_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpalves/smartnurse"
	"github.com/jpalves/smartnurse/triage"
)

// newTestServer returns a client pointed at an httptest server running the
// given handler.
func newTestServer(t *testing.T, handler http.HandlerFunc) *triage.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return triage.New(triage.WithBaseURL(srv.URL))
}

func TestClient_Triage_RequestFormat(t *testing.T) {
	t.Parallel()
	var gotPath, gotMethod, gotContentType string
	var gotBody map[string]any
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"diagnosis":{"category":"general","urgency":"Baixa"}}`))
	})

	_, err := client.Triage(context.Background(), smartnurse.TriageRequest{
		Symptoms: "tosse seca",
		History:  "asma",
		Age:      34,
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/triage", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "tosse seca", gotBody["symptoms"])
	assert.Equal(t, "asma", gotBody["history"])
	assert.Equal(t, float64(34), gotBody["age"])
}

func TestClient_Triage_DefaultsHistoryAndAge(t *testing.T) {
	t.Parallel()
	var gotBody map[string]any
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"diagnosis":{"category":"general","urgency":"Baixa"}}`))
	})

	_, err := client.Triage(context.Background(), smartnurse.TriageRequest{Symptoms: "febre"})
	require.NoError(t, err)

	assert.Equal(t, "Não informado", gotBody["history"])
	assert.Equal(t, float64(0), gotBody["age"])
}

func TestClient_Triage_FullResponse(t *testing.T) {
	t.Parallel()
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"diagnosis": {
				"category": "cardiovascular",
				"urgency": "Alta",
				"alerts": ["Possível evento cardíaco"],
				"specialty_id": "cardio"
			},
			"medical_info": {
				"sources": ["Protocolo de Manchester"],
				"recommendation": "Procure atendimento de emergência.",
				"relevant_info": [{"text": "dor torácica", "confidence": 0.92}]
			},
			"ai_explanation": "Sintomas compatíveis com quadro cardíaco agudo.",
			"status": "ok"
		}`))
	})

	got, err := client.Triage(context.Background(), smartnurse.TriageRequest{Symptoms: "dor no peito"})
	require.NoError(t, err)

	assert.Equal(t, smartnurse.TriageResult{
		Category:       "cardiovascular",
		UrgencyLevel:   "Alta",
		Alerts:         []string{"Possível evento cardíaco"},
		Sources:        []string{"Protocolo de Manchester"},
		Recommendation: "Procure atendimento de emergência.",
		Explanation:    "Sintomas compatíveis com quadro cardíaco agudo.",
	}, got)
}

func TestClient_Triage_DegradedResponse(t *testing.T) {
	t.Parallel()
	// medical_info and ai_explanation missing: the result degrades to empty
	// fields rather than failing.
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"diagnosis":{"category":"general","urgency":"Baixa"}}`))
	})

	got, err := client.Triage(context.Background(), smartnurse.TriageRequest{Symptoms: "mal estar"})
	require.NoError(t, err)
	assert.Equal(t, "general", got.Category)
	assert.Equal(t, "Baixa", got.UrgencyLevel)
	assert.Empty(t, got.Sources)
	assert.Empty(t, got.Recommendation)
	assert.Empty(t, got.Explanation)
}

func TestClient_Triage_TransportError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := triage.New(triage.WithBaseURL(srv.URL))
	_, err := client.Triage(context.Background(), smartnurse.TriageRequest{Symptoms: "febre"})
	assert.ErrorIs(t, err, smartnurse.ErrServiceUnavailable)
}

func TestClient_Triage_ApplicationError(t *testing.T) {
	t.Parallel()
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"Descreva os sintomas para realizar a triagem."}`))
	})

	_, err := client.Triage(context.Background(), smartnurse.TriageRequest{Symptoms: " "})
	var apiErr *smartnurse.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "Descreva os sintomas para realizar a triagem.", apiErr.Detail)
}

func TestClient_Triage_ApplicationError_NoDetail(t *testing.T) {
	t.Parallel()
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`not json at all`))
	})

	_, err := client.Triage(context.Background(), smartnurse.TriageRequest{Symptoms: "febre"})
	var apiErr *smartnurse.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Empty(t, apiErr.Detail)
}

func TestClient_Triage_MalformedResponse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"diagnosis":`},
		{name: "missing diagnosis", body: `{"medical_info":{"sources":[]}}`},
		{name: "empty diagnosis", body: `{"diagnosis":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Triage(context.Background(), smartnurse.TriageRequest{Symptoms: "febre"})
			assert.ErrorIs(t, err, smartnurse.ErrMalformedResponse)
		})
	}
}

func TestClient_TestConnection(t *testing.T) {
	t.Parallel()
	var gotPath, gotMethod string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		_, _ = w.Write([]byte(`{"connected":true}`))
	})

	connected, err := client.TestConnection(context.Background())
	require.NoError(t, err)
	assert.True(t, connected)
	assert.Equal(t, "/test-connection", gotPath)
	assert.Equal(t, http.MethodGet, gotMethod)
}

func TestClient_TestConnection_Disconnected(t *testing.T) {
	t.Parallel()
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"connected":false}`))
	})

	connected, err := client.TestConnection(context.Background())
	require.NoError(t, err)
	assert.False(t, connected)
}

func TestClient_TestConnection_TransportError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := triage.New(triage.WithBaseURL(srv.URL))
	_, err := client.TestConnection(context.Background())
	assert.ErrorIs(t, err, smartnurse.ErrServiceUnavailable)
}

func TestClient_ContextCancellation(t *testing.T) {
	t.Parallel()
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Triage(ctx, smartnurse.TriageRequest{Symptoms: "febre"})
	assert.Error(t, err)
}
