package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/catalog"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/dialogue"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/engine"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

func testEnv(t *testing.T) *botEnv {
	t.Helper()
	cat := catalog.New([]model.Record{
		{University: "FAST", Campus: "Islamabad", Department: "Computing", Program: "BS", Year: 2023, MinMerit: 80.0, MaxMerit: 92.5},
		{University: "FAST", Campus: "Lahore", Department: "Computing", Program: "BS", Year: 2023, MinMerit: 78.0, MaxMerit: 90.0},
	})
	sessions := dialogue.NewMemoryStore()
	eng, err := engine.New(cat, sessions, nil)
	require.NoError(t, err)
	return &botEnv{Catalog: cat, Sessions: sessions, Engine: eng}
}

func TestServe_Health(t *testing.T) {
	srv := httptest.NewServer(newMux(testEnv(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(2), body["records"])
}

func TestServe_Vocab(t *testing.T) {
	srv := httptest.NewServer(newMux(testEnv(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/vocab")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	var body struct {
		Universities []string `json:"universities"`
		Campuses     []string `json:"campuses"`
		Years        []int    `json:"years"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"FAST"}, body.Universities)
	assert.Equal(t, []string{"Islamabad", "Lahore"}, body.Campuses)
	assert.Equal(t, []int{2023}, body.Years)
}

func TestServe_Chat(t *testing.T) {
	srv := httptest.NewServer(newMux(testEnv(t)))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/chat", "application/json",
		strings.NewReader(`{"message":"bs computing merit at fast islamabad in 2023"}`))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reply model.TurnReply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	assert.NotEmpty(t, reply.SessionID)
	require.Len(t, reply.Outcomes, 1)
	assert.Equal(t, model.OutcomeAnswerSingle, reply.Outcomes[0].Kind)
	assert.Contains(t, reply.Reply, "min 80% / max 92.5%")
}

func TestServe_ChatSessionContinues(t *testing.T) {
	srv := httptest.NewServer(newMux(testEnv(t)))
	defer srv.Close()

	post := func(body string) model.TurnReply {
		resp, err := http.Post(srv.URL+"/chat", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck
		var reply model.TurnReply
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
		return reply
	}

	first := post(`{"message":"what was the merit in 2023?"}`)
	require.Len(t, first.Outcomes, 1)
	require.Equal(t, model.OutcomeAskSlot, first.Outcomes[0].Kind)

	second := post(`{"session_id":"` + first.SessionID + `","message":"FAST"}`)
	require.Equal(t, model.OutcomeAskSlot, second.Outcomes[0].Kind)
	assert.Equal(t, model.SlotDepartment, second.Outcomes[0].Slot)
}

func TestServe_ChatBadRequest(t *testing.T) {
	srv := httptest.NewServer(newMux(testEnv(t)))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/chat", "application/json", strings.NewReader(`{`))
	require.NoError(t, err)
	resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/chat", "application/json", strings.NewReader(`{"message":""}`))
	require.NoError(t, err)
	resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReadFile_UnsupportedExtension(t *testing.T) {
	_, _, err := readFile("merits.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}
