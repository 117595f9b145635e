package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformRequest(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody scoring.Toss
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	host, token = srv.URL, "secret"
	defer func() { host, token = "", "" }()

	var out bytes.Buffer
	err := performRequest(&out, http.MethodPost, "/matches/m1/toss", scoring.Toss{WinnerTeamID: "A", Decision: scoring.TossBat})
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "/matches/m1/toss", gotPath)
	assert.Equal(t, "A", gotBody.WinnerTeamID)
	assert.Contains(t, out.String(), "Status Code: 200")
	assert.Contains(t, out.String(), `{"ok":true}`)
}

func TestPerformRequest_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"nope"}`, http.StatusConflict)
	}))
	defer srv.Close()

	host = srv.URL
	defer func() { host = "" }()

	var out bytes.Buffer
	err := performGetRequest(&out, "/matches/m1")
	require.Error(t, err)
	assert.Contains(t, out.String(), "Status Code: 409")
}

func TestParseTeams(t *testing.T) {
	teams, err := parseTeams([]string{"A=Lions", "B"})
	require.NoError(t, err)
	assert.Equal(t, []scoring.Team{{ID: "A", Name: "Lions"}, {ID: "B", Name: "B"}}, teams)

	_, err = parseTeams([]string{"=Nobody"})
	assert.Error(t, err)
}
