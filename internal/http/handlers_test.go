package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/stumps/internal/broadcast"
	"github.com/mauv0809/stumps/internal/commentary"
	"github.com/mauv0809/stumps/internal/config"
	"github.com/mauv0809/stumps/internal/database"
	"github.com/mauv0809/stumps/internal/match"
	"github.com/mauv0809/stumps/internal/metrics"
	"github.com/mauv0809/stumps/internal/notifier"
	"github.com/mauv0809/stumps/internal/processor"
	"github.com/mauv0809/stumps/internal/pubsub"
	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/mauv0809/stumps/internal/tournament"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type testServer struct {
	*Server
	notif *notifier.Mock
	token string
}

// setupTestServer initializes a new server with an in-memory database and mock notifier.
func setupTestServer(t *testing.T, cfg config.Config) *testServer {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(dbTeardown)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	hub := broadcast.NewHub(metricsSvc, nil)
	notif := notifier.NewMock()
	proc := processor.New(
		match.New(db),
		tournament.New(db),
		hub,
		notif,
		metricsSvc,
		commentary.New(rand.New(rand.NewPCG(1, 2))),
	)
	server := NewServer(proc, metricsSvc, metrics.NewMetricsHandler(reg), http.HandlerFunc(hub.HandleWS), cfg, db, pubsub.NewMock())
	return &testServer{Server: server, notif: notif, token: cfg.ScorerToken}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func (s *testServer) createTournament(t *testing.T) tournament.Tournament {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/tournaments", processor.CreateTournamentInput{
		Name:       "Summer Cup",
		TotalOvers: 1,
		Teams:      []scoring.Team{{ID: "A", Name: "Lions"}, {ID: "B", Name: "Tigers"}},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[tournament.Tournament](t, rr)
}

func (s *testServer) scheduleMatch(t *testing.T, tournamentID string) scoring.Match {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/matches", processor.ScheduleMatchInput{
		TournamentID: tournamentID,
		Home:         scoring.Team{ID: "A", Name: "Lions"},
		Away:         scoring.Team{ID: "B", Name: "Tigers"},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[scoring.Match](t, rr)
}

func (s *testServer) bowl(t *testing.T, matchID string, innings int, batting, bowling string, runs, balls int) {
	t.Helper()
	path := fmt.Sprintf("/matches/%s/innings/%d/balls", matchID, innings)
	for range balls {
		rr := s.do(t, http.MethodPost, path, scoring.BallInput{
			StrikerID:    batting + "1",
			NonStrikerID: batting + "2",
			BowlerID:     bowling + "1",
			Runs:         runs,
		})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}
}

func TestHealthCheckHandler(t *testing.T) {
	server := setupTestServer(t, config.Config{})

	rr := server.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestMatchLifecycle(t *testing.T) {
	server := setupTestServer(t, config.Config{})
	tour := server.createTournament(t)
	m := server.scheduleMatch(t, tour.ID)
	assert.Equal(t, 1, m.TotalOvers, "tournament overs apply")
	assert.Equal(t, scoring.MatchUpcoming, m.Status)

	rr := server.do(t, http.MethodPost, "/matches/"+m.ID+"/toss", scoring.Toss{WinnerTeamID: "A", Decision: scoring.TossBat})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = server.do(t, http.MethodPost, "/matches/"+m.ID+"/innings/0/balls", scoring.BallInput{
		StrikerID: "A1", NonStrikerID: "A2", BowlerID: "B1", Runs: 4,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	outcome := decode[scoring.BallOutcome](t, rr)
	assert.Equal(t, 4, outcome.Innings.Runs)
	assert.NotEmpty(t, outcome.Ball.Commentary)

	server.bowl(t, m.ID, 0, "A", "B", 1, 5)
	assert.Equal(t, http.StatusConflict, server.do(t, http.MethodPost, "/matches/"+m.ID+"/innings/0/balls", scoring.BallInput{
		StrikerID: "A1", NonStrikerID: "A2", BowlerID: "B1",
	}).Code, "the over limit is reached")

	rr = server.do(t, http.MethodPost, "/matches/"+m.ID+"/innings/0/end", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	afterFirst := decode[scoring.Match](t, rr)
	assert.Equal(t, scoring.MatchInningsBreak, afterFirst.Status)
	assert.Equal(t, 10, afterFirst.Innings[1].Target, "4 + 5 singles")

	rr = server.do(t, http.MethodPost, "/matches/"+m.ID+"/innings/next", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	server.bowl(t, m.ID, 1, "B", "A", 0, 6)
	rr = server.do(t, http.MethodPost, "/matches/"+m.ID+"/innings/1/end", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	done := decode[scoring.Match](t, rr)
	assert.Equal(t, scoring.MatchCompleted, done.Status)
	require.NotNil(t, done.Result)
	assert.Equal(t, "Lions won by 9 runs", done.Result.Summary)

	rr = server.do(t, http.MethodGet, "/tournaments/"+tour.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	table := decode[tournament.Tournament](t, rr).Standings
	assert.Equal(t, []string{m.ID}, table.AppliedMatchIDs)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "A", table.Rows[0].TeamID)
	assert.Equal(t, 1, server.notif.ResultCalls())

	rr = server.do(t, http.MethodPost, "/tournaments/"+tour.ID+"/matches/"+m.ID+"/result", nil)
	assert.Equal(t, http.StatusConflict, rr.Code, "a result is applied once")

	rr = server.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "stumps_balls_recorded_total 12")
	assert.Contains(t, rr.Body.String(), "stumps_matches_completed_total 1")
}

func TestErrorMapping(t *testing.T) {
	server := setupTestServer(t, config.Config{})
	m := server.scheduleMatch(t, "")
	balls := "/matches/" + m.ID + "/innings/0/balls"

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"unknown match", http.MethodGet, "/matches/nope", nil, http.StatusNotFound},
		{"unknown tournament", http.MethodGet, "/tournaments/nope", nil, http.StatusNotFound},
		{"wrong innings", http.MethodPost, "/matches/" + m.ID + "/innings/1/balls", scoring.BallInput{StrikerID: "B1", NonStrikerID: "B2", BowlerID: "A1"}, http.StatusConflict},
		{"innings out of range", http.MethodPost, "/matches/" + m.ID + "/innings/2/balls", scoring.BallInput{StrikerID: "A1", NonStrikerID: "A2", BowlerID: "B1"}, http.StatusNotFound},
		{"innings not a number", http.MethodPost, "/matches/" + m.ID + "/innings/first/balls", scoring.BallInput{}, http.StatusBadRequest},
		{"malformed body", http.MethodPost, balls, "{not json", http.StatusBadRequest},
		{"same batter twice", http.MethodPost, balls, scoring.BallInput{StrikerID: "A1", NonStrikerID: "A1", BowlerID: "B1"}, http.StatusBadRequest},
		{"negative runs", http.MethodPost, balls, scoring.BallInput{StrikerID: "A1", NonStrikerID: "A2", BowlerID: "B1", Runs: -1}, http.StatusBadRequest},
		{"end innings before play", http.MethodPost, "/matches/" + m.ID + "/innings/0/end", nil, http.StatusConflict},
		{"chase before break", http.MethodPost, "/matches/" + m.ID + "/innings/next", nil, http.StatusConflict},
		{"overs not reduced", http.MethodPost, "/matches/" + m.ID + "/overs", reduceOversRequest{Overs: 25}, http.StatusBadRequest},
		{"short playing xi", http.MethodPost, "/matches/" + m.ID + "/xi", playingXIRequest{TeamID: "A", PlayerIDs: []string{"A1"}}, http.StatusBadRequest},
		{"bad toss decision", http.MethodPost, "/matches/" + m.ID + "/toss", scoring.Toss{WinnerTeamID: "A", Decision: "field"}, http.StatusBadRequest},
		{"result for unknown tournament", http.MethodPost, "/tournaments/t1/matches/" + m.ID + "/result", nil, http.StatusNotFound},
		{"tournament without name", http.MethodPost, "/tournaments", processor.CreateTournamentInput{}, http.StatusBadRequest},
		{"bad limit", http.MethodGet, "/matches?limit=lots", nil, http.StatusBadRequest},
		{"wrong method", http.MethodDelete, "/matches/" + m.ID, nil, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := server.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			if tt.status != http.StatusMethodNotAllowed {
				assert.NotEmpty(t, decode[errorResponse](t, rr).Error)
			}
		})
	}
}

func TestAbandonAndReduce(t *testing.T) {
	server := setupTestServer(t, config.Config{})
	m := server.scheduleMatch(t, "")

	rr := server.do(t, http.MethodPost, "/matches/"+m.ID+"/overs", reduceOversRequest{Overs: 10})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 10, decode[scoring.Match](t, rr).TotalOvers)

	rr = server.do(t, http.MethodPost, "/matches/"+m.ID+"/abandon", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	abandoned := decode[scoring.Match](t, rr)
	assert.Equal(t, scoring.ResultNoResult, abandoned.Result.Type)

	rr = server.do(t, http.MethodPost, "/matches/"+m.ID+"/abandon", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestListHandlers(t *testing.T) {
	server := setupTestServer(t, config.Config{})
	tour := server.createTournament(t)
	server.scheduleMatch(t, tour.ID)
	server.scheduleMatch(t, "")

	rr := server.do(t, http.MethodGet, "/matches", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]scoring.Match](t, rr), 2)

	rr = server.do(t, http.MethodGet, "/matches?tournament_id="+tour.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]scoring.Match](t, rr), 1)

	rr = server.do(t, http.MethodGet, "/matches?status=live", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[[]scoring.Match](t, rr))

	rr = server.do(t, http.MethodGet, "/tournaments", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]tournament.Tournament](t, rr), 1)
}

func TestScorerToken(t *testing.T) {
	server := setupTestServer(t, config.Config{ScorerToken: "secret"})
	body := processor.ScheduleMatchInput{Home: scoring.Team{ID: "A"}, Away: scoring.Team{ID: "B"}}

	t.Run("writes need the token", func(t *testing.T) {
		server.token = ""
		rr := server.do(t, http.MethodPost, "/matches", body)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		server.token = "wrong"
		rr = server.do(t, http.MethodPost, "/matches", body)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("reads are open", func(t *testing.T) {
		server.token = ""
		rr := server.do(t, http.MethodGet, "/matches", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		server.token = "secret"
		rr := server.do(t, http.MethodPost, "/matches", body)
		assert.Equal(t, http.StatusCreated, rr.Code)
	})
}

func pushBody(t *testing.T, v any) string {
	t.Helper()
	data, err := msgpack.Marshal(v)
	require.NoError(t, err)
	env := map[string]any{
		"subscription": "projects/p/subscriptions/match-completed",
		"message": map[string]any{
			"data":      base64.StdEncoding.EncodeToString(data),
			"messageId": "1",
		},
	}
	out, err := json.Marshal(env)
	require.NoError(t, err)
	return string(out)
}

func TestMatchCompletedPushHandler(t *testing.T) {
	server := setupTestServer(t, config.Config{})
	m := server.scheduleMatch(t, "")
	rr := server.do(t, http.MethodPost, "/matches/"+m.ID+"/abandon", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, server.notif.ResultCalls(), "completed in-process")

	t.Run("handles the message", func(t *testing.T) {
		rr := server.do(t, http.MethodPost, "/pubsub/match-completed?dry_run=true", pushBody(t, pubsub.MatchCompleted{MatchID: m.ID}))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "OK", rr.Body.String())
		require.Equal(t, 2, server.notif.ResultCalls())
		assert.True(t, server.notif.SendResultNotificationCalls[1].DryRun)
	})

	t.Run("acknowledges unknown matches", func(t *testing.T) {
		rr := server.do(t, http.MethodPost, "/pubsub/match-completed", pushBody(t, pubsub.MatchCompleted{MatchID: "gone"}))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("rejects a malformed envelope", func(t *testing.T) {
		rr := server.do(t, http.MethodPost, "/pubsub/match-completed", "{")
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = server.do(t, http.MethodPost, "/pubsub/match-completed", `{"message":{"data":"%%%"}}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.True(t, strings.Contains(rr.Body.String(), "base64"))
	})
}

const testSlackSigningSecret = "test-signing-secret"

// slackCommandRequest builds a form-encoded slash command signed the way Slack
// signs them: v0=hex(hmac_sha256(secret, "v0:<timestamp>:<body>")).
func slackCommandRequest(t *testing.T, target, text, signingSecret string) *http.Request {
	t.Helper()
	form := url.Values{}
	form.Set("command", "/standings")
	form.Set("text", text)
	form.Set("user_name", "umpire")
	body := form.Encode()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte("v0:" + timestamp + ":" + body))
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))
	return req
}

func TestStandingsCommandHandler(t *testing.T) {
	cfg := config.Config{Slack: config.SlackConfig{SigningSecret: testSlackSigningSecret}}
	server := setupTestServer(t, cfg)
	const path = "/slack/command/standings"

	command := func(t *testing.T, text, secret string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, slackCommandRequest(t, path, text, secret))
		return rr
	}

	t.Run("no tournaments yet", func(t *testing.T) {
		rr := command(t, "", testSlackSigningSecret)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "No tournaments yet.")
		assert.Contains(t, rr.Body.String(), `"response_type":"ephemeral"`)
	})

	tour := server.createTournament(t)

	t.Run("latest tournament by default", func(t *testing.T) {
		rr := command(t, "", testSlackSigningSecret)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Summer Cup standings")
		assert.Contains(t, rr.Body.String(), `"response_type":"in_channel"`)
	})

	t.Run("by id or name", func(t *testing.T) {
		for _, text := range []string{tour.ID, "summer cup"} {
			rr := command(t, text, testSlackSigningSecret)
			require.Equal(t, http.StatusOK, rr.Code, text)
			assert.Contains(t, rr.Body.String(), "Summer Cup standings", text)
			assert.Contains(t, rr.Body.String(), "No results yet.", text)
		}
	})

	t.Run("unknown tournament", func(t *testing.T) {
		rr := command(t, "Winter Shield", testSlackSigningSecret)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "No tournament matches")
		assert.Contains(t, rr.Body.String(), `"response_type":"ephemeral"`)
	})

	t.Run("bad signature", func(t *testing.T) {
		rr := command(t, "", "not-the-secret")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("not registered without a signing secret", func(t *testing.T) {
		plain := setupTestServer(t, config.Config{})
		rr := httptest.NewRecorder()
		plain.Router.ServeHTTP(rr, slackCommandRequest(t, path, "", testSlackSigningSecret))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
