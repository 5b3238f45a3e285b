package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/matchday/internal/broadcast"
	"github.com/mauv0809/matchday/internal/config"
	"github.com/mauv0809/matchday/internal/database"
	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/mauv0809/matchday/internal/processor"
	"github.com/mauv0809/matchday/internal/pubsub"
	"github.com/mauv0809/matchday/internal/standings"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const testSlackSigningSecret = "test-signing-secret"

type testServer struct {
	*Server
	publisher *broadcast.Mock
	notifier  *notifier.Mock
	pubsub    *pubsub.MockPubSubClient
}

// setupTestServer initializes a new server with an in-memory database and mock collaborators.
func setupTestServer(t *testing.T, slackSigningSecret string) (*testServer, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	store := league.New(db)
	cfg := config.Config{
		Slack:  config.SlackConfig{SigningSecret: slackSigningSecret},
		PubSub: config.PubSubConfig{TopicPrefix: "matchday"},
	}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	pub := broadcast.NewMock()
	notif := notifier.NewMock()
	ps := pubsub.NewMock()
	proc := processor.New(store, pub, notif, metricsSvc)

	server := NewServer(store, metricsSvc, metricsHandler, cfg, notif, proc, nil, ps)
	return &testServer{Server: server, publisher: pub, notifier: notif, pubsub: ps}, teardown
}

func (s *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
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

func (s *testServer) createTeam(t *testing.T, name string) league.Team {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/teams", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[league.Team](t, rr)
}

func (s *testServer) createPlayer(t *testing.T, name, teamID string) league.Player {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/players", map[string]any{"name": name, "teamId": teamID, "position": "FW", "jerseyNumber": 9})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[league.Player](t, rr)
}

func (s *testServer) createMatch(t *testing.T, home, away string, status league.MatchStatus, homeScore, awayScore int) league.Match {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/matches", map[string]any{
		"teamA":  home,
		"teamB":  away,
		"date":   "2024-05-01",
		"time":   "18:00",
		"status": status,
		"score":  map[string]int{"teamA": homeScore, "teamB": awayScore},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[league.Match](t, rr)
}

// createSlackCommandRequest creates a slash command request signed the way Slack signs them.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	body := form.Encode()
	req := httptest.NewRequest(http.MethodPost, targetURL, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(fmt.Sprintf("v0:%d:%s", timestamp, body)))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))
	return req
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, "")
	defer teardown()

	rr := server.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestTeamHandlers(t *testing.T) {
	server, teardown := setupTestServer(t, "")
	defer teardown()

	t.Run("create and fetch", func(t *testing.T) {
		team := server.createTeam(t, "Rovers")
		assert.NotEmpty(t, team.ID)
		assert.Equal(t, "active", team.Status)

		rr := server.do(t, http.MethodGet, "/teams/"+team.ID, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Rovers", decode[league.Team](t, rr).Name)

		_, ok := server.publisher.Last(broadcast.EventTeams)
		assert.True(t, ok, "team list is broadcast after a create")
	})

	t.Run("records are broadcast after a result", func(t *testing.T) {
		home, away := server.createTeam(t, "Home"), server.createTeam(t, "Away")
		server.createMatch(t, home.ID, away.ID, league.StatusFinished, 3, 0)

		data, ok := server.publisher.Last(broadcast.EventTeams)
		require.True(t, ok)
		var found bool
		for _, team := range data.([]league.Team) {
			if team.ID == home.ID {
				found = true
				assert.Equal(t, 1, team.Won)
				assert.Equal(t, 3, team.GoalsFor)
			}
		}
		assert.True(t, found)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		rr := server.do(t, http.MethodPost, "/teams", map[string]string{"name": "  "})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decode[map[string]string](t, rr)["error"], "name")
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		rr := server.do(t, http.MethodPost, "/teams", "{")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown team is a 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, server.do(t, http.MethodGet, "/teams/nope", nil).Code)
		assert.Equal(t, http.StatusNotFound, server.do(t, http.MethodPut, "/teams/nope", map[string]string{"name": "X"}).Code)
		assert.Equal(t, http.StatusNotFound, server.do(t, http.MethodDelete, "/teams/nope", nil).Code)
	})

	t.Run("update keeps the record", func(t *testing.T) {
		home, away := server.createTeam(t, "Home"), server.createTeam(t, "Away")
		server.createMatch(t, home.ID, away.ID, league.StatusFinished, 1, 0)

		rr := server.do(t, http.MethodPut, "/teams/"+home.ID, map[string]string{"name": "Home United", "status": "inactive"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		updated := decode[league.Team](t, rr)
		assert.Equal(t, "Home United", updated.Name)
		assert.Equal(t, "inactive", updated.Status)
		assert.Equal(t, 1, updated.Won)
	})

	t.Run("team in a match cannot be deleted", func(t *testing.T) {
		home, away := server.createTeam(t, "A"), server.createTeam(t, "B")
		server.createMatch(t, home.ID, away.ID, league.StatusScheduled, 0, 0)

		rr := server.do(t, http.MethodDelete, "/teams/"+home.ID, nil)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("deleting a team frees its players", func(t *testing.T) {
		team := server.createTeam(t, "Disbanded")
		player := server.createPlayer(t, "Loner", team.ID)

		require.Equal(t, http.StatusNoContent, server.do(t, http.MethodDelete, "/teams/"+team.ID, nil).Code)

		rr := server.do(t, http.MethodGet, "/players/"+player.ID, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, decode[league.Player](t, rr).TeamID)
	})
}

func TestPlayerHandlers(t *testing.T) {
	server, teardown := setupTestServer(t, "")
	defer teardown()

	home, away := server.createTeam(t, "Home"), server.createTeam(t, "Away")

	t.Run("rejects unknown team", func(t *testing.T) {
		rr := server.do(t, http.MethodPost, "/players", map[string]any{"name": "Ghost", "teamId": "missing"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects negative jersey number", func(t *testing.T) {
		rr := server.do(t, http.MethodPost, "/players", map[string]any{"name": "Neg", "jerseyNumber": -1})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("new player is credited with finished matches", func(t *testing.T) {
		server.createMatch(t, home.ID, away.ID, league.StatusFinished, 2, 1)
		player := server.createPlayer(t, "Late Signing", home.ID)
		assert.Equal(t, league.PlayerStats{Minutes: 90}, player.Stats)
	})

	t.Run("moving team recalculates minutes", func(t *testing.T) {
		player := server.createPlayer(t, "Mover", home.ID)
		require.Equal(t, 90, player.Stats.Minutes)

		rr := server.do(t, http.MethodPut, "/players/"+player.ID, map[string]any{"name": "Mover", "teamId": ""})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, 0, decode[league.Player](t, rr).Stats.Minutes)
	})

	t.Run("card counts can be edited directly", func(t *testing.T) {
		player := server.createPlayer(t, "Hothead", away.ID)

		rr := server.do(t, http.MethodPatch, "/players/"+player.ID+"/cards", map[string]int{"yellowCards": 2, "redCards": 1})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		edited := decode[league.Player](t, rr)
		assert.Equal(t, 2, edited.Stats.YellowCards)
		assert.Equal(t, 1, edited.Stats.RedCards)

		rr = server.do(t, http.MethodPatch, "/players/"+player.ID+"/cards", map[string]int{"yellowCards": 1})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		rr = server.do(t, http.MethodPatch, "/players/missing/cards", map[string]int{"yellowCards": 1, "redCards": 0})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		player := server.createPlayer(t, "Retiree", "")
		assert.Equal(t, http.StatusNoContent, server.do(t, http.MethodDelete, "/players/"+player.ID, nil).Code)
		assert.Equal(t, http.StatusNotFound, server.do(t, http.MethodGet, "/players/"+player.ID, nil).Code)
	})
}

func TestMatchHandlers(t *testing.T) {
	server, teardown := setupTestServer(t, "")
	defer teardown()

	home, away := server.createTeam(t, "Home"), server.createTeam(t, "Away")

	t.Run("validation", func(t *testing.T) {
		cases := map[string]map[string]any{
			"missing side":   {"teamA": home.ID},
			"same team":      {"teamA": home.ID, "teamB": home.ID},
			"unknown team":   {"teamA": home.ID, "teamB": "missing"},
			"unknown status": {"teamA": home.ID, "teamB": away.ID, "status": "postponed"},
			"negative score": {"teamA": home.ID, "teamB": away.ID, "score": map[string]int{"teamA": -1}},
		}
		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				rr := server.do(t, http.MethodPost, "/matches", body)
				assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			})
		}
	})

	t.Run("create defaults to scheduled", func(t *testing.T) {
		rr := server.do(t, http.MethodPost, "/matches", map[string]any{"teamA": home.ID, "teamB": away.ID})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		match := decode[league.Match](t, rr)
		assert.Equal(t, league.StatusScheduled, match.Status)
		assert.NotEmpty(t, match.ID)
	})

	t.Run("status changes raise alerts", func(t *testing.T) {
		match := server.createMatch(t, home.ID, away.ID, league.StatusScheduled, 0, 0)
		server.notifier.Reset()

		rr := server.do(t, http.MethodPut, "/matches/"+match.ID, map[string]any{"status": "live"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		require.Len(t, server.notifier.SendAlertCalls, 1)
		assert.Equal(t, broadcast.AlertInfo, server.notifier.SendAlertCalls[0].Alert.Type)
		assert.Contains(t, server.notifier.SendAlertCalls[0].Alert.Message, "Home vs Away")

		rr = server.do(t, http.MethodPut, "/matches/"+match.ID+"?dry_run=true", map[string]any{
			"status": "finished",
			"score":  map[string]int{"teamA": 3, "teamB": 1},
		})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		updated := decode[league.Match](t, rr)
		assert.Equal(t, 3, updated.HomeScore)
		assert.Equal(t, "2024-05-01", updated.Date, "absent fields are kept")

		require.Len(t, server.notifier.SendAlertCalls, 2)
		last := server.notifier.SendAlertCalls[1]
		assert.Equal(t, broadcast.AlertMatchEnd, last.Alert.Type)
		assert.Equal(t, "Full time: Home 3 - 1 Away", last.Alert.Message)
		assert.True(t, last.DryRun)
		assert.Len(t, server.notifier.SendStandingsCalls, 1)

		data, ok := server.publisher.Last(broadcast.EventAlert)
		require.True(t, ok)
		assert.Equal(t, broadcast.AlertMatchEnd, data.(broadcast.Alert).Type)
	})

	t.Run("score edit without status change is silent", func(t *testing.T) {
		match := server.createMatch(t, home.ID, away.ID, league.StatusLive, 0, 0)
		server.notifier.Reset()

		rr := server.do(t, http.MethodPut, "/matches/"+match.ID, map[string]any{"score": map[string]int{"teamA": 1, "teamB": 0}})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, server.notifier.SendAlertCalls)
	})

	t.Run("unknown match is a 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, server.do(t, http.MethodGet, "/matches/missing", nil).Code)
		assert.Equal(t, http.StatusNotFound, server.do(t, http.MethodPut, "/matches/missing", map[string]any{"status": "live"}).Code)
		assert.Equal(t, http.StatusNotFound, server.do(t, http.MethodDelete, "/matches/missing", nil).Code)
	})

	t.Run("delete removes the match from the table", func(t *testing.T) {
		a, b := server.createTeam(t, "Delete A"), server.createTeam(t, "Delete B")
		match := server.createMatch(t, a.ID, b.ID, league.StatusFinished, 4, 0)

		require.Equal(t, http.StatusNoContent, server.do(t, http.MethodDelete, "/matches/"+match.ID, nil).Code)

		rr := server.do(t, http.MethodGet, "/teams/"+a.ID, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 0, decode[league.Team](t, rr).Won)
	})
}

func TestMatchEventHandlers(t *testing.T) {
	server, teardown := setupTestServer(t, "")
	defer teardown()

	home, away := server.createTeam(t, "Home"), server.createTeam(t, "Away")
	striker := server.createPlayer(t, "Striker", home.ID)
	match := server.createMatch(t, home.ID, away.ID, league.StatusLive, 1, 0)
	eventsURL := "/matches/" + match.ID + "/events"

	t.Run("goal updates player stats and alerts", func(t *testing.T) {
		server.notifier.Reset()
		rr := server.do(t, http.MethodPost, eventsURL, map[string]string{"type": "goal", "playerId": striker.ID, "minute": "23"})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		event := decode[league.MatchEvent](t, rr)
		assert.Equal(t, home.ID, event.TeamID, "team defaults to the player's team")

		rr = server.do(t, http.MethodGet, "/players/"+striker.ID, nil)
		assert.Equal(t, 1, decode[league.Player](t, rr).Stats.Goals)

		require.Len(t, server.notifier.SendAlertCalls, 1)
		alert := server.notifier.SendAlertCalls[0].Alert
		assert.Equal(t, broadcast.AlertGoal, alert.Type)
		assert.Equal(t, "23", alert.Minute)
	})

	t.Run("minute defaults to 90", func(t *testing.T) {
		rr := server.do(t, http.MethodPost, eventsURL, map[string]string{"type": "yellow_card", "playerId": striker.ID})
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, league.DefaultMinute, decode[league.MatchEvent](t, rr).Minute)
	})

	t.Run("validation", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, server.do(t, http.MethodPost, eventsURL, map[string]string{"type": "own_goal", "playerId": striker.ID}).Code)
		assert.Equal(t, http.StatusBadRequest, server.do(t, http.MethodPost, eventsURL, map[string]string{"type": "goal"}).Code)
		assert.Equal(t, http.StatusBadRequest, server.do(t, http.MethodPost, eventsURL, map[string]string{"type": "goal", "playerId": "missing"}).Code)
		assert.Equal(t, http.StatusNotFound, server.do(t, http.MethodPost, "/matches/missing/events", map[string]string{"type": "goal", "playerId": striker.ID}).Code)
	})

	t.Run("list and delete", func(t *testing.T) {
		rr := server.do(t, http.MethodGet, eventsURL, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		events := decode[[]league.MatchEvent](t, rr)
		require.Len(t, events, 2)

		for _, e := range events {
			require.Equal(t, http.StatusNoContent, server.do(t, http.MethodDelete, eventsURL+"/"+e.ID, nil).Code)
		}
		rr = server.do(t, http.MethodGet, "/players/"+striker.ID, nil)
		stats := decode[league.Player](t, rr).Stats
		assert.Equal(t, 0, stats.Goals)
		assert.Equal(t, 0, stats.YellowCards)

		assert.Equal(t, http.StatusNotFound, server.do(t, http.MethodDelete, eventsURL+"/missing", nil).Code)
	})
}

func TestStandingsHandler_LiveCountsOnlyProvisionally(t *testing.T) {
	server, teardown := setupTestServer(t, "")
	defer teardown()

	a, b := server.createTeam(t, "A"), server.createTeam(t, "B")
	server.createMatch(t, a.ID, b.ID, league.StatusFinished, 2, 0)
	server.createMatch(t, b.ID, a.ID, league.StatusLive, 1, 0)

	rr := server.do(t, http.MethodGet, "/standings", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	provisional := decode[[]standings.Row](t, rr)
	require.Len(t, provisional, 2)
	assert.Equal(t, a.ID, provisional[0].TeamID)
	assert.Equal(t, 2, provisional[0].Played)
	assert.Equal(t, 3, provisional[1].Points)

	rr = server.do(t, http.MethodGet, "/standings?scope=final", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	final := decode[[]standings.Row](t, rr)
	require.Len(t, final, 2)
	assert.Equal(t, 1, final[0].Played)
	assert.Equal(t, 0, final[1].Points)
	assert.Equal(t, 0, final[1].Played)

	assert.Equal(t, http.StatusBadRequest, server.do(t, http.MethodGet, "/standings?scope=weekly", nil).Code)
}

func TestRecalculateHandlers(t *testing.T) {
	server, teardown := setupTestServer(t, "")
	defer teardown()

	t.Run("manual pass", func(t *testing.T) {
		server.publisher.Reset()
		rr := server.do(t, http.MethodPost, "/recalculate", nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, []broadcast.EventType{broadcast.EventTeams, broadcast.EventMatches, broadcast.EventStandings, broadcast.EventPlayers}, server.publisher.Types())
	})

	t.Run("pubsub push", func(t *testing.T) {
		data, err := msgpack.Marshal(pubsub.RecalculateRequest{Reason: "nightly"})
		require.NoError(t, err)
		body := map[string]any{"message": map[string]any{"data": data, "messageId": "42"}, "subscription": "projects/p/subscriptions/s"}

		server.publisher.Reset()
		rr := server.do(t, http.MethodPost, "/pubsub/recalculate", body)
		require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())
		require.Len(t, server.pubsub.ProcessMessageCalls, 1)
		assert.Len(t, server.publisher.PublishCalls, 4)
	})

	t.Run("async pass is queued on pubsub", func(t *testing.T) {
		server.publisher.Reset()
		server.pubsub.Reset()
		rr := server.do(t, http.MethodPost, "/recalculate?async=true", nil)
		require.Equal(t, http.StatusAccepted, rr.Code, rr.Body.String())
		assert.Equal(t, "queued", decode[map[string]string](t, rr)["status"])

		require.Len(t, server.pubsub.SendMessageCalls, 1)
		assert.Equal(t, "matchday-recalculate", server.pubsub.SendMessageCalls[0].Topic)
		assert.Equal(t, pubsub.RecalculateRequest{Reason: "manual"}, server.pubsub.SendMessageCalls[0].Data)
		assert.Empty(t, server.publisher.PublishCalls, "the pass runs when the message is pushed back")
	})

	t.Run("pubsub push with garbage payload", func(t *testing.T) {
		body := map[string]any{"message": map[string]any{"data": []byte{0xc1}}}
		rr := server.do(t, http.MethodPost, "/pubsub/recalculate", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAsyncRecalculateWithoutPubSub(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	store := league.New(db)
	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	proc := processor.New(store, broadcast.NewMock(), notifier.NewMock(), metricsSvc)
	server := NewServer(store, metricsSvc, metrics.NewMetricsHandler(reg), config.Config{}, notifier.NewMock(), proc, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/recalculate?async=true", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/pubsub/recalculate", nil)
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestClearStoreHandler(t *testing.T) {
	server, teardown := setupTestServer(t, "")
	defer teardown()

	server.createTeam(t, "Gone")
	rr := server.do(t, http.MethodPost, "/clear", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = server.do(t, http.MethodGet, "/teams", nil)
	assert.Empty(t, decode[[]league.Team](t, rr))
}

func TestSlackCommandHandlers(t *testing.T) {
	server, teardown := setupTestServer(t, testSlackSigningSecret)
	defer teardown()

	home := server.createTeam(t, "Home")
	server.createPlayer(t, "Morten Voss", home.ID)

	t.Run("standings", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/standings", url.Values{}, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	})

	t.Run("handles found player", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "morten voss")
		req := createSlackCommandRequest(t, "/slack/command/player-stats", form, testSlackSigningSecret)

		server.notifier.Reset()
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{"player-stats"}, server.notifier.FormatCalls)
	})

	t.Run("handles not found player", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "Unknown")
		req := createSlackCommandRequest(t, "/slack/command/player-stats", form, testSlackSigningSecret)

		server.notifier.Reset()
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{"player-not-found"}, server.notifier.FormatCalls)
	})

	t.Run("handles missing player name", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/player-stats", url.Values{}, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects bad signature", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "Morten Voss")
		req := createSlackCommandRequest(t, "/slack/command/player-stats", form, "wrong-secret")
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	server, teardown := setupTestServer(t, "")
	defer teardown()

	server.do(t, http.MethodPost, "/recalculate", nil)
	rr := server.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "matchday_recalculations_total")
}
