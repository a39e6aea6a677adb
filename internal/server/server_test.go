package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dice-conquest/internal/database"
	"dice-conquest/internal/game"
	"dice-conquest/internal/protocol"
	"dice-conquest/pkg/maps"
)

func newTestGame(t *testing.T, listeners ...func(game.Event)) *game.Game {
	t.Helper()
	g, err := game.New(game.Options{
		Rows: 4, Cols: 4, SideLength: 20,
		Colors: []game.PlayerColor{game.ColorRed, game.ColorBlue},
		Generator: maps.GeneratorOptions{
			Cells: 6, AverageDice: 4, MaxDice: 8, Fairness: 0.3,
		},
		Settings:  game.Settings{Autoplay: true},
		Seed:      21,
		Listeners: listeners,
	})
	require.NoError(t, err)
	return g
}

func startServer(t *testing.T, db *database.DB) (*Server, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	srv := New(Config{DB: db})
	go srv.Hub().Run(ctx)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestWatcherReceivesFeed(t *testing.T) {
	srv, ts := startServer(t, nil)
	g := newTestGame(t)
	srv.Hub().PublishSnapshot(g.Snapshot())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	w, err := Dial(ctx, WatchURL(ts.URL))
	require.NoError(t, err)
	defer w.Close()

	welcomes := make(chan protocol.WelcomePayload, 4)
	snapshots := make(chan game.Snapshot, 16)
	events := make(chan game.Event, 16)
	errs := make(chan protocol.ErrorPayload, 4)
	w.OnWelcome = func(p protocol.WelcomePayload) { welcomes <- p }
	w.OnSnapshot = func(s game.Snapshot) { snapshots <- s }
	w.OnEvent = func(e game.Event) { events <- e }
	w.OnError = func(p protocol.ErrorPayload) { errs <- p }
	go w.Run(ctx)

	select {
	case p := <-welcomes:
		assert.Equal(t, protocol.Version, p.Version)
		assert.Equal(t, g.ID, p.Match)
		assert.NotEmpty(t, p.WatcherID)
	case <-ctx.Done():
		t.Fatal("no welcome")
	}

	select {
	case s := <-snapshots:
		assert.Equal(t, g.ID, s.Match)
		assert.Len(t, s.Map.Cells, 6)
	case <-ctx.Done():
		t.Fatal("no cached snapshot")
	}

	srv.Hub().PublishEvent(game.Event{Type: game.EventAttackFailed, Match: g.ID, Player: 1, AttackPower: 7})
	select {
	case e := <-events:
		assert.Equal(t, game.EventAttackFailed, e.Type)
		assert.Equal(t, 7, e.AttackPower)
	case <-ctx.Done():
		t.Fatal("no event")
	}

	require.NoError(t, w.RequestSnapshot(ctx))
	select {
	case s := <-snapshots:
		assert.Equal(t, g.ID, s.Match)
	case <-ctx.Done():
		t.Fatal("no requested snapshot")
	}
	assert.Empty(t, errs)
}

func TestRequestSnapshotWithoutMatch(t *testing.T) {
	_, ts := startServer(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	w, err := Dial(ctx, WatchURL(ts.URL))
	require.NoError(t, err)
	defer w.Close()

	errs := make(chan protocol.ErrorPayload, 1)
	w.OnError = func(p protocol.ErrorPayload) { errs <- p }
	go w.Run(ctx)

	require.NoError(t, w.RequestSnapshot(ctx))
	select {
	case p := <-errs:
		assert.Equal(t, protocol.ErrCodeNoMatch, p.Code)
	case <-ctx.Done():
		t.Fatal("no error reply")
	}
}

func TestRunnerRestartsFinishedGames(t *testing.T) {
	g := newTestGame(t)
	r := NewRunner(g, nil, time.Millisecond, 0)
	first := g.ID

	for i := 0; i < 200000 && r.Games() == 0; i++ {
		r.Step()
	}
	require.Equal(t, 1, r.Games(), "game did not finish\n%s", g.Grid().Debug())

	winner, over := g.Winner()
	require.True(t, over)
	assert.Len(t, g.Grid().Owned(winner), g.Grid().Count())

	r.Step()
	assert.NotEqual(t, first, g.ID)
	_, over = g.Winner()
	assert.False(t, over)
}

func TestJournalEndpoints(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "matches.db"))
	require.NoError(t, err)
	defer db.Close()

	rec := database.NewRecorder(db, "test")
	g := newTestGame(t, rec.Record)
	_, ts := startServer(t, db)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/matches")
	require.NoError(t, err)
	var matches []*database.Match
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&matches))
	resp.Body.Close()
	require.Len(t, matches, 1)
	assert.Equal(t, g.ID, matches[0].ID)

	resp, err = http.Get(ts.URL + "/api/matches/" + g.ID + "/events")
	require.NoError(t, err)
	var events []*database.MatchEvent
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&events))
	resp.Body.Close()
	require.NotEmpty(t, events)
	assert.Equal(t, game.EventMapGenerated, events[0].Event.Type)

	resp, err = http.Get(ts.URL + "/api/matches/unknown")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/matches?limit=abc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:30000/ws", WatchURL("localhost:30000"))
	assert.Equal(t, "ws://127.0.0.1:5/ws", WatchURL("http://127.0.0.1:5"))
	assert.Equal(t, "wss://example.com/ws", WatchURL("https://example.com"))
	assert.Equal(t, "ws://host/custom", WatchURL("ws://host/custom"))
}
