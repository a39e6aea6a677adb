package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dice-conquest/internal/game"
	"dice-conquest/pkg/maps"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "journal", "matches.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testMap() *maps.RawMap {
	return &maps.RawMap{
		Rows: 2, Cols: 2, Side: 20,
		Cells: []maps.RawCell{
			{Row: 0, Col: 0, Owner: 0, Dice: 3},
			{Row: 1, Col: 1, Owner: 1, Dice: 4},
		},
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.db")
	db, err := New(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.conn.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, len(migrations), count)
}

func TestMatchLifecycle(t *testing.T) {
	db := openTestDB(t)

	m := &Match{ID: "m1", Seed: 42, Players: 2, Cells: 2, Attempts: 3, Map: testMap(), Source: "test"}
	require.NoError(t, db.CreateMatch(m))

	got, err := db.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, MatchPlaying, got.Status)
	assert.Equal(t, int64(42), got.Seed)
	assert.Equal(t, 3, got.Attempts)
	assert.Equal(t, testMap(), got.Map)
	assert.Nil(t, got.Winner)
	assert.Nil(t, got.EndedAt)

	require.NoError(t, db.EndMatch("m1", 1, 17))
	got, err = db.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, MatchFinished, got.Status)
	require.NotNil(t, got.Winner)
	assert.Equal(t, 1, *got.Winner)
	assert.Equal(t, 17, got.Rounds)
	assert.NotNil(t, got.EndedAt)

	// Closed matches cannot be closed again.
	assert.ErrorIs(t, db.AbandonMatch("m1", 20), ErrMatchNotFound)

	_, err = db.GetMatch("nope")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestListMatchesNewestFirst(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, db.CreateMatch(&Match{
			ID: id, Map: testMap(), CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	matches, err := db.ListMatches(2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "c", matches[0].ID)
	assert.Equal(t, "b", matches[1].ID)
}

func TestEventsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.CreateMatch(&Match{ID: "m1", Map: testMap()}))

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, db.AddEvent(game.Event{Type: game.EventRoundStart, Match: "m1", Round: 1, At: at}))
	require.NoError(t, db.AddEvent(game.Event{
		Type: game.EventAttackSuccess, Match: "m1", Round: 1, Player: 1,
		From: maps.Coord{Row: 1, Col: 1}, To: maps.Coord{Row: 0, Col: 0},
		AttackPower: 14, DefendPower: 9, Defender: 0, Dice: 3, At: at.Add(time.Second),
	}))

	events, err := db.GetMatchEvents("m1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "round_start", events[0].EventType)
	assert.Equal(t, game.EventAttackSuccess, events[1].Event.Type)
	assert.Equal(t, 14, events[1].Event.AttackPower)
	assert.Equal(t, maps.Coord{Row: 0, Col: 0}, events[1].Event.To)
	assert.True(t, at.Add(time.Second).Equal(events[1].CreatedAt))

	since, err := db.GetMatchEventsSince("m1", events[0].ID)
	require.NoError(t, err)
	require.Len(t, since, 1)
	assert.Equal(t, events[1].ID, since[0].ID)

	require.NoError(t, db.ClearMatchEvents("m1"))
	events, err = db.GetMatchEvents("m1")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRecorderFollowsGame(t *testing.T) {
	db := openTestDB(t)
	rec := NewRecorder(db, "test")

	g, err := game.New(game.Options{
		Rows: 6, Cols: 6, SideLength: 20,
		Colors: []game.PlayerColor{game.ColorRed, game.ColorBlue},
		Generator: maps.GeneratorOptions{
			Cells: 12, AverageDice: 4, MaxDice: 8, Fairness: 0.3,
		},
		Settings:  game.Settings{FightDelay: 0},
		Seed:      9,
		Listeners: []func(game.Event){rec.Record},
	})
	require.NoError(t, err)
	first := g.ID

	m, err := db.GetMatch(first)
	require.NoError(t, err)
	assert.Equal(t, int64(9), m.Seed)
	assert.Equal(t, 2, m.Players)
	assert.Equal(t, 12, m.Cells)
	assert.Equal(t, "test", m.Source)
	assert.Len(t, m.Map.Cells, 12)

	require.NoError(t, g.RequestNewMap())

	m, err = db.GetMatch(first)
	require.NoError(t, err)
	assert.Equal(t, MatchAbandoned, m.Status)

	events, err := db.GetMatchEvents(first)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, game.EventMapGenerated, events[0].Event.Type)
	assert.Nil(t, events[0].Event.Map)

	matches, err := db.ListMatches(10)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}
