package database

type migration struct {
	id   int
	name string
	sql  string
}

var migrations = []migration{
	{
		id:   1,
		name: "match_journal",
		sql: `
			-- One row per generated map
			CREATE TABLE matches (
				id TEXT PRIMARY KEY,
				seed INTEGER NOT NULL,
				players INTEGER NOT NULL,
				cells INTEGER NOT NULL,
				attempts INTEGER NOT NULL DEFAULT 1,
				map_json TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'playing',
				winner INTEGER,
				rounds INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				ended_at DATETIME
			);
			CREATE INDEX idx_matches_status ON matches(status);

			-- Engine events in emission order
			CREATE TABLE match_events (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				match_id TEXT NOT NULL,
				round INTEGER NOT NULL,
				player INTEGER NOT NULL,
				event_type TEXT NOT NULL,
				event_json TEXT NOT NULL,
				created_at DATETIME NOT NULL,
				FOREIGN KEY (match_id) REFERENCES matches(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_match_events_match ON match_events(match_id);
		`,
	},
	{
		id:   2,
		name: "add_match_source_column",
		sql: `
			-- Where the match was played: "client" or "server"
			ALTER TABLE matches ADD COLUMN source TEXT NOT NULL DEFAULT 'server';
		`,
	},
}
