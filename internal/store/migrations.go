package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS seen_messages (
	id         TEXT PRIMARY KEY,
	first_seen DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
ALTER TABLE seen_messages ADD COLUMN opened INTEGER NOT NULL DEFAULT 0;

CREATE INDEX IF NOT EXISTS idx_seen_messages_opened ON seen_messages(opened);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
