package database

type migration struct {
	id          MigrationId
	description string
	query       string
}

var migrations = []migration{
	{
		id:          0,
		description: "Session cookies",
		query: `
			CREATE TABLE cookie (
			    id INTEGER PRIMARY KEY,
			    base_url TEXT,
			    name TEXT,
			    value TEXT,

			    UNIQUE (base_url, name)
			);
		`,
	},
	{
		id:          1,
		description: "Category snapshot",
		query: `
			CREATE TABLE category_snapshot (
			    id INTEGER PRIMARY KEY,
			    user_id INTEGER,
			    category_id INTEGER,
			    position INTEGER,
			    name TEXT,
			    is_public INTEGER,
			    placeholder_image TEXT,
			    placeholder_presigned_url TEXT,
			    tags TEXT,

			    UNIQUE (user_id, category_id)
			);

			CREATE TABLE image_snapshot (
			    id INTEGER PRIMARY KEY,
			    user_id INTEGER,
			    image_id INTEGER,
			    category_id INTEGER,
			    position INTEGER,
			    title TEXT,
			    description TEXT,
			    valuation TEXT,
			    tags TEXT,
			    is_wishlist INTEGER,
			    purchase_url TEXT,
			    path TEXT,
			    presigned_url TEXT,

			    UNIQUE (user_id, image_id)
			);

			CREATE INDEX image_snapshot_category_idx ON image_snapshot (user_id, category_id);
		`,
	},
	{
		id:          2,
		description: "Status",
		query: `
			CREATE TABLE status (
			    key TEXT PRIMARY KEY,
			    timestamp DATETIME
			);
		`,
	},
}
