package repository

const schemaSQL = `
CREATE TABLE IF NOT EXISTS localities (
	id   SERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS minerals (
	id                    SERIAL PRIMARY KEY,
	name                  TEXT NOT NULL,
	formula               TEXT NOT NULL DEFAULT '',
	class                 TEXT NOT NULL DEFAULT '',
	color                 TEXT NOT NULL DEFAULT '',
	streak_color          TEXT NOT NULL DEFAULT '',
	luster                TEXT NOT NULL DEFAULT '',
	hardness              TEXT NOT NULL DEFAULT '',
	specific_gravity      TEXT NOT NULL DEFAULT '',
	cleavage              TEXT NOT NULL DEFAULT '',
	fracture              TEXT NOT NULL DEFAULT '',
	genesis               TEXT NOT NULL DEFAULT '',
	application           TEXT NOT NULL DEFAULT '',
	additional_properties TEXT NOT NULL DEFAULT '',
	interesting_facts     TEXT NOT NULL DEFAULT '',
	value_category        TEXT NOT NULL DEFAULT '',
	image_url             TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS mineral_localities (
	mineral_id  INTEGER NOT NULL REFERENCES minerals(id) ON DELETE CASCADE,
	locality_id INTEGER NOT NULL REFERENCES localities(id) ON DELETE CASCADE,
	PRIMARY KEY (mineral_id, locality_id)
);

CREATE INDEX IF NOT EXISTS idx_minerals_name ON minerals (name);
`
