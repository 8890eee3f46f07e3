package storage

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id     INTEGER REFERENCES users(id),
		task_type   TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date        TEXT NOT NULL,
		time        TEXT NOT NULL,
		duration    INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id   BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          BIGSERIAL PRIMARY KEY,
		user_id     BIGINT REFERENCES users(id),
		task_type   TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date        TEXT NOT NULL,
		time        TEXT NOT NULL,
		duration    BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date)`,
}
