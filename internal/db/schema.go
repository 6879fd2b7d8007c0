package db

// health_reports.table_path and the whole members table are kept for
// compatibility with existing databases; nothing reads or writes them.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS health_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id TEXT NOT NULL,
		report_data TEXT NOT NULL,
		pdf_path TEXT,
		dashboard_path TEXT,
		table_path TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		coach_email TEXT,
		patient_email TEXT,
		status TEXT DEFAULT 'generated'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_health_reports_patient ON health_reports (patient_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS coaches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		phone TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		coach_id INTEGER,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (coach_id) REFERENCES coaches (id)
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS health_reports (
		id SERIAL PRIMARY KEY,
		patient_id TEXT NOT NULL,
		report_data TEXT NOT NULL,
		pdf_path TEXT,
		dashboard_path TEXT,
		table_path TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		coach_email TEXT,
		patient_email TEXT,
		status TEXT NOT NULL DEFAULT 'generated'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_health_reports_patient ON health_reports (patient_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS coaches (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		phone TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS members (
		id SERIAL PRIMARY KEY,
		patient_id TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		coach_id INTEGER REFERENCES coaches (id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}
