package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Critiques table - one row per analysis of the drawing surface.
		// The drawing itself is not stored; only the feedback text and
		// enough context to show a history.
		`CREATE TABLE IF NOT EXISTS critiques (
			id TEXT PRIMARY KEY,
			stroke_count INTEGER NOT NULL,
			feedback TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - application settings as key-value pairs
		// (brush color, brush width).
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_critiques_created_at ON critiques(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
