package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Profiles table - named calibration profiles; at most one is
		// active at a time
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			sensitivity REAL NOT NULL DEFAULT 1.5,
			smoothing REAL NOT NULL DEFAULT 0.6,
			dwell_time_ms INTEGER NOT NULL DEFAULT 1000,
			click_method TEXT NOT NULL CHECK(click_method IN ('blink', 'mouth')) DEFAULT 'blink',
			active INTEGER NOT NULL DEFAULT 0,
			samples INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Calibration samples table - raw recorded neutral-pose signal
		// frames used to derive a per-user baseline
		`CREATE TABLE IF NOT EXISTS calibration_samples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			sample_index INTEGER NOT NULL,
			data TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Bindings table - plugin actions to execute when a UI element
		// is activated
		`CREATE TABLE IF NOT EXISTS bindings (
			id TEXT PRIMARY KEY,
			element_id TEXT NOT NULL,
			plugin_name TEXT NOT NULL,
			action_name TEXT NOT NULL,
			config TEXT NOT NULL DEFAULT '{}',
			enabled INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_calibration_samples_profile_id ON calibration_samples(profile_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bindings_element_id ON bindings(element_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
