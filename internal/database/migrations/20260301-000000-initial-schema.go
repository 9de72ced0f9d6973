package migrations

func init() {
	Register(Migration{
		Timestamp:   "20260301-000000",
		Description: "Initial schema",
		Up: []string{
			// Chord variations - one row per distinct chord name
			`CREATE TABLE IF NOT EXISTS chord_variations (
				id TEXT PRIMARY KEY,
				chord_name TEXT UNIQUE NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_chord_variations_name ON chord_variations(chord_name)`,

			// Chord positions - one row per (chord_name, fret_position) pair.
			// chord_position_full_name is "{chord_name}-{fret_position}".
			`CREATE TABLE IF NOT EXISTS chord_positions (
				id TEXT PRIMARY KEY,
				chord_variation_id TEXT NOT NULL REFERENCES chord_variations(id) ON DELETE CASCADE,
				chord_name TEXT NOT NULL,
				fret_position TEXT NOT NULL,
				chord_position_full_name TEXT UNIQUE NOT NULL,
				diagram_url_light TEXT,
				diagram_url_dark TEXT,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL,
				UNIQUE(chord_name, fret_position)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_chord_positions_variation ON chord_positions(chord_variation_id)`,
			`CREATE INDEX IF NOT EXISTS idx_chord_positions_name ON chord_positions(chord_name)`,

			// User profiles - id is the auth-provider user ID
			`CREATE TABLE IF NOT EXISTS user_profiles (
				id TEXT PRIMARY KEY,
				email TEXT UNIQUE NOT NULL,
				full_name TEXT,
				subscription_tier TEXT NOT NULL DEFAULT 'freebird',
				subscription_status TEXT NOT NULL DEFAULT 'active',
				stripe_customer_id TEXT,
				daily_searches_used INTEGER NOT NULL DEFAULT 0,
				last_search_reset TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_user_profiles_stripe_customer ON user_profiles(stripe_customer_id)`,

			// App settings - single-row JSON settings keyed by name
			`CREATE TABLE IF NOT EXISTS app_settings (
				setting_key TEXT PRIMARY KEY,
				setting_value TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
		},
	})
}
