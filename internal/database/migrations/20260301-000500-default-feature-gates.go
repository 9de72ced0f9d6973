package migrations

func init() {
	Register(Migration{
		Timestamp:   "20260301-000500",
		Description: "Seed default feature_gates setting",
		Up: []string{
			// Mirrors the hard-coded defaults in internal/constants so a
			// fresh install has an editable row. INSERT OR IGNORE keeps an
			// operator-edited row intact.
			`INSERT OR IGNORE INTO app_settings (setting_key, setting_value, updated_at) VALUES (
				'feature_gates',
				'{"daily_search_limits":{"freebird":8,"roadie":24,"hero":100},"daily_watch_time_limits":{"freebird":60,"roadie":180,"hero":480},"favorite_limits":{"freebird":0,"roadie":12,"hero":-1}}',
				strftime('%Y-%m-%dT%H:%M:%SZ','now')
			)`,
		},
	})
}
