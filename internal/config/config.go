package config

import "os"

// Config carries the service settings. Everything comes from the
// environment; a .env file is loaded by main before this runs.
type Config struct {
	Port               string
	Env                string
	ExportsDatabaseURL string
	ArchiveDir         string
}

func Load() Config {
	return Config{
		Port:               getenv("PORT", "3000"),
		Env:                getenv("APP_ENV", "development"),
		ExportsDatabaseURL: os.Getenv("EXPORTS_DATABASE_URL"),
		ArchiveDir:         getenv("ARCHIVE_DIR", "resume-data/generated"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
