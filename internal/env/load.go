package env

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// LoadEnv reads a .env file when one is present. Deployed environments
// set variables directly, so a missing file is fine.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}
}
