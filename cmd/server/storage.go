package main

import (
	"github.com/rs/zerolog/log"

	"github.com/pharos-media/pharos/internal/storage"
)

func InitStorage(env Environment) storage.Storage {
	if env.UseSpaces {
		spaces, err := storage.NewSpacesStorage(
			env.SpacesEndpoint,
			env.SpacesRegion,
			env.SpacesBucket,
			env.SpacesCDNURL,
			env.SpacesAccessKey,
			env.SpacesSecretKey,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize spaces storage")
		}
		log.Info().Str("bucket", env.SpacesBucket).Msg("using spaces storage")
		return spaces
	}

	return storage.NewLocalStorage("./uploads")
}
