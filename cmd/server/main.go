package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pharos-media/pharos/internal/db"
	"github.com/pharos-media/pharos/internal/http/middleware"
	"github.com/pharos-media/pharos/internal/redis"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	env := LoadEnvironment()

	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	store := db.NewStore(db.DB)

	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	} else {
		log.Warn().Msg("REDIS_ADDRESS not set, pairing codes and playlist caching disabled")
	}

	if env.MQTTBrokerURL != "" {
		middleware.SetBrokerURL(env.MQTTBrokerURL)
		if err := middleware.InitMQTT("pharos-server"); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MQTT broker")
		}
		defer middleware.CleanupMQTT()
	} else {
		log.Warn().Msg("MQTT_BROKER_URL not set, screens will not receive refresh commands")
	}

	storageSystem := InitStorage(env)

	r := gin.Default()
	RegisterRoutes(r, env, store, storageSystem)

	log.Info().Str("address", env.ServerAddress).Msg("starting server")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
