package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pharos-media/pharos/internal/db"
	"github.com/pharos-media/pharos/internal/http/api"
	adminapi "github.com/pharos-media/pharos/internal/http/api/admin/endpoints"
	tvapi "github.com/pharos-media/pharos/internal/http/api/tv/endpoints"
	"github.com/pharos-media/pharos/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, storageSystem storage.Storage) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		adminapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		adminapi.ContentModule(store, storageSystem),
		adminapi.ScreenModule(store),
		adminapi.PlaylistModule(store),
		adminapi.ScheduleModule(store),
		// session endpoints that require auth
		adminapi.AuthSessionModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/tv",
	},
		tvapi.PairingModule(store),
		tvapi.ScreenModule(store),
	)

	// Static content
	if !env.UseSpaces {
		r.Static("/uploads", "./uploads")
	}
}
