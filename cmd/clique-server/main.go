package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/cliqueapp/clique/pkg/clique/auth"
	"github.com/cliqueapp/clique/pkg/clique/config"
	"github.com/cliqueapp/clique/pkg/clique/database"
	"github.com/cliqueapp/clique/pkg/clique/friends"
	"github.com/cliqueapp/clique/pkg/clique/groups"
	"github.com/cliqueapp/clique/pkg/clique/links"
	"github.com/cliqueapp/clique/pkg/clique/middleware"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"github.com/cliqueapp/clique/pkg/clique/notes"
	"github.com/cliqueapp/clique/pkg/clique/posts"
	"github.com/cliqueapp/clique/pkg/clique/render"
	"github.com/cliqueapp/clique/pkg/clique/users"
)

// @title Clique API
// @version 1.0
// @description A social content-sharing backend: posts published to groups,
// @description notes and links on posts, and a friend graph.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.Connect(cfg.Database.Path); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := database.GetDB()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Each component is constructed once; cross-component dependencies are
	// injected here rather than reached through globals.
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	userSvc := users.NewService(db)
	groupSvc := groups.NewService(db, userSvc)
	postSvc := posts.NewService(db, groupSvc)
	cascade := posts.NewCascade(db, postSvc)
	noteSvc := notes.NewService(db, postSvc)
	linkSvc := links.NewService(db, postSvc)
	friendSvc := friends.NewService(db)

	resolver := render.NewResolver(userSvc, groupSvc)

	// Set up Gin router
	r := gin.Default()
	r.Use(middleware.RequestID())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "clique",
			})
		})

		// Auth routes (public)
		authHandler := auth.NewHandler(db, tokens)
		authHandler.RegisterRoutes(api.Group("/auth"))

		authRequired := auth.Middleware(tokens)

		usersHandler := users.NewHandler(userSvc, resolver)
		usersHandler.RegisterRoutes(api.Group("/users", authRequired))

		groupsHandler := groups.NewHandler(groupSvc, resolver)
		groupsGroup := api.Group("/groups", authRequired)
		groupsHandler.RegisterRoutes(groupsGroup)
		groupsHandler.RegisterMemberRoutes(groupsGroup)

		postsHandler := posts.NewHandler(postSvc, cascade, groupSvc, userSvc, linkSvc, resolver)
		postsHandler.RegisterRoutes(api.Group("/posts", authRequired))

		notesHandler := notes.NewHandler(noteSvc, resolver)
		notesHandler.RegisterRoutes(api.Group("/notes", authRequired))

		linksHandler := links.NewHandler(linkSvc, resolver)
		linksHandler.RegisterRoutes(api.Group("/links", authRequired))

		friendsHandler := friends.NewHandler(friendSvc, userSvc, resolver)
		friendsHandler.RegisterRoutes(
			api.Group("/friends", authRequired),
			api.Group("/friend", authRequired),
		)
	}

	log.Printf("Starting Clique server on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
