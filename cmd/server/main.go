package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatupopzz/game-soul/internal/catalog"
	"github.com/fatupopzz/game-soul/internal/graph"
	"github.com/fatupopzz/game-soul/internal/questionnaire"
	"github.com/fatupopzz/game-soul/internal/recommend"
	"github.com/fatupopzz/game-soul/pkg/config"
	apperrors "github.com/fatupopzz/game-soul/pkg/errors"
	"github.com/fatupopzz/game-soul/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting recommendation API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	// Verify Neo4j connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	// Initialize dependencies
	cat := catalog.New()
	repo := graph.NewRepository(driver)
	builder := questionnaire.NewBuilder(cat)
	engine := recommend.NewEngine(repo)
	explorer := recommend.NewExplorationSelector(repo, rand.New(rand.NewSource(time.Now().UnixNano())))
	feedback := recommend.NewFeedbackProcessor(repo)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api")
	{
		// Questionnaire definition plus available reference data. The
		// datastore lists win; the static catalog covers for a cold or
		// unreachable database.
		api.GET("/questionnaire", func(c *gin.Context) {
			ctx := c.Request.Context()

			var emotions, characteristics []string
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				emotions, err = repo.ListEmotionTypes(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				characteristics, err = repo.ListCharacteristicNames(gctx)
				return err
			})
			if err := g.Wait(); err != nil {
				log.Warn("Reference data query failed, serving static catalog", zap.Error(err))
			}
			if len(emotions) == 0 {
				emotions = cat.EmotionTypes()
			}
			if len(characteristics) == 0 {
				characteristics = cat.CharacteristicNames()
			}

			c.JSON(http.StatusOK, gin.H{
				"preguntas":                 builder.Questions(),
				"emociones_disponibles":     emotions,
				"caracteristicas_evitables": characteristics,
				"rangos_duracion":           cat.DurationBands(),
			})
		})

		// Submit questionnaire answers: build the profile, persist it and
		// return ranked recommendations.
		api.POST("/questionnaire/submit", func(c *gin.Context) {
			ctx := c.Request.Context()

			var req struct {
				UserID       string            `json:"user_id" binding:"required"`
				Answers      map[string]string `json:"answers" binding:"required"`
				Dealbreakers []string          `json:"dealbreakers"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			profile, err := builder.Build(req.UserID, req.Answers)
			if err != nil {
				respondError(c, log, err)
				return
			}

			// Persistence failures must not block the recommendation
			// response; the profile is rebuilt on the next submission anyway.
			if err := repo.SaveEmotionalProfile(ctx, profile); err != nil {
				log.Warn("Failed to persist emotional profile",
					zap.String("user_id", req.UserID),
					zap.Error(err),
				)
			}

			minMinutes := profile.DurationBand.MinMinutes
			recs, err := engine.RecommendForProfile(ctx, profile.Emotions, profile.DominantEmotion, req.UserID, minMinutes, req.Dealbreakers, cfg.RecommendationLimit)
			if err != nil {
				log.Error("Recommendation queries exhausted, serving curated fallback",
					zap.String("dominant_emotion", profile.DominantEmotion),
					zap.Error(err),
				)
				recs = recommend.Fallback(profile.DominantEmotion)
			}

			response := gin.H{
				"perfil_emocional":            profile,
				"recomendaciones_emocionales": recs,
			}

			if len(recs) < cfg.ExplorationThreshold {
				exploration, err := explorer.Select(ctx, req.UserID, minMinutes, cfg.ExplorationLimit)
				if err != nil {
					log.Warn("Exploration selection failed",
						zap.String("user_id", req.UserID),
						zap.Error(err),
					)
				} else if len(exploration) > 0 {
					response["recomendaciones_exploracion"] = exploration
				}
			}

			c.JSON(http.StatusOK, response)
		})

		// Direct single-emotion recommendations, no questionnaire needed
		api.POST("/recommendations", func(c *gin.Context) {
			ctx := c.Request.Context()

			var req struct {
				Emotion            string   `json:"estado_emocional" binding:"required"`
				UserID             string   `json:"user_id"`
				AvailableMinutes   *int     `json:"tiempo_disponible"`
				Dealbreakers       []string `json:"dealbreakers"`
				IncludeExploration bool     `json:"incluir_exploracion"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			minMinutes := cfg.DefaultMinutes
			if req.AvailableMinutes != nil {
				minMinutes = *req.AvailableMinutes
				if minMinutes < 5 || minMinutes > 1440 {
					c.JSON(http.StatusBadRequest, gin.H{"error": "tiempo_disponible must be between 5 and 1440 minutes"})
					return
				}
			}

			recs, err := engine.RecommendForEmotion(ctx, req.Emotion, minMinutes, req.Dealbreakers, cfg.RecommendationLimit)
			if err != nil {
				log.Error("Recommendation queries exhausted, serving curated fallback",
					zap.String("emotion", req.Emotion),
					zap.Error(err),
				)
				recs = recommend.Fallback(req.Emotion)
			}

			response := gin.H{
				"recomendaciones_emocionales": recs,
			}

			// Exploration needs play history, so anonymous requests skip it
			if req.IncludeExploration && req.UserID != "" && len(recs) < cfg.ExplorationThreshold {
				exploration, err := explorer.Select(ctx, req.UserID, minMinutes, cfg.ExplorationLimit)
				if err != nil {
					log.Warn("Exploration selection failed",
						zap.String("user_id", req.UserID),
						zap.Error(err),
					)
				} else if len(exploration) > 0 {
					response["recomendaciones_exploracion"] = exploration
				}
			}

			c.JSON(http.StatusOK, response)
		})

		// Play feedback: records the play and nudges resonance weights
		api.POST("/feedback", func(c *gin.Context) {
			ctx := c.Request.Context()

			var req struct {
				UserID              string   `json:"user_id" binding:"required"`
				GameID              string   `json:"game_id" binding:"required"`
				Satisfaction        int      `json:"satisfaction" binding:"required"`
				EmotionsExperienced []string `json:"emotions_experienced"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			if err := feedback.Process(ctx, req.UserID, req.GameID, req.Satisfaction, req.EmotionsExperienced); err != nil {
				respondError(c, log, err)
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"message": "Feedback registrado correctamente",
			})
		})

		// Register a new user with a generated id
		api.POST("/users", func(c *gin.Context) {
			ctx := c.Request.Context()

			var req struct {
				Username string `json:"nombre" binding:"required"`
				Email    string `json:"email"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			userID := uuid.New().String()
			if err := repo.RegisterUser(ctx, userID, req.Username, req.Email); err != nil {
				respondError(c, log, err)
				return
			}

			c.JSON(http.StatusCreated, gin.H{
				"user_id": userID,
				"status":  "created",
			})
		})

		// Read back a user's persisted emotional profile
		api.GET("/users/:id/profile", func(c *gin.Context) {
			ctx := c.Request.Context()
			userID := c.Param("id")

			profile, err := repo.GetUserProfile(ctx, userID, cat)
			if err != nil {
				respondError(c, log, err)
				return
			}

			c.JSON(http.StatusOK, profile)
		})

		// Datastore diagnostics: node and edge populations
		api.GET("/diagnose", func(c *gin.Context) {
			ctx := c.Request.Context()

			counts, err := repo.CountReferenceData(ctx)
			if err != nil {
				respondError(c, log, err)
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
				"counts": counts,
			})
		})
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// respondError maps typed application errors to HTTP statuses
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case apperrors.IsErrorType(err, apperrors.ErrorTypeValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}
