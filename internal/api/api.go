package api

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/akasharts888/audio-transcriptor/pkg/utils"
	api_utils "github.com/ethanbaker/api/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	health_module "github.com/akasharts888/audio-transcriptor/internal/api/modules/health"
	transcript_module "github.com/akasharts888/audio-transcriptor/internal/api/modules/transcript"
)

// DefaultMaxUploadMB matches the upload limit of the original recording client
const DefaultMaxUploadMB = 100

// NewEngine builds the gin engine with CORS and every module's routes
func NewEngine(cfg *utils.Config, service *transcript_module.TranscriptService) *gin.Engine {
	engine := gin.Default()
	engine.NoRoute(api_utils.NoRouteHandler)

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*")),
		AllowMethods:     []string{"OPTIONS", "GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Adding custom modules
	maxUploadBytes := int64(cfg.GetIntWithDefault("MAX_UPLOAD_MB", DefaultMaxUploadMB)) << 20

	health_module.RegisterRoutes(&engine.RouterGroup)
	transcript_module.RegisterRoutes(&engine.RouterGroup, service, maxUploadBytes)

	return engine
}

// allowedOrigins splits a comma separated origin list, dropping blanks and surrounding spaces
func allowedOrigins(value string) []string {
	var origins []string
	for origin := range strings.SplitSeq(value, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Start initializes the transcript service and runs the server until it fails
func Start(cfg *utils.Config) error {
	// Initialized configuration settings
	port := cfg.GetWithDefault("API_PORT", "8000")
	if mode := cfg.Get("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	service, err := transcript_module.Init(cfg)
	if err != nil {
		return err
	}

	engine := NewEngine(cfg, service)

	log.Printf("[API-MAIN]: Listening on port %s", port)
	if err := engine.Run(":" + port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
