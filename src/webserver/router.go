package webserver

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stake-plus/expertdesk/src/config"
	"github.com/stake-plus/expertdesk/src/consult"
	"github.com/stake-plus/expertdesk/src/events"
)

func attachRoutes(r *gin.Engine, cfg config.WebConfig, svc *consult.Service, pub events.Publisher) {
	if corsCfg, ok := corsConfig(cfg.AllowedOrigins); ok {
		r.Use(cors.New(corsCfg))
	}

	h := NewHandlers(svc, pub)

	r.GET("/", h.Page)
	r.POST("/consult", h.SubmitForm)
	r.GET("/healthz", h.Health)

	v1 := r.Group("/v1")
	{
		v1.GET("/personas", h.ListPersonas)
		v1.POST("/consult", h.ConsultJSON)
	}
}

// corsConfig keeps only origins gin-contrib/cors accepts; "*" allows any origin.
func corsConfig(origins []string) (cors.Config, bool) {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		switch {
		case o == "*":
			cfg.AllowAllOrigins = true
			cfg.AllowOrigins = nil
			return cfg, true
		case strings.HasPrefix(o, "http://"), strings.HasPrefix(o, "https://"):
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}
	return cfg, len(cfg.AllowOrigins) > 0
}
