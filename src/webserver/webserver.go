package webserver

import (
	"github.com/gin-gonic/gin"
	"github.com/stake-plus/expertdesk/src/config"
	"github.com/stake-plus/expertdesk/src/consult"
	"github.com/stake-plus/expertdesk/src/events"
)

// New builds the gin engine serving the consultation page and JSON API.
func New(cfg config.WebConfig, svc *consult.Service, pub events.Publisher) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	g.SetHTMLTemplate(pageTemplate)
	attachRoutes(g, cfg, svc, pub)
	return g
}
