package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/stats", s.handleStats)
		api.GET("/issues", s.handleIssues)
		api.GET("/graph", s.handleGraph)
		api.GET("/order", s.handleOrder)
		api.POST("/reload", s.handleReload)

		api.GET("/domains", s.handleDomains)
		api.GET("/domains/:domain/tables", s.handleDomainTables)

		api.GET("/tables", s.handleTables)
		api.GET("/tables/:name", s.handleTable)
		api.GET("/tables/:name/relations", s.handleTableRelations)
	}
}
