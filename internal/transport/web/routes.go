package web

import (
	"net/http"

	"github.com/avstrong/pricelist/internal/pricing"
	"github.com/gin-gonic/gin"
)

func (s *Server) livenessHandler(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func (s *Server) taxonomiesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, pricing.ListTaxonomies())
}

func (s *Server) addRoutes(r *gin.Engine) {
	r.Use(s.loggerMiddleware(), s.recoverMiddleware(), s.corsMiddleware())

	r.GET(s.conf.LivenessEndpoint, s.livenessHandler)
	r.GET("/api/taxonomies/v1", s.taxonomiesHandler)

	api := r.Group("/api/pricelists/v1")
	api.Use(s.capabilitiesMiddleware())
	{
		api.POST("", s.createPricelistHandler)
		api.GET("", s.listPricelistsHandler)
		api.GET("/:id", s.getPricelistHandler)
		api.GET("/:id/issues", s.issuesHandler)

		api.POST("/:id/periods", s.addPeriodHandler)
		api.PATCH("/:id/periods/:periodID", s.updatePeriodHandler)
		api.DELETE("/:id/periods/:periodID", s.removePeriodHandler)
		api.POST("/:id/periods/:periodID/arrival-days/:day", s.toggleArrivalDayHandler)

		api.POST("/:id/rules", s.addRuleHandler)
		api.PATCH("/:id/rules/:ruleID", s.updateRuleHandler)
		api.DELETE("/:id/rules/:ruleID", s.removeRuleHandler)

		api.POST("/:id/activate", s.activateHandler)
		api.GET("/:id/export", s.exportHandler)
		api.POST("/:id/quote", s.quoteHandler)
		api.POST("/:id/suggest", s.suggestHandler)
	}
}
