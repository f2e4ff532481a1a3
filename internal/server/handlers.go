package server

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxview/internal/output"
	"go.uber.org/zap"
)

func (s *Server) serveAsset(name, contentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := fs.ReadFile(s.assets, name)
		if err != nil {
			s.logger.Error("Missing embedded asset", zap.String("asset", name), zap.Error(err))
			c.String(http.StatusNotFound, "404 Not Found")
			return
		}
		c.Data(http.StatusOK, contentType, data)
	}
}

// handleCalculate answers /api with the tax breakdown for one income
func (s *Server) handleCalculate(c *gin.Context) {
	income, err := ParseIncome(c.Request.URL.Query())
	if err != nil {
		s.rejectIncome(c, err)
		return
	}

	report := s.store.Calculator().Calculate(income)
	c.JSON(http.StatusOK, output.NewPayload(&report))
}

// handleChart answers /api/chart with the stacked bar chart for one income
func (s *Server) handleChart(c *gin.Context) {
	income, err := ParseIncome(c.Request.URL.Query())
	if err != nil {
		s.rejectIncome(c, err)
		return
	}

	report := s.store.Calculator().Calculate(income)
	c.JSON(http.StatusOK, output.NewStackedBarChart(report.BracketDetails, report.TaxableIncome))
}

func (s *Server) handleHealth(c *gin.Context) {
	facts := s.store.Calculator().Facts
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"taxYear":      facts.TaxYear,
		"filingStatus": facts.FilingStatus,
	})
}

func (s *Server) rejectIncome(c *gin.Context, err error) {
	if !IsClientError(err) {
		s.logger.Error("Unexpected income error", zap.String("correlation_id", GetCorrelationID(c)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	s.logger.Debug("Rejected income",
		zap.String("correlation_id", GetCorrelationID(c)),
		zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": ClientMessage(err)})
}
