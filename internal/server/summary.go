package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	summarydomain "github.com/roomledger/roomledger/internal/summary/domain"
)

func (s *Server) monthlySummary(c *gin.Context) {
	startMonth, err := parseOptionalMonth(c, "start_month")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	endMonth, err := parseOptionalMonth(c, "end_month")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.summarySvc.Monthly(c.Request.Context(), summarydomain.Request{
		StartMonth: startMonth,
		EndMonth:   endMonth,
		Kind:       strings.TrimSpace(c.Query("kind")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
