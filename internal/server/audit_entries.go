package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/roomledger/roomledger/internal/audit/domain"
	"github.com/roomledger/roomledger/pkg/db/pagination"
)

func (s *Server) listAuditEntries(c *gin.Context) {
	var p pagination.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		AbortWithError(c, &badRequestError{message: "page and page_size must be integers"})
		return
	}

	resp, err := s.auditSvc.List(c.Request.Context(), auditdomain.ListRequest{
		Filter: auditdomain.ListFilter{
			RecordID:  strings.TrimSpace(c.Query("record_id")),
			Operation: strings.TrimSpace(c.Query("operation")),
			StartAt:   strings.TrimSpace(c.Query("start_at")),
			EndAt:     strings.TrimSpace(c.Query("end_at")),
		},
		Pagination: p,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
