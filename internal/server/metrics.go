package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	metricdomain "github.com/roomledger/roomledger/internal/metric/domain"
	"github.com/roomledger/roomledger/internal/userctx"
	"github.com/roomledger/roomledger/pkg/db/pagination"
)

func (s *Server) submitRecord(c *gin.Context) {
	var req metricdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, &badRequestError{message: "request body is not valid JSON"})
		return
	}

	actorID, _ := userctx.ActorIDFromContext(c.Request.Context())

	record, err := s.metricSvc.Submit(c.Request.Context(), actorID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (s *Server) getRecord(c *gin.Context) {
	id, err := parseRecordID(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	record, err := s.metricSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) updateRecord(c *gin.Context) {
	id, err := parseRecordID(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req metricdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, &badRequestError{message: "request body is not valid JSON"})
		return
	}

	record, err := s.metricSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) listRecords(c *gin.Context) {
	var p pagination.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		AbortWithError(c, &badRequestError{message: "page and page_size must be integers"})
		return
	}

	startDate, err := parseOptionalDate(c, "start_date")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	endDate, err := parseOptionalDate(c, "end_date")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	req := metricdomain.ListRequest{
		StartDate:  startDate,
		EndDate:    endDate,
		Kind:       strings.TrimSpace(c.Query("kind")),
		SortBy:     strings.TrimSpace(c.Query("sort_by")),
		SortDir:    strings.TrimSpace(c.Query("sort_order")),
		Pagination: p,
	}

	resp, err := s.metricSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
