package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

func parseOptionalDate(c *gin.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, &badRequestError{message: fmt.Sprintf("%s must use the YYYY-MM-DD format", name)}
	}
	return &value, nil
}

func parseOptionalMonth(c *gin.Context, name string) (string, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01", raw); err != nil {
		return "", &badRequestError{message: fmt.Sprintf("%s must use the YYYY-MM format", name)}
	}
	return raw, nil
}

func parseRecordID(c *gin.Context, name string) (snowflake.ID, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, &badRequestError{message: fmt.Sprintf("%s must be a numeric record id", name)}
	}
	return id, nil
}
