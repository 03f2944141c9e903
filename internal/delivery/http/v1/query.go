package v1

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// parsePageQuery reads the page/limit query parameters, defaulting to
// the first page of ten records.
func parsePageQuery(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}

// parseTimeQuery parses an optional timestamp query parameter,
// accepting RFC 3339 or a bare date.
func parseTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse(time.DateOnly, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", name, raw)
		}
	}
	return &t, nil
}
