package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{name: "passthrough", page: 3, limit: 25, wantPage: 3, wantLimit: 25},
		{name: "zero values", page: 0, limit: 0, wantPage: 1, wantLimit: 10},
		{name: "negative values", page: -2, limit: -5, wantPage: 1, wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := normalizePage(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page       int
		limit      int
		wantPages  int
	}{
		{name: "partial last page", total: 42, page: 2, limit: 10, wantPages: 5},
		{name: "exact multiple", total: 40, page: 1, limit: 10, wantPages: 4},
		{name: "empty", total: 0, page: 1, limit: 10, wantPages: 0},
		{name: "single record", total: 1, page: 1, limit: 10, wantPages: 1},
		{name: "limit one", total: 7, page: 7, limit: 1, wantPages: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paginate(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}
