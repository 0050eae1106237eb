package response_test

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/Falasefemi2/hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name          string
		n, page, size int
		start, end    int
	}{
		{name: "first page", n: 3, page: 1, size: 2, start: 0, end: 2},
		{name: "partial last page", n: 3, page: 2, size: 2, start: 2, end: 3},
		{name: "exact last page", n: 4, page: 2, size: 2, start: 2, end: 4},
		{name: "past the end", n: 3, page: 3, size: 2, start: 3, end: 3},
		{name: "empty list", n: 0, page: 1, size: 10, start: 0, end: 0},
		{name: "huge page", n: 3, page: 1 << 62, size: 10, start: 3, end: 3},
		{name: "max int page", n: 3, page: math.MaxInt, size: math.MaxInt, start: 3, end: 3},
		{name: "huge page size", n: 3, page: 1, size: math.MaxInt, start: 0, end: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := response.Window(tt.n, tt.page, tt.size)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
			assert.LessOrEqual(t, start, end)
		})
	}
}

func TestParsePage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query      string
		page, size int
	}{
		{query: "", page: 1, size: response.DefaultPageSize},
		{query: "?page=3&page_size=25", page: 3, size: 25},
		{query: "?page=-1&page_size=0", page: 1, size: response.DefaultPageSize},
		{query: "?page=abc&page_size=xyz", page: 1, size: response.DefaultPageSize},
		{query: "?page_size=100000", page: 1, size: response.MaxPageSize},
		{query: "?page=99999999999999999999999", page: 1, size: response.DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/items"+tt.query, nil)

			page, size := response.ParsePage(c)
			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.size, size)
		})
	}
}
