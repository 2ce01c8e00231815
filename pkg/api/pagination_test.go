package api

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		req      PageRequest
		want     []int
		hasNext  bool
		hasPrev  bool
		lastPage int
	}{
		{"first page", PageRequest{Page: 1, PageSize: 2}, []int{1, 2}, true, false, 3},
		{"last page", PageRequest{Page: 3, PageSize: 2}, []int{5}, false, true, 3},
		{"past the end", PageRequest{Page: 9, PageSize: 2}, []int{}, false, true, 3},
		{"everything", PageRequest{Page: 1, PageSize: 20}, items, false, false, 1},
		{"offset would overflow", PageRequest{Page: math.MaxInt / 100, PageSize: 200}, []int{}, false, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(items, tt.req)
			assert.Equal(t, tt.want, page.Data)
			assert.Equal(t, 5, page.TotalItems)
			assert.Equal(t, tt.lastPage, page.TotalPages)
			assert.Equal(t, tt.hasNext, page.HasNext)
			assert.Equal(t, tt.hasPrev, page.HasPrev)
		})
	}
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/products?page=0&pageSize=1000", nil)

	req := ParsePagination(c)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, maxPageSize, req.PageSize)
}

func TestParsePagination_HugePageStaysInRange(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/products?page=92233720368547759&pageSize=200", nil)

	req := ParsePagination(c)
	assert.Equal(t, maxPage, req.Page)
	assert.GreaterOrEqual(t, req.Offset(), 0)

	page := Paginate(make([]int, 10), req)
	assert.Empty(t, page.Data)
	assert.Equal(t, 10, page.TotalItems)
}
