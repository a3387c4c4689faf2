package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pioneer/admissions/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// ParsePageParams reads ?page and ?size. Listings are unpaged unless at least
// one of them is present, in which case the other falls back to its default.
// A size of zero means "everything".
func ParsePageParams(c *gin.Context) (page, size int) {
	pageStr, hasPage := c.GetQuery("page")
	sizeStr, hasSize := c.GetQuery("size")
	if !hasPage && !hasSize {
		return 0, 0
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}
	size, err = strconv.Atoi(sizeStr)
	if err != nil || size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

// CalculateOffsetLimit converts a 1-based page into SQL offset and limit.
// ok is false for unpaged requests.
func CalculateOffsetLimit(page, size int) (offset, limit uint64, ok bool) {
	if size <= 0 {
		return 0, 0, false
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	return uint64((page - 1) * size), uint64(size), true
}

// PageBounds returns the slice window [start, end) of a page over total
// in-memory items.
func PageBounds(page, size, total int) (start, end int) {
	offset, limit, ok := CalculateOffsetLimit(page, size)
	if !ok {
		return 0, total
	}
	start, end = int(offset), int(offset+limit)
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return start, end
}

// NewPaginationInfo describes the page that was served. An unpaged listing is
// reported as a single page holding every item.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	if size <= 0 {
		return dto.PaginationInfo{CurrentPage: 1, TotalPages: 1, PageSize: int(totalItems), TotalItems: totalItems}
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := int((totalItems + int64(size) - 1) / int64(size))
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}
