package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPagesNeverZero(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(1, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
}

func TestBuildPageInfoBoundaries(t *testing.T) {
	info := BuildPageInfo(Pagination{Page: 1, PageSize: 20}, 45)
	assert.Equal(t, 3, info.TotalPages)
	assert.False(t, info.HasPrevious)
	assert.True(t, info.HasNext)

	info = BuildPageInfo(Pagination{Page: 3, PageSize: 20}, 45)
	assert.True(t, info.HasPrevious)
	assert.False(t, info.HasNext)
}

func TestNormalizeClampsPageSize(t *testing.T) {
	p := Pagination{Page: 0, PageSize: 500}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPageSize, p.PageSize)
}
