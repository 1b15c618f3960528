package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
)

func ints(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func ptr(v int) *int { return &v }

func TestNewPaginationParams_Defaults(t *testing.T) {
	p := domain.NewPaginationParams(nil, nil)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, domain.DefaultPageSize, p.Limit)
}

func TestNewPaginationParams_CapsLimit(t *testing.T) {
	p := domain.NewPaginationParams(ptr(3), ptr(500))

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, domain.MaxPageSize, p.Limit)
}

func TestNewPaginationParams_IgnoresNonPositiveLimit(t *testing.T) {
	p := domain.NewPaginationParams(nil, ptr(0))

	assert.Equal(t, domain.DefaultPageSize, p.Limit)
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		page      int
		wantPage  int
		wantPages int
		wantItems []int
	}{
		{name: "first page of twenty", total: 20, page: 1, wantPage: 1, wantPages: 3, wantItems: []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{name: "last partial page", total: 20, page: 3, wantPage: 3, wantPages: 3, wantItems: []int{17, 18, 19, 20}},
		{name: "page past the end clamps to last", total: 20, page: 9, wantPage: 3, wantPages: 3, wantItems: []int{17, 18, 19, 20}},
		{name: "page zero clamps to first", total: 20, page: 0, wantPage: 1, wantPages: 3, wantItems: []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{name: "exact multiple", total: 16, page: 2, wantPage: 2, wantPages: 2, wantItems: []int{9, 10, 11, 12, 13, 14, 15, 16}},
		{name: "empty collection", total: 0, page: 4, wantPage: 1, wantPages: 1, wantItems: []int{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.Paginate(ints(tc.total), domain.PaginationParams{Page: tc.page, Limit: 8})

			assert.Equal(t, tc.wantPage, got.Page)
			assert.Equal(t, tc.wantPages, got.TotalPages)
			assert.Equal(t, tc.total, got.TotalItems)
			assert.Equal(t, tc.wantItems, got.Items)
		})
	}
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	items := ints(3)

	got := domain.Paginate(items, domain.PaginationParams{Page: 1, Limit: 8})
	got.Items[0] = 99

	assert.Equal(t, 1, items[0])
}

func TestPage_Navigation(t *testing.T) {
	first := domain.Paginate(ints(20), domain.PaginationParams{Page: 1, Limit: 8})
	middle := domain.Paginate(ints(20), domain.PaginationParams{Page: 2, Limit: 8})
	last := domain.Paginate(ints(20), domain.PaginationParams{Page: 3, Limit: 8})

	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())
	assert.True(t, middle.HasPrev())
	assert.True(t, middle.HasNext())
	assert.True(t, last.HasPrev())
	assert.False(t, last.HasNext())
	assert.Equal(t, "Page 2 of 3", middle.Label())
}

func TestPage_EmptyShowsPageZero(t *testing.T) {
	got := domain.Paginate([]int{}, domain.PaginationParams{Page: 1, Limit: 8})

	assert.Equal(t, 0, got.DisplayPage())
	assert.False(t, got.HasPrev())
	assert.False(t, got.HasNext())
	assert.Equal(t, "Page 0 of 1", got.Label())
}
