package pagination

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/binderlca/internal/engine"
)

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  PaginationParams
		wantErr bool
		errMsg  string
	}{
		{name: "valid default", params: *NewPaginationParams()},
		{name: "valid offset mode", params: PaginationParams{Limit: 10, Offset: 20}},
		{name: "valid page mode", params: PaginationParams{Page: 2, PageSize: 10}},
		{
			name:    "negative limit",
			params:  PaginationParams{Limit: -1},
			wantErr: true,
			errMsg:  "limit cannot be negative",
		},
		{
			name:    "limit too large",
			params:  PaginationParams{Limit: MaxLimit + 1},
			wantErr: true,
			errMsg:  "limit must be between",
		},
		{
			name:    "negative offset",
			params:  PaginationParams{Offset: -1},
			wantErr: true,
			errMsg:  "offset cannot be negative",
		},
		{
			name:    "negative page",
			params:  PaginationParams{Page: -1},
			wantErr: true,
			errMsg:  "page cannot be negative",
		},
		{
			name:    "negative page-size",
			params:  PaginationParams{PageSize: -1},
			wantErr: true,
			errMsg:  "page-size cannot be negative",
		},
		{
			name:    "mixed modes",
			params:  PaginationParams{Page: 1, PageSize: 5, Offset: 10},
			wantErr: true,
			errMsg:  "mutually exclusive",
		},
		{
			name:    "page-size without page",
			params:  PaginationParams{PageSize: 10},
			wantErr: true,
			errMsg:  "page must be specified",
		},
		{
			name:    "page without page-size",
			params:  PaginationParams{Page: 2},
			wantErr: true,
			errMsg:  "page-size must be specified",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		sortStr   string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{name: "empty", sortStr: "", wantErr: ErrEmptySortField},
		{name: "field only", sortStr: "total", wantField: "total", wantOrder: "asc"},
		{name: "reduction defaults to best first", sortStr: "reduction", wantField: "reduction", wantOrder: "desc"},
		{name: "explicit asc", sortStr: "reduction:asc", wantField: "reduction", wantOrder: "asc"},
		{name: "explicit desc upper case", sortStr: "ef:DESC", wantField: "ef", wantOrder: "desc"},
		{name: "trims spaces", sortStr: " a4 : desc ", wantField: "a4", wantOrder: "desc"},
		{name: "bad order", sortStr: "total:sideways", wantErr: ErrInvalidSortOrder},
		{name: "too many parts", sortStr: "total:asc:desc", wantErr: ErrInvalidSortFormat},
		{name: "empty field", sortStr: ":asc", wantErr: ErrEmptySortField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, order, err := ParseSort(tt.sortStr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestPaginationParams_Calculations(t *testing.T) {
	page := PaginationParams{Page: 3, PageSize: 4}
	assert.True(t, page.IsPageBased())
	offset, limit := page.CalculateOffsetLimit()
	assert.Equal(t, 8, offset)
	assert.Equal(t, 4, limit)
	assert.Equal(t, 4, page.CalculateTotalPages(13))
	assert.Zero(t, page.CalculateTotalPages(0))

	off := PaginationParams{Offset: 5, Limit: 2}
	assert.False(t, off.IsPageBased())
	offset, limit = off.CalculateOffsetLimit()
	assert.Equal(t, 5, offset)
	assert.Equal(t, 2, limit)
	assert.Zero(t, off.CalculateTotalPages(13))

	assert.False(t, NewPaginationParams().IsEnabled())
	assert.True(t, off.IsEnabled())
}

func TestApply(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name   string
		params PaginationParams
		want   []int
	}{
		{name: "no pagination", params: PaginationParams{}, want: items},
		{name: "limit", params: PaginationParams{Limit: 3}, want: []int{1, 2, 3}},
		{name: "offset and limit", params: PaginationParams{Offset: 5, Limit: 3}, want: []int{6, 7}},
		{name: "offset past end", params: PaginationParams{Offset: 10}, want: []int{}},
		{name: "second page", params: PaginationParams{Page: 2, PageSize: 3}, want: []int{4, 5, 6}},
		{name: "page past end clamps to last", params: PaginationParams{Page: 9, PageSize: 3}, want: []int{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.params, items))
		})
	}

	assert.Empty(t, Apply(PaginationParams{Limit: 2}, []string{}))
}

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		name       string
		params     PaginationParams
		totalCount int
		want       PaginationMeta
	}{
		{
			name:       "first page",
			params:     PaginationParams{Page: 1, PageSize: 10},
			totalCount: 25,
			want:       PaginationMeta{CurrentPage: 1, PageSize: 10, TotalPages: 3, TotalItems: 25, HasNext: true},
		},
		{
			name:       "last page",
			params:     PaginationParams{Page: 3, PageSize: 10},
			totalCount: 25,
			want:       PaginationMeta{CurrentPage: 3, PageSize: 10, TotalPages: 3, TotalItems: 25, HasPrevious: true},
		},
		{
			name:       "offset conversion",
			params:     PaginationParams{Offset: 10, Limit: 10},
			totalCount: 25,
			want: PaginationMeta{
				CurrentPage: 2, PageSize: 10, TotalPages: 3, TotalItems: 25,
				HasPrevious: true, HasNext: true,
			},
		},
		{
			name:       "no limit is a single page",
			params:     PaginationParams{},
			totalCount: 13,
			want:       PaginationMeta{CurrentPage: 1, PageSize: 13, TotalPages: 1, TotalItems: 13},
		},
		{
			name:       "empty result",
			params:     PaginationParams{},
			totalCount: 0,
			want:       PaginationMeta{CurrentPage: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPaginationMeta(tt.params, tt.totalCount))
		})
	}
}

func TestRowSorter(t *testing.T) {
	sorter := NewRowSorter()

	assert.True(t, sorter.IsValidField("total"))
	assert.True(t, sorter.IsValidField("Cement"))
	assert.False(t, sorter.IsValidField("savings"))
	assert.Equal(t, "name", sorter.GetValidFields()[0])
	assert.Len(t, sorter.GetValidFields(), len(engine.SortKeys()))

	q, err := sorter.Query(PaginationParams{Sort: "cement:asc"}, engine.DefaultQuery())
	require.NoError(t, err)
	assert.Equal(t, engine.SortName, q.Sort)
	assert.Equal(t, engine.Asc, q.Dir)

	q, err = sorter.Query(PaginationParams{}, engine.DefaultQuery())
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultQuery(), q, "empty sort keeps the query")

	_, err = sorter.Query(PaginationParams{Sort: "savings"}, engine.DefaultQuery())
	require.ErrorIs(t, err, ErrInvalidSortField)
	assert.Contains(t, err.Error(), "reduction")

	_, err = sorter.Query(PaginationParams{Page: 1}, engine.DefaultQuery())
	require.Error(t, err)
}

func TestAddFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	p := NewPaginationParams()
	AddFlags(cmd, p)

	require.NoError(t, cmd.ParseFlags([]string{"--page", "2", "--page-size", "5", "--sort", "ef:desc"}))
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 5, p.PageSize)
	assert.Equal(t, "ef:desc", p.Sort)
}
