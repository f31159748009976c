package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeClampsBounds(t *testing.T) {
	tests := []struct {
		name     string
		in       Pagination
		wantPage int
		wantSize int
	}{
		{"defaults applied", Pagination{}, 1, 50},
		{"negative page", Pagination{Page: -3, PageSize: 10}, 1, 10},
		{"size capped", Pagination{Page: 2, PageSize: 9000}, 2, 500},
		{"within bounds", Pagination{Page: 4, PageSize: 25}, 4, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize(50, 500)
			require.Equal(t, tt.wantPage, got.Page)
			require.Equal(t, tt.wantSize, got.PageSize)
		})
	}
}

func TestOffset(t *testing.T) {
	require.Equal(t, 0, Pagination{Page: 1, PageSize: 20}.Offset())
	require.Equal(t, 40, Pagination{Page: 3, PageSize: 20}.Offset())
	require.Equal(t, 0, Pagination{Page: 0, PageSize: 20}.Offset())
}

func TestBuildPageInfo(t *testing.T) {
	tests := []struct {
		name        string
		p           Pagination
		total       int64
		wantPages   int
		hasNext     bool
		hasPrevious bool
	}{
		{"last partial page", Pagination{Page: 3, PageSize: 20}, 45, 3, false, true},
		{"first page", Pagination{Page: 1, PageSize: 20}, 45, 3, true, false},
		{"middle page", Pagination{Page: 2, PageSize: 20}, 45, 3, true, true},
		{"exact fit", Pagination{Page: 2, PageSize: 20}, 40, 2, false, true},
		{"no records", Pagination{Page: 1, PageSize: 20}, 0, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := BuildPageInfo(tt.p, tt.total)
			require.Equal(t, tt.total, info.TotalRecords)
			require.Equal(t, tt.wantPages, info.TotalPages)
			require.Equal(t, tt.hasNext, info.HasNext)
			require.Equal(t, tt.hasPrevious, info.HasPrevious)
		})
	}
}
