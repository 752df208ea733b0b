package response

import "testing"

func TestCalculatePagination(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		limit      int
		total      int64
		wantPage   int
		wantLimit  int
		wantPages  int
	}{
		{"exact division", 1, 20, 40, 1, 20, 2},
		{"partial last page", 2, 20, 45, 2, 20, 3},
		{"empty result", 1, 20, 0, 1, 20, 0},
		{"page below one clamps", 0, 20, 10, 1, 20, 1},
		{"limit below one defaults", 1, 0, 25, 1, 10, 3},
		{"limit above cap clamps", 1, 500, 250, 1, 100, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			meta := CalculatePagination(c.page, c.limit, c.total)
			if meta.CurrentPage != c.wantPage {
				t.Errorf("CurrentPage = %d, want %d", meta.CurrentPage, c.wantPage)
			}
			if meta.PerPage != c.wantLimit {
				t.Errorf("PerPage = %d, want %d", meta.PerPage, c.wantLimit)
			}
			if meta.Total != c.total {
				t.Errorf("Total = %d, want %d", meta.Total, c.total)
			}
			if meta.TotalPages != c.wantPages {
				t.Errorf("TotalPages = %d, want %d", meta.TotalPages, c.wantPages)
			}
		})
	}
}
