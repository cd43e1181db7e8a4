package response

import "testing"

func TestNewTaskPageMetadata(t *testing.T) {
	cases := []struct {
		name     string
		total    int
		page     int
		perPage  int
		lastPage int
	}{
		{"empty result still has one page", 0, 1, 10, 1},
		{"exact multiple", 20, 1, 10, 2},
		{"remainder adds a page", 21, 3, 10, 3},
		{"single short page", 3, 1, 10, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := NewTaskPage(nil, tc.page, tc.perPage, tc.total)
			if page.LastPage != tc.lastPage {
				t.Errorf("last_page: expected %d, got %d", tc.lastPage, page.LastPage)
			}
			if page.CurrentPage != tc.page {
				t.Errorf("current_page: expected %d, got %d", tc.page, page.CurrentPage)
			}
			if page.PerPage != tc.perPage {
				t.Errorf("per_page: expected %d, got %d", tc.perPage, page.PerPage)
			}
			if page.Total != tc.total {
				t.Errorf("total: expected %d, got %d", tc.total, page.Total)
			}
			if page.Data == nil {
				t.Error("data must serialize as an empty array, not null")
			}
		})
	}
}
