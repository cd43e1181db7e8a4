package handlers

import "testing"

func TestParsePaginationDefaults(t *testing.T) {
	cases := []struct {
		page    string
		perPage string
		wantP   int
		wantPP  int
	}{
		{"", "", 1, 10},
		{"2", "25", 2, 25},
		{"0", "-5", 1, 10},
		{"abc", "xyz", 1, 10},
		{"1", "1000000", 1, 100},
	}
	for _, tc := range cases {
		page, perPage := parsePagination(tc.page, tc.perPage)
		if page != tc.wantP || perPage != tc.wantPP {
			t.Errorf("parsePagination(%q, %q) = (%d, %d), expected (%d, %d)",
				tc.page, tc.perPage, page, perPage, tc.wantP, tc.wantPP)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if statusLabel(true) != "Done" {
		t.Error("a complete task must be labeled Done")
	}
	if statusLabel(false) != "Pending" {
		t.Error("an incomplete task must be labeled Pending")
	}
}
