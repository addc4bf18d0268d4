package httpkit

import "testing"

func TestNewPageTotalPages(t *testing.T) {
	cases := []struct {
		total, pageSize, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{5, 0, 0},
	}
	for _, tc := range cases {
		env := NewPage([]int{}, tc.total, 1, tc.pageSize)
		if env.TotalPages != tc.want {
			t.Errorf("NewPage(total=%d, pageSize=%d): TotalPages = %d, want %d",
				tc.total, tc.pageSize, env.TotalPages, tc.want)
		}
	}
}

func TestNewPageNilItemsBecomesEmptySlice(t *testing.T) {
	env := NewPage[string](nil, 0, 1, 10)
	if env.Items == nil {
		t.Fatal("Items should never be nil in the wire envelope")
	}
}
