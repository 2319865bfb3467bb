package planner

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDistribute(t *testing.T) {
	tests := []struct {
		name    string
		items   []string
		buckets int
		min     int
		want    [][]string
	}{
		{
			name:    "empty input gives empty buckets",
			items:   nil,
			buckets: 4, min: 2,
			want: [][]string{{}, {}, {}, {}},
		},
		{
			name:    "single item is repeated",
			items:   []string{"a"},
			buckets: 4, min: 2,
			want: [][]string{{"a", "a"}, {"a", "a"}, {"a", "a"}, {"a", "a"}},
		},
		{
			name:    "exact fit is round robin",
			items:   []string{"a", "b", "c", "d", "e", "f", "g", "h"},
			buckets: 4, min: 2,
			want: [][]string{{"a", "e"}, {"b", "f"}, {"c", "g"}, {"d", "h"}},
		},
		{
			name:    "short list cycles from the start",
			items:   []string{"a", "b", "c"},
			buckets: 4, min: 2,
			want: [][]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"a", "b"}},
		},
		{
			name:    "long list is not truncated",
			items:   []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"},
			buckets: 4, min: 2,
			want: [][]string{{"a", "e", "i"}, {"b", "f"}, {"c", "g"}, {"d", "h"}},
		},
		{
			name:    "zero minimum does not pad",
			items:   []string{"a", "b"},
			buckets: 4, min: 0,
			want: [][]string{{"a"}, {"b"}, {}, {}},
		},
		{
			name:    "no buckets",
			items:   []string{"a"},
			buckets: 0, min: 2,
			want: [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distribute(tt.items, tt.buckets, tt.min)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Distribute() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDistribute_MinimumHolds(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for buckets := 1; buckets <= 5; buckets++ {
			for minPer := 1; minPer <= 3; minPer++ {
				items := make([]string, n)
				for i := range items {
					items[i] = fmt.Sprintf("item-%d", i)
				}

				got := Distribute(items, buckets, minPer)
				assert.Len(t, got, buckets)

				seen := map[string]bool{}
				total := 0
				for _, b := range got {
					assert.GreaterOrEqual(t, len(b), minPer, "n=%d buckets=%d min=%d", n, buckets, minPer)
					for _, item := range b {
						seen[item] = true
					}
					total += len(b)
				}
				assert.Len(t, seen, n, "every item placed at least once")
				assert.Equal(t, max(n, buckets*minPer), total)
			}
		}
	}
}

func TestDistribute_DoesNotModifyInput(t *testing.T) {
	items := []string{"a", "b"}
	Distribute(items, 4, 2)
	assert.Equal(t, []string{"a", "b"}, items)
}

func TestRebalance(t *testing.T) {
	tests := []struct {
		name  string
		in    [][]string
		items []string
		want  [][]string
	}{
		{
			name:  "takes from surplus then repeats",
			in:    [][]string{{"a", "b", "c"}, {"d"}, {}},
			items: []string{"x"},
			want:  [][]string{{"a", "b"}, {"d", "c"}, {"x", "x"}},
		},
		{
			name:  "repeats own first item without surplus",
			in:    [][]string{{"a"}, {"b"}},
			items: []string{"z"},
			want:  [][]string{{"a", "a"}, {"b", "b"}},
		},
		{
			name:  "already satisfied",
			in:    [][]string{{"a", "b"}, {"c", "d"}},
			items: []string{"a"},
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rebalance(tt.in, tt.items, 2)
			if diff := cmp.Diff(tt.want, tt.in); diff != "" {
				t.Errorf("rebalance() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
