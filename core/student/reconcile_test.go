package student

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name        string
		current     []string
		desired     []string
		wantAdded   []string
		wantRemoved []string
	}{
		{name: "create", current: nil, desired: []string{"a", "b"}, wantAdded: []string{"a", "b"}, wantRemoved: []string{}},
		{name: "unchanged", current: []string{"a", "b"}, desired: []string{"b", "a"}, wantAdded: []string{}, wantRemoved: []string{}},
		{name: "swap", current: []string{"a", "b"}, desired: []string{"b", "c"}, wantAdded: []string{"c"}, wantRemoved: []string{"a"}},
		{name: "remove all", current: []string{"a", "b"}, desired: nil, wantAdded: []string{}, wantRemoved: []string{"a", "b"}},
		{name: "duplicates in desired", current: []string{"a"}, desired: []string{"c", "c", "a", "c"}, wantAdded: []string{"c"}, wantRemoved: []string{}},
		{name: "duplicates in current", current: []string{"a", "a", "b"}, desired: []string{"b"}, wantAdded: []string{}, wantRemoved: []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := Reconcile(tt.current, tt.desired)
			assert.Equal(t, tt.wantAdded, diff.Added)
			assert.Equal(t, tt.wantRemoved, diff.Removed)
		})
	}
}

func TestReconcile_properties(t *testing.T) {
	sets := [][]string{
		nil,
		{"a"},
		{"a", "b"},
		{"b", "c", "d"},
		{"d", "a", "a"},
		{"e", "f", "a", "c"},
	}
	for _, current := range sets {
		for _, desired := range sets {
			diff := Reconcile(current, desired)

			// added and removed are disjoint
			removed := toSet(diff.Removed)
			for _, id := range diff.Added {
				if _, ok := removed[id]; ok {
					t.Errorf("Reconcile(%v, %v): %q both added and removed", current, desired, id)
				}
			}

			// current + added - removed == desired
			got := diff.Apply(current)
			want := keys(toSet(desired))
			sort.Strings(got)
			if !assert.Equal(t, want, got, "Reconcile(%v, %v).Apply()", current, desired) {
				return
			}
		}
	}
}

func TestDiff_IsEmpty(t *testing.T) {
	assert.True(t, Reconcile([]string{"a"}, []string{"a"}).IsEmpty())
	assert.False(t, Reconcile(nil, []string{"a"}).IsEmpty())
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
