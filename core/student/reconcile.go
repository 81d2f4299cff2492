package student

// Diff is the change needed to turn one enrollment set into another.
type Diff struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

func (d Diff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Reconcile computes the class ids to enroll (desired - current) and to drop (current - desired).
// Both inputs are treated as sets: duplicates are ignored and order does not matter.
// Added keeps the order of desired and Removed the order of current.
func Reconcile(current, desired []string) Diff {
	cur := toSet(current)
	want := toSet(desired)

	diff := Diff{Added: []string{}, Removed: []string{}}
	for _, id := range desired {
		if _, ok := cur[id]; !ok {
			diff.Added = append(diff.Added, id)
			cur[id] = struct{}{} // dedupe
		}
	}
	for _, id := range current {
		if _, ok := want[id]; !ok {
			diff.Removed = append(diff.Removed, id)
			want[id] = struct{}{} // dedupe
		}
	}
	return diff
}

// Apply returns current with the diff applied.
func (d Diff) Apply(current []string) []string {
	removed := toSet(d.Removed)
	out := make([]string, 0, len(current)+len(d.Added))
	seen := make(map[string]struct{}, cap(out))
	for _, id := range append(append([]string{}, current...), d.Added...) {
		if _, ok := removed[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
