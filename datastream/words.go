package datastream

import "github.com/go-faker/faker/v4"

// Words returns n distinct words for string-element workloads. The
// underlying vocabulary is small, so larger draws extend collisions by
// concatenation.
func Words(n int) []string {
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		w := faker.Word()
		for _, ok := seen[w]; ok; _, ok = seen[w] {
			w += faker.Word()
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
