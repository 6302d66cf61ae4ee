package wallet

import "strings"

// Providers never offered for selection.
var excluded = []string{"petra", "google", "apple"}

// Provider listed ahead of all others.
const preferred = "nightly"

// Select filters, dedupes and orders descriptors for presentation. An empty
// result is valid.
func Select(in []Descriptor) []Descriptor {
	return PreferFirst(Dedupe(Filter(in)))
}

// Filter drops descriptors whose name contains an excluded provider.
func Filter(in []Descriptor) []Descriptor {
	out := make([]Descriptor, 0, len(in))
	for _, d := range in {
		if containsAny(d.Name, excluded) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Dedupe keeps the first descriptor for each name.
func Dedupe(in []Descriptor) []Descriptor {
	seen := make(map[string]struct{}, len(in))
	out := make([]Descriptor, 0, len(in))
	for _, d := range in {
		if _, ok := seen[d.Name]; ok {
			continue
		}
		seen[d.Name] = struct{}{}
		out = append(out, d)
	}
	return out
}

// PreferFirst moves preferred wallets to the front, keeping every other
// relative order.
func PreferFirst(in []Descriptor) []Descriptor {
	out := make([]Descriptor, 0, len(in))
	for _, d := range in {
		if IsPreferred(d.Name) {
			out = append(out, d)
		}
	}
	for _, d := range in {
		if !IsPreferred(d.Name) {
			out = append(out, d)
		}
	}
	return out
}

// IsPreferred reports whether name belongs to the preferred provider.
func IsPreferred(name string) bool {
	return strings.Contains(strings.ToLower(name), preferred)
}

func containsAny(name string, subs []string) bool {
	name = strings.ToLower(name)
	for _, s := range subs {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}
