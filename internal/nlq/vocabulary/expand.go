package vocabulary

import "strings"

// expand builds "<extra> <base>" phrases for every pair, lower-cased and
// de-duplicated in first-seen order.
func expand(base, extra []string) []string {
	out := make([]string, 0, len(base)*len(extra))
	for _, e := range extra {
		for _, b := range base {
			out = append(out, e+" "+b)
		}
	}
	return dedupe(out)
}

// expandAfter is expand with the extra word trailing: "<base> <extra>".
func expandAfter(base, extra []string) []string {
	out := make([]string, 0, len(base)*len(extra))
	for _, b := range base {
		for _, e := range extra {
			out = append(out, b+" "+e)
		}
	}
	return dedupe(out)
}

// merge concatenates phrase lists with set semantics.
func merge(lists ...[]string) []string {
	var n int
	for _, l := range lists {
		n += len(l)
	}
	out := make([]string, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return dedupe(out)
}

func dedupe(phrases []string) []string {
	seen := make(map[string]struct{}, len(phrases))
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.Join(strings.Fields(p), " "))
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
