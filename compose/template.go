package compose

import (
	"regexp"
	"sort"
	"strings"
)

// placeholderPattern matches {{identifier}}. Regexp values carry no match
// position between calls, so extraction is safe to repeat and share.
var placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Placeholder returns the literal placeholder for name.
func Placeholder(name string) string {
	return "{{" + name + "}}"
}

// ExtractVariables returns the placeholder names in template in order of
// appearance. Duplicates are kept.
func ExtractVariables(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// UniqueVariables is ExtractVariables with later duplicates dropped.
func UniqueVariables(template string) []string {
	names := ExtractVariables(template)
	seen := make(map[string]bool, len(names))
	unique := names[:0]
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	return unique
}

// Substitute replaces every {{key}} in template with vars[key].
//
// The template is scanned once, so values are inserted verbatim and never
// expanded again. Placeholders without a matching key stay as written.
func Substitute(template string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(template, "{{") {
		return template
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	// Longest placeholder first so overlapping keys resolve the same way
	// regardless of map iteration order.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, Placeholder(k), vars[k])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
