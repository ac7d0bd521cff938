// Package links is the authority on internal SEO links inside generated job
// descriptions. Each description may link to every dedicated page at most
// once; content that repeats a destination is rejected from persistence, never
// silently truncated.
package links

import (
	"errors"
	"regexp"
	"strings"
)

// ErrDuplicateLinks flags generated content that links to the same destination
// page more than once.
var ErrDuplicateLinks = errors.New("description links to the same page more than once")

// PagePrefix is the shared prefix of every internal destination page.
const PagePrefix = "/fractional-"

// Pages is the fixed set of destination pages generated content may link to:
// one generic jobs page plus one dedicated page per role category.
var Pages = []string{
	"/fractional-jobs",
	"/fractional-cfo-jobs-uk",
	"/fractional-cmo-jobs-uk",
	"/fractional-cto-jobs-uk",
	"/fractional-coo-jobs-uk",
}

// legacyRewrites maps old query-parameter URLs to their dedicated pages. Each
// dedicated page is a genuinely different page, which is what gives the links
// SEO value.
var legacyRewrites = map[string]string{
	"/fractional-jobs?role=CFO": "/fractional-cfo-jobs-uk",
	"/fractional-jobs?role=CMO": "/fractional-cmo-jobs-uk",
	"/fractional-jobs?role=CTO": "/fractional-cto-jobs-uk",
	"/fractional-jobs?role=COO": "/fractional-coo-jobs-uk",
}

// linkTarget matches the URL half of a markdown link whose target is an
// internal page, e.g. the "(/fractional-cfo-jobs-uk)" in
// "[fractional CFO](/fractional-cfo-jobs-uk)".
var linkTarget = regexp.MustCompile(`\]\((/fractional-[^)]*)\)`)

// Scan returns every internal link target in text, in order of appearance,
// duplicates included.
func Scan(text string) []string {
	matches := linkTarget.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	targets := make([]string, 0, len(matches))
	for _, m := range matches {
		targets = append(targets, m[1])
	}
	return targets
}

// UniqueTargets returns the distinct internal link targets in text, in first
// appearance order.
func UniqueTargets(text string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, t := range Scan(text) {
		if !seen[t] {
			seen[t] = true
			unique = append(unique, t)
		}
	}
	return unique
}

// HasDuplicates reports whether any destination page appears more than once.
func HasDuplicates(text string) bool {
	targets := Scan(text)
	return len(targets) != len(UniqueTargets(text))
}

// Verify returns ErrDuplicateLinks when text repeats a destination page, nil
// otherwise. The batch classifier calls this before persisting any generated
// description.
func Verify(text string) error {
	if HasDuplicates(text) {
		return ErrDuplicateLinks
	}
	return nil
}

// Repair rewrites legacy query-parameter link targets to their dedicated page
// URLs and returns the number of replacements made. A pure, order-independent
// substitution: applying it twice yields the same result as once.
func Repair(text string) (string, int) {
	if text == "" {
		return text, 0
	}
	result := text
	total := 0
	for old, dedicated := range legacyRewrites {
		n := strings.Count(result, old)
		if n > 0 {
			result = strings.ReplaceAll(result, old, dedicated)
			total += n
		}
	}
	return result, total
}
