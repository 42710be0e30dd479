// Package service implements regex-driven PII detection.
//
// Each supported pattern is matched independently and the results are merged:
// overlapping matches are resolved by keeping the earliest-starting, longest
// match. Malformed near-matches simply fail to match and are left as ordinary
// text, so detection never errors on input content.
package service

import (
	"regexp"
	"sort"

	detectionDomain "github.com/converso/piivault/internal/detection/domain"
)

// pattern couples a PII pattern type with its compiled expression.
type pattern struct {
	patternType detectionDomain.PatternType
	regex       *regexp.Regexp
}

// piiPatterns lists every supported PII shape. Order here does not matter;
// overlap resolution is positional, not by pattern priority.
var piiPatterns = []pattern{
	{
		patternType: detectionDomain.PatternEmail,
		regex:       regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
	},
	{
		patternType: detectionDomain.PatternPhone,
		regex:       regexp.MustCompile(`\(\d{3}\)\s?\d{3}-\d{4}|\b\d{3}-\d{3}-\d{4}\b`),
	},
	{
		patternType: detectionDomain.PatternSSN,
		regex:       regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	},
	{
		// 13-19 digit groups with optional single space or dash separators.
		patternType: detectionDomain.PatternCreditCard,
		regex:       regexp.MustCompile(`\b\d(?:[ \-]?\d){12,18}\b`),
	},
	{
		patternType: detectionDomain.PatternPaymentToken,
		regex:       regexp.MustCompile(`\b(?:tok|card)_[A-Za-z0-9]+`),
	},
	{
		patternType: detectionDomain.PatternStreetAddress,
		regex: regexp.MustCompile(
			`(?i)\b\d{1,6}\s+[A-Za-z0-9.'\-]+(?:\s+[A-Za-z0-9.'\-]+){0,3}\s+` +
				`(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Drive|Dr|Lane|Ln|Court|Ct|Way|Place|Pl)\.?\b`,
		),
	},
}

// Detector finds PII occurrences in free text.
type Detector interface {
	// Detect returns every non-overlapping PII match in text, ordered by start
	// index. Overlaps are resolved earliest-start, longest-wins.
	Detect(text string) []detectionDomain.Match
}

// regexDetector implements Detector with the package-level pattern table.
type regexDetector struct{}

// NewDetector creates a new regex-based PII detector.
func NewDetector() Detector {
	return &regexDetector{}
}

// Detect scans text with every supported pattern and merges the results.
func (d *regexDetector) Detect(text string) []detectionDomain.Match {
	if text == "" {
		return nil
	}

	var matches []detectionDomain.Match
	for _, p := range piiPatterns {
		for _, loc := range p.regex.FindAllStringIndex(text, -1) {
			matches = append(matches, detectionDomain.Match{
				Type:        p.patternType,
				StartIndex:  loc[0],
				EndIndex:    loc[1],
				MatchedText: text[loc[0]:loc[1]],
			})
		}
	}

	return resolveOverlaps(matches)
}

// resolveOverlaps keeps the earliest-starting, longest match and discards any
// match that overlaps an already accepted one.
func resolveOverlaps(matches []detectionDomain.Match) []detectionDomain.Match {
	if len(matches) == 0 {
		return nil
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].StartIndex != matches[j].StartIndex {
			return matches[i].StartIndex < matches[j].StartIndex
		}
		return matches[i].Len() > matches[j].Len()
	})

	result := make([]detectionDomain.Match, 0, len(matches))
	result = append(result, matches[0])
	lastEnd := matches[0].EndIndex
	for _, m := range matches[1:] {
		if m.StartIndex < lastEnd {
			continue
		}
		result = append(result, m)
		lastEnd = m.EndIndex
	}
	return result
}
