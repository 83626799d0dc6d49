// Copyright (c) 2026 FISBook. All rights reserved.

// Package username derives valid account usernames from arbitrary Unicode
// display names.
//
// # Usage
//
// When a registration request omits the username, one is suggested from the
// person's first and last names (e.g., "Juan" + "Pérez" → "juan.perez").
// This package handles normalization, accent removal, and character
// sanitization so that the result always satisfies the account username
// constraints (letters, digits, dots, underscores, hyphens).
package username

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// disallowed matches any run of characters outside the username alphabet.
	disallowed = regexp.MustCompile(`[^a-z0-9._-]+`)
	// multiDot collapses consecutive separator dots into one.
	multiDot = regexp.MustCompile(`\.{2,}`)
)

// Derive converts first and last names into a valid lowercase username.
//
// # Transformation Pipeline
//
// 1. Joins the parts with a dot separator.
// 2. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 3. Removes combining marks (accents).
// 4. Converts to lowercase and replaces whitespace with dots.
// 5. Strips any remaining disallowed characters and collapses repeats.
//
// Returns an empty string when nothing usable remains, in which case the
// caller must require an explicit username instead.
func Derive(parts ...string) string {
	joined := strings.Join(parts, ".")

	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, joined)

	// 2. Lowercase, whitespace to dots
	result = strings.ToLower(result)
	result = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '.'
		}
		return r
	}, result)

	// 3. Clean up the remaining alphabet
	result = disallowed.ReplaceAllString(result, "")
	result = multiDot.ReplaceAllString(result, ".")
	result = strings.Trim(result, "._-")

	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
