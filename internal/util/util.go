package util

import (
	"strings"
)

const fallbackSlug = "product"

// Slugify lowercases s and joins its ASCII letter and digit runs with single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		isWordRune := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isWordRune {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	if b.Len() == 0 {
		return fallbackSlug
	}

	return b.String()
}

// NormalizePage clamps a 1-based page number and a page size into range.
// A non-positive limit falls back to defaultLimit.
func NormalizePage(page, limit, defaultLimit, maxLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit
}

// Offset converts a 1-based page into a row offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// TotalPages returns ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}

	return int((total + int64(limit) - 1) / int64(limit))
}
