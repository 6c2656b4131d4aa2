package content

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	slugStrip  = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces = regexp.MustCompile(`[\s_]+`)
	slugDashes = regexp.MustCompile(`-{2,}`)
)

// SlugBase derives the URL-safe base of a title: lowercased, non-word
// characters stripped, whitespace collapsed to single hyphens.
func SlugBase(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// GenerateSlug returns a unique slug for title. When the post already
// has a slug whose base still matches the title (edit flow), that slug
// is kept so published URLs stay stable; otherwise a fresh slug is
// minted with a timestamp-plus-random base36 suffix.
func GenerateSlug(title, existing string) string {
	base := SlugBase(title)
	if existing != "" && base != "" &&
		(existing == base || strings.HasPrefix(existing, base+"-")) {
		return existing
	}
	suffix := strconv.FormatInt(time.Now().UnixMilli(), 36) +
		strconv.FormatInt(int64(rand.Intn(36*36)), 36)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
