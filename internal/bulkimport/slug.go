package bulkimport

import (
	"regexp"
	"strings"
)

const maxSlugLength = 255

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the natural key of a category from its display name:
// lowercase, non-alphanumeric runs collapsed to a single hyphen, leading and
// trailing hyphens stripped, capped at 255 characters. It is pure, so the
// same name always resolves to the same stored category across uploads.
func Slugify(name string) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}
