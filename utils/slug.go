package utils

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var nonWord = regexp.MustCompile(`[^a-z0-9 ]+`)
var spaces = regexp.MustCompile(` +`)

// Slugify derives a URL slug from a course title: lower-cased, non-word
// characters stripped, spaces collapsed to hyphens.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonWord.ReplaceAllString(slug, "")
	slug = spaces.ReplaceAllString(slug, "-")
	return slug
}

// UniqueSlug returns a slug for the title that does not collide with any other
// row in the given table. A colliding title gets a numeric suffix; the unique
// index on the column backstops concurrent creates.
func UniqueSlug(db *gorm.DB, table, title string, excludeID uint) string {
	base := Slugify(title)
	slug := base

	for i := 2; ; i++ {
		var count int64
		db.Table(table).Where("slug = ? AND id != ?", slug, excludeID).Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
