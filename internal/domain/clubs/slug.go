package clubs

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

/*
	Slug helpers
	------------
	- Responsible ONLY for:
	  • generating slugs from club names
	  • resolving collisions deterministically
	- No access logic, no billing logic here
*/

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)

	// folds accented letters onto their base ("Ünïcode" -> "Unicode")
	// before the ASCII filter runs
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// MakeSlug generates a URL-safe base slug from a club name.
// Example: "Test Club" -> "test-club"
func MakeSlug(name string) string {
	if folded, _, err := transform.String(deaccent, name); err == nil {
		name = folded
	}

	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "club"
	}
	return base
}

// maxSlugAttempts bounds collision regeneration; exceeding it means the
// namespace around this base is saturated and the caller gets an error.
const maxSlugAttempts = 50

// EnsureUniqueSlug resolves base against existing club slugs inside the
// caller's transaction. Collisions regenerate deterministically: base,
// base-2, base-3, ... excludeClubID skips the club being updated.
func EnsureUniqueSlug(tx *gorm.DB, base string, excludeClubID string) (string, error) {
	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}

		var count int64
		q := tx.Model(&Club{}).Where("info_slug = ?", candidate)
		if excludeClubID != "" {
			q = q.Where("id <> ?", excludeClubID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free slug for %q after %d attempts", base, maxSlugAttempts)
}
