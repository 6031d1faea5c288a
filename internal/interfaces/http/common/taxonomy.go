package common

import (
	"strings"

	admindomain "github.com/sngm3741/ecorating-services/api/internal/admin/domain"
)

// CanonicalCategory maps case-insensitive or slug spellings ("home-garden") onto the
// known category labels. Unknown values are returned trimmed.
func CanonicalCategory(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	key := categoryKey(trimmed)
	for _, known := range admindomain.KnownCategories {
		if categoryKey(known) == key {
			return known
		}
	}
	return trimmed
}

func categoryKey(value string) string {
	replacer := strings.NewReplacer("&", "", "-", "", "_", "", " ", "")
	return strings.ToLower(replacer.Replace(value))
}
