package domain

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	maxStoreNameRunes   = 120
	maxLocationRunes    = 200
	maxDescriptionRunes = 2000
	minScore, maxScore  = 0.0, 5.0
)

// KnownCategories lists the store categories operators can choose from.
var KnownCategories = []string{
	"Grocery",
	"Fashion",
	"Electronics",
	"Home & Garden",
	"Restaurant",
	"Beauty & Personal Care",
	"Sports & Outdoor",
}

type StoreName string

func NewStoreName(value string) (StoreName, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("store name is required")
	}
	if utf8.RuneCountInString(trimmed) > maxStoreNameRunes {
		return "", fmt.Errorf("store name must be %d characters or fewer", maxStoreNameRunes)
	}
	return StoreName(trimmed), nil
}

func (n StoreName) String() string {
	return string(n)
}

type Location string

func NewLocation(value string) (Location, error) {
	trimmed := strings.TrimSpace(value)
	if utf8.RuneCountInString(trimmed) > maxLocationRunes {
		return "", fmt.Errorf("location must be %d characters or fewer", maxLocationRunes)
	}
	return Location(trimmed), nil
}

func (l Location) String() string {
	return string(l)
}

// Category must match one of KnownCategories exactly.
type Category string

func NewCategory(value string) (Category, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("category is required")
	}
	for _, allowed := range KnownCategories {
		if allowed == trimmed {
			return Category(trimmed), nil
		}
	}
	return "", fmt.Errorf("invalid category: %s", trimmed)
}

func (c Category) String() string {
	return string(c)
}

type Description string

func NewDescription(value string) (Description, error) {
	trimmed := strings.TrimSpace(value)
	if utf8.RuneCountInString(trimmed) > maxDescriptionRunes {
		return "", fmt.Errorf("description must be %d characters or fewer", maxDescriptionRunes)
	}
	return Description(trimmed), nil
}

func (d Description) String() string {
	return string(d)
}

// Score is an operator-assigned sustainability score on the 0-5 scale.
type Score float64

func NewScore(name string, value float64) (Score, error) {
	if value < minScore || value > maxScore {
		return 0, fmt.Errorf("%s must be between 0 and 5", name)
	}
	return Score(value), nil
}

func (s Score) Float64() float64 {
	return float64(s)
}

type URL string

func NewURL(value string) (URL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	return URL(trimmed), nil
}

func (u URL) String() string {
	return string(u)
}
