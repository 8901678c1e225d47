package domain

import "strings"

// Category is a tagged variant: either one of the predefined compliance
// categories or an organization-defined custom label.
type Category struct {
	value  string
	custom bool
}

const (
	categoryGST       = "gst"
	categoryIncomeTax = "income-tax"
	categoryInsurance = "insurance"
	categoryTransport = "transport"
	categoryLicense   = "license"
)

var predefinedCategories = map[string]struct{}{
	categoryGST:       {},
	categoryIncomeTax: {},
	categoryInsurance: {},
	categoryTransport: {},
	categoryLicense:   {},
}

var (
	CategoryGST       = Category{value: categoryGST}
	CategoryIncomeTax = Category{value: categoryIncomeTax}
	CategoryInsurance = Category{value: categoryInsurance}
	CategoryTransport = Category{value: categoryTransport}
	CategoryLicense   = Category{value: categoryLicense}
)

// ParseCategory canonicalizes predefined values and wraps anything else
// as a custom category. Empty values are rejected.
func ParseCategory(raw string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Category{}, ErrEmptyCategory
	}

	if _, ok := predefinedCategories[normalized]; ok {
		return Category{value: normalized}, nil
	}

	return Category{value: strings.TrimSpace(raw), custom: true}, nil
}

// CustomCategory builds an organization-defined category without
// predefined-set normalization.
func CustomCategory(label string) (Category, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Category{}, ErrEmptyCategory
	}
	return Category{value: label, custom: true}, nil
}

func (c Category) String() string {
	return c.value
}

// IsCustom reports whether the category is organization-defined rather
// than one of the predefined set.
func (c Category) IsCustom() bool {
	return c.custom
}

func (c Category) IsZero() bool {
	return c.value == ""
}
