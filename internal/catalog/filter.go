// Package catalog derives filtered, paginated views of the product list.
// All functions are pure and preserve the order of their input, which is the
// store's own newest-first ordering.
package catalog

import (
	"strings"

	"molove/internal/models"
)

// CategoryAll is the sentinel selector matching every category.
const CategoryAll = "all"

// DefaultPageSize matches the storefront grid.
const DefaultPageSize = 20

// Filter returns the products whose name or description contains query
// (case-insensitive) and whose category equals category. An empty query
// matches everything; CategoryAll (or empty) matches every category.
func Filter(products []models.Product, query, category string) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))

	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// Page returns the first page*pageSize products. The page count only ever
// grows ("load more"), so each page is a superset of the previous one.
func Page(products []models.Product, page, pageSize int) []models.Product {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	limit := page * pageSize
	if limit > len(products) {
		limit = len(products)
	}
	return products[:limit]
}

// Categories returns the distinct non-empty categories in first-seen order.
func Categories(products []models.Product) []string {
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}
