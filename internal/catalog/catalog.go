// Package catalog holds product master data: per-location SKU records with
// ABC revenue class and XYZ volatility class, used to build run queues.
package catalog

import (
	"sort"
	"strings"
)

// #region types

// Product is one SKU's master data at a location.
type Product struct {
	SKU         string
	Location    string
	Name        string
	Category    string
	SubCategory string
	ABCClass    string
	XYZClass    string
	UnitPrice   float64
	Currency    string
	Description string
}

type masterKey struct {
	sku      string
	location string
}

// Catalog is a read-only product master.
type Catalog struct {
	products map[masterKey]Product
}

// #endregion types

// #region seed

// NewStatic returns the seeded catalog covering the reference assortment.
func NewStatic() *Catalog {
	products := []Product{
		{
			SKU:         "PONDS_SUPER_LIGHT_GEL_100G",
			Location:    "BANGALORE",
			Name:        "Ponds Super Light Gel 100g",
			Category:    "Skin Care",
			SubCategory: "Face Moisturizers",
			ABCClass:    "A",
			XYZClass:    "Y",
			UnitPrice:   299,
			Currency:    "INR",
			Description: "Oil-free moisturizer, high traction on Quick Commerce.",
		},
		{
			SKU:         "DOVE_HAIR_FALL_RESCUE_650ML",
			Location:    "BANGALORE",
			Name:        "Dove Hair Fall Rescue Shampoo 650ml",
			Category:    "Hair Care",
			SubCategory: "Shampoos",
			ABCClass:    "A",
			XYZClass:    "Y",
			UnitPrice:   650,
			Currency:    "INR",
			Description: "Large pack, typically planned purchase but high volume.",
		},
	}
	c := &Catalog{products: make(map[masterKey]Product, len(products))}
	for _, p := range products {
		c.products[masterKey{sku: p.SKU, location: p.Location}] = p
	}
	return c
}

// #endregion seed

// #region lookups

func norm(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// Get returns the master record for a SKU at a location.
func (c *Catalog) Get(sku, location string) (Product, bool) {
	p, ok := c.products[masterKey{sku: norm(sku), location: norm(location)}]
	return p, ok
}

// List returns all products at a location, sorted by SKU.
func (c *Catalog) List(location string) []Product {
	loc := norm(location)
	var out []Product
	for k, p := range c.products {
		if k.location == loc {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// FindSKUsByClass selects SKU IDs at a location, optionally filtered by
// ABC class and/or a set of XYZ classes. Empty filters match everything.
func (c *Catalog) FindSKUsByClass(location, abcClass string, xyzClasses []string) []string {
	abc := norm(abcClass)
	xyz := map[string]bool{}
	for _, x := range xyzClasses {
		xyz[norm(x)] = true
	}

	var skus []string
	for _, p := range c.List(location) {
		if abc != "" && p.ABCClass != abc {
			continue
		}
		if len(xyz) > 0 && !xyz[p.XYZClass] {
			continue
		}
		skus = append(skus, p.SKU)
	}
	return skus
}

// #endregion lookups
