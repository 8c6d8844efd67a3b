// Package catalog holds the static priced items a booking line can select: string
// models for racket stringing, knocking packages for bats and glove makes.
package catalog

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// OtherName is the selection value for a customer-named item outside the catalog.
const OtherName = "Other"

// Entry is an immutable priced catalog item. BasePrice is in whole rupees.
type Entry struct {
	Brand     string `json:"brand"`
	Name      string `json:"name"`
	Label     string `json:"label,omitempty"`
	BasePrice int    `json:"price"`
}

// DisplayName returns the label when set, the name otherwise.
func (e Entry) DisplayName() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Name
}

// Catalog groups entries by brand. Labour is added on top of every named entry's
// base price; custom "Other" selections are never charged it by the catalog.
type Catalog struct {
	labour int
	brands map[string][]Entry
	order  []string
}

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English, collate.IgnoreCase)
)

// New builds a catalog from a brand → entries mapping. Entries are copied and ordered
// alphabetically for display; lookups are by brand and name, so the order carries no
// pricing meaning.
func New(labour int, brands map[string][]Entry) *Catalog {
	c := &Catalog{
		labour: labour,
		brands: make(map[string][]Entry, len(brands)),
	}
	for brand, entries := range brands {
		copied := make([]Entry, 0, len(entries))
		for _, entry := range entries {
			entry.Brand = brand
			copied = append(copied, entry)
		}
		sort.SliceStable(copied, func(i, j int) bool {
			return compare(copied[i].Name, copied[j].Name) < 0
		})
		c.brands[brand] = copied
		c.order = append(c.order, brand)
	}
	sort.SliceStable(c.order, func(i, j int) bool {
		return compare(c.order[i], c.order[j]) < 0
	})
	return c
}

func compare(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// Labour returns the amount added to each named entry.
func (c *Catalog) Labour() int {
	if c == nil {
		return 0
	}
	return c.labour
}

// Brands lists brand names in display order.
func (c *Catalog) Brands() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Entries lists a brand's entries in display order.
func (c *Catalog) Entries(brand string) []Entry {
	if c == nil {
		return nil
	}
	entries := c.brands[brand]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// All lists every entry grouped by brand in display order.
func (c *Catalog) All() []Entry {
	if c == nil {
		return nil
	}
	var out []Entry
	for _, brand := range c.order {
		out = append(out, c.brands[brand]...)
	}
	return out
}

// Lookup finds an entry by brand and name. Name matching ignores surrounding space
// and case; a blank brand searches every brand.
func (c *Catalog) Lookup(brand, name string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	name = strings.TrimSpace(name)
	brand = strings.TrimSpace(brand)
	for _, b := range c.order {
		if brand != "" && !strings.EqualFold(b, brand) {
			continue
		}
		for _, entry := range c.brands[b] {
			if strings.EqualFold(entry.Name, name) {
				return entry, true
			}
		}
	}
	return Entry{}, false
}

// Price is the amount a line pays per unit for the entry before options.
func (c *Catalog) Price(entry Entry) int {
	return entry.BasePrice + c.Labour()
}
