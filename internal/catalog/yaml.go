package catalog

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dasportz/booking-backend/pkg/money"
)

type price string

func (p *price) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: price must be a scalar", value.Line)
	}
	*p = price(value.Value)
	return nil
}

type yamlEntry struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
	Price price  `yaml:"price"`
}

type yamlCatalog struct {
	Labour price                  `yaml:"labour"`
	Brands map[string][]yamlEntry `yaml:"brands"`
}

// LoadYAML reads a catalog document of the form
//
//	labour: 100
//	brands:
//	  Yonex:
//	    - name: BG 65
//	      price: 450
func LoadYAML(r io.Reader) (*Catalog, error) {
	var doc yamlCatalog
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(doc.Brands) == 0 {
		return nil, fmt.Errorf("catalog has no brands")
	}

	labour := 0
	if doc.Labour != "" {
		parsed, err := money.ParseAmount(string(doc.Labour))
		if err != nil {
			return nil, fmt.Errorf("catalog labour: %w", err)
		}
		labour = parsed
	}

	brands := make(map[string][]Entry, len(doc.Brands))
	for brand, entries := range doc.Brands {
		if brand == "" || brand == OtherName {
			return nil, fmt.Errorf("invalid brand name %q", brand)
		}
		seen := map[string]struct{}{}
		for _, raw := range entries {
			if raw.Name == "" {
				return nil, fmt.Errorf("brand %s: entry without name", brand)
			}
			if _, dup := seen[raw.Name]; dup {
				return nil, fmt.Errorf("brand %s: duplicate entry %q", brand, raw.Name)
			}
			seen[raw.Name] = struct{}{}
			amount, err := money.ParseAmount(string(raw.Price))
			if err != nil {
				return nil, fmt.Errorf("brand %s entry %s: %w", brand, raw.Name, err)
			}
			brands[brand] = append(brands[brand], Entry{
				Name:      raw.Name,
				Label:     raw.Label,
				BasePrice: amount,
			})
		}
	}
	return New(labour, brands), nil
}
