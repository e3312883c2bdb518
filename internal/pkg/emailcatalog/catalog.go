// Package emailcatalog holds the email preference names a user can toggle,
// their default values and the notification code each one maps to.
package emailcatalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"bounties-api/internal/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Entry struct {
	Name    string            `yaml:"name"`
	Group   domain.EmailGroup `yaml:"group"`
	Code    int               `yaml:"code"`
	Default bool              `yaml:"default"`
}

type Catalog struct {
	entries []Entry
	byName  map[string]Entry
}

var (
	defaultCatalog *Catalog
	loadErr        error
	once           sync.Once
)

// Default returns the embedded catalog, parsed on first use.
func Default() (*Catalog, error) {
	once.Do(func() {
		defaultCatalog, loadErr = Parse(catalogYAML)
	})
	return defaultCatalog, loadErr
}

func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Settings []Entry `yaml:"SETTINGS"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse email catalog: %w", err)
	}

	c := &Catalog{byName: make(map[string]Entry, len(doc.Settings))}
	for _, e := range doc.Settings {
		switch e.Group {
		case domain.EmailGroupIssuer, domain.EmailGroupBoth, domain.EmailGroupFulfiller:
		default:
			return nil, fmt.Errorf("email setting %q has unknown group %q", e.Name, e.Group)
		}
		if _, dup := c.byName[e.Name]; dup {
			return nil, fmt.Errorf("email setting %q declared twice", e.Name)
		}
		c.entries = append(c.entries, e)
		c.byName[e.Name] = e
	}
	return c, nil
}

// Defaults builds the options a new settings row starts with.
func (c *Catalog) Defaults() domain.EmailOptions {
	opts := domain.EmailOptions{
		Issuer:    map[string]bool{},
		Both:      map[string]bool{},
		Fulfiller: map[string]bool{},
	}
	for _, e := range c.entries {
		switch e.Group {
		case domain.EmailGroupIssuer:
			opts.Issuer[e.Name] = e.Default
		case domain.EmailGroupBoth:
			opts.Both[e.Name] = e.Default
		case domain.EmailGroupFulfiller:
			opts.Fulfiller[e.Name] = e.Default
		}
	}
	return opts
}

// AcceptedCodes maps the enabled settings to notification codes. Names the
// catalog does not know are ignored.
func (c *Catalog) AcceptedCodes(opts domain.EmailOptions) []int {
	var codes []int
	for _, name := range opts.Enabled() {
		if e, ok := c.byName[name]; ok {
			codes = append(codes, e.Code)
		}
	}
	return codes
}

// Validate rejects names that are unknown or filed under the wrong group.
func (c *Catalog) Validate(opts domain.EmailOptions) error {
	groups := map[domain.EmailGroup]map[string]bool{
		domain.EmailGroupIssuer:    opts.Issuer,
		domain.EmailGroupBoth:      opts.Both,
		domain.EmailGroupFulfiller: opts.Fulfiller,
	}
	for group, settings := range groups {
		for name := range settings {
			e, ok := c.byName[name]
			if !ok {
				return fmt.Errorf("unknown email setting %q", name)
			}
			if e.Group != group {
				return fmt.Errorf("email setting %q belongs to %s, not %s", name, e.Group, group)
			}
		}
	}
	return nil
}
