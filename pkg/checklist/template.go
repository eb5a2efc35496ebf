// Package checklist defines inspection templates and turns the observations
// recorded against them into valuation input.
package checklist

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/carscope/carscope/pkg/scoring"
)

var (
	ErrEmptyTemplate = errors.New("template has no categories")
	ErrEmptyID       = errors.New("empty id")
	ErrDuplicateID   = errors.New("duplicate id")
)

// Item is one inspectable part in a template.
type Item struct {
	ID         string           `json:"id" yaml:"id"`
	Label      string           `json:"label" yaml:"label"`
	ItemType   scoring.ItemType `json:"item_type" yaml:"item_type"`
	AllowVideo bool             `json:"allow_video,omitempty" yaml:"allow_video,omitempty"`
}

// Category groups items under a heading. Its ID drives classification.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Items []Item `json:"items" yaml:"items"`
}

// Template is an ordered inspection checklist.
type Template struct {
	Name       string     `json:"name,omitempty" yaml:"name,omitempty"`
	Categories []Category `json:"categories" yaml:"categories"`
}

// LoadTemplate reads and validates a YAML template from path.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML (or JSON) template.
func Parse(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Marshal encodes the template as YAML.
func (t *Template) Marshal() ([]byte, error) {
	return yaml.Marshal(t)
}

// Validate checks that IDs are present and unique and that every item type is known.
// Item IDs must be unique across the whole template, since observations are keyed by them.
func (t *Template) Validate() error {
	if len(t.Categories) == 0 {
		return ErrEmptyTemplate
	}
	categories := make(map[string]bool)
	items := make(map[string]bool)
	for ci, c := range t.Categories {
		if c.ID == "" {
			return fmt.Errorf("categories[%d]: %w", ci, ErrEmptyID)
		}
		if categories[c.ID] {
			return fmt.Errorf("category %q: %w", c.ID, ErrDuplicateID)
		}
		categories[c.ID] = true

		for ii, item := range c.Items {
			if item.ID == "" {
				return fmt.Errorf("category %q items[%d]: %w", c.ID, ii, ErrEmptyID)
			}
			if items[item.ID] {
				return fmt.Errorf("item %q: %w", item.ID, ErrDuplicateID)
			}
			items[item.ID] = true
			if !item.ItemType.Valid() {
				return fmt.Errorf("item %q: %w",
					item.ID, scoring.NewValidationError("item_type", string(item.ItemType), scoring.ErrUnknownItemType))
			}
		}
	}
	return nil
}

// Lookup finds an item and the category that holds it.
func (t *Template) Lookup(itemID string) (Category, Item, bool) {
	for _, c := range t.Categories {
		for _, item := range c.Items {
			if item.ID == itemID {
				return c, item, true
			}
		}
	}
	return Category{}, Item{}, false
}

// ItemCount returns the number of items across all categories.
func (t *Template) ItemCount() int {
	n := 0
	for _, c := range t.Categories {
		n += len(c.Items)
	}
	return n
}

// Clone returns a deep copy that can be edited without touching t.
func (t *Template) Clone() *Template {
	out := &Template{Name: t.Name, Categories: make([]Category, len(t.Categories))}
	for i, c := range t.Categories {
		c.Items = append([]Item(nil), c.Items...)
		out.Categories[i] = c
	}
	return out
}
