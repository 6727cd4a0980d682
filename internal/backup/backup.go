// Package backup reads and writes the portable JSON snapshot used to
// move the whole collection between installs.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nhalm/tanktrack/internal/model"
	"github.com/nhalm/tanktrack/internal/schedule"
)

// Document is the export shape: the full item collection plus the
// category list.
type Document struct {
	Items      []model.Item `json:"items"`
	Categories []string     `json:"categories"`
}

// Encode serializes the collection to the export document.
func Encode(items []model.Item, categories []string) ([]byte, error) {
	doc := Document{Items: items, Categories: categories}
	if doc.Items == nil {
		doc.Items = []model.Item{}
	}
	if doc.Categories == nil {
		doc.Categories = []string{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}
	return data, nil
}

// Decode parses a backup document. Two shapes are accepted: the current
// object form with items and categories fields, and the older form that
// is a bare array of items. For the older form the category list is
// rebuilt from the items' categories in first-seen order. Task history
// is normalized (sorted newest first, last-completed reconciled) so a
// hand-edited file cannot smuggle in inconsistent state.
func Decode(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Document{}, fmt.Errorf("backup document is empty")
	}

	var doc Document
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &doc.Items); err != nil {
			return Document{}, fmt.Errorf("decoding legacy backup: %w", err)
		}
		doc.Categories = collectCategories(doc.Items)
	} else {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return Document{}, fmt.Errorf("decoding backup: %w", err)
		}
		itemsField, ok := fields["items"]
		if !ok {
			return Document{}, fmt.Errorf("backup document has no items field")
		}
		if err := json.Unmarshal(itemsField, &doc.Items); err != nil {
			return Document{}, fmt.Errorf("decoding backup items: %w", err)
		}
		if categoriesField, ok := fields["categories"]; ok {
			if err := json.Unmarshal(categoriesField, &doc.Categories); err != nil {
				return Document{}, fmt.Errorf("decoding backup categories: %w", err)
			}
		}
	}

	for i := range doc.Items {
		doc.Items[i] = schedule.Normalize(doc.Items[i])
	}

	seen := make(map[string]bool, len(doc.Categories))
	for _, name := range doc.Categories {
		seen[name] = true
	}
	for _, name := range collectCategories(doc.Items) {
		if !seen[name] {
			doc.Categories = append(doc.Categories, name)
			seen[name] = true
		}
	}
	if doc.Categories == nil {
		doc.Categories = []string{}
	}

	return doc, nil
}

// WriteFile encodes the collection and writes it to path.
func WriteFile(path string, items []model.Item, categories []string) error {
	data, err := Encode(items, categories)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing backup file: %w", err)
	}
	return nil
}

// ReadFile reads and decodes a backup file.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading backup file: %w", err)
	}
	return Decode(data)
}

func collectCategories(items []model.Item) []string {
	var names []string
	seen := make(map[string]bool)
	for _, item := range items {
		if item.Category != "" && !seen[item.Category] {
			names = append(names, item.Category)
			seen[item.Category] = true
		}
	}
	return names
}
