// Package taxrate holds the static IBS/CBS rate table keyed by product
// category and origin/destination region pair.
package taxrate

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// RateEntry is the pair of tax fractions applied to a line's gross value.
type RateEntry struct {
	IBS float64 `json:"ibs"`
	CBS float64 `json:"cbs"`
}

// DefaultRate is returned on a lookup miss. A miss is routine input, not an
// error: the line is still priced with this rate and downgraded to
// unresolved so the order lands in the review queue.
var DefaultRate = RateEntry{IBS: 0.10, CBS: 0.10}

// Entry is one rate rule in construction or file form.
type Entry struct {
	Category    string    `json:"category"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Rate        RateEntry `json:"rate"`
}

type key struct {
	category    string
	origin      string
	destination string
}

// Table is an immutable rate lookup. Safe for unlimited concurrent reads.
type Table struct {
	entries map[key]RateEntry
}

// NewTable builds a Table from entries. Later entries with the same
// normalized key overwrite earlier ones, so overrides can be appended to
// the builtin set.
func NewTable(entries []Entry) *Table {
	m := make(map[key]RateEntry, len(entries))
	for _, e := range entries {
		m[normalize(e.Category, e.Origin, e.Destination)] = e.Rate
	}
	return &Table{entries: m}
}

// Lookup resolves the rate for a (category, origin, destination) key.
// Matching is exact on the normalized key: category lowercased and trimmed,
// region codes uppercased. On a miss it returns DefaultRate and false.
func (t *Table) Lookup(category, origin, destination string) (RateEntry, bool) {
	if r, ok := t.entries[normalize(category, origin, destination)]; ok {
		return r, true
	}
	return DefaultRate, false
}

// Len reports the number of distinct rate rules in the table.
func (t *Table) Len() int { return len(t.entries) }

func normalize(category, origin, destination string) key {
	return key{
		category:    strings.ToLower(strings.TrimSpace(category)),
		origin:      strings.ToUpper(strings.TrimSpace(origin)),
		destination: strings.ToUpper(strings.TrimSpace(destination)),
	}
}

// BuiltinEntries returns the shipped rate rules.
func BuiltinEntries() []Entry {
	return []Entry{
		{Category: "lata 350 ml", Origin: "SP", Destination: "SP", Rate: RateEntry{IBS: 0.12, CBS: 0.09}},
		{Category: "lata 350 ml", Origin: "SP", Destination: "RJ", Rate: RateEntry{IBS: 0.15, CBS: 0.10}},
		{Category: "lata 350 ml", Origin: "RJ", Destination: "SP", Rate: RateEntry{IBS: 0.10, CBS: 0.08}},
		{Category: "garrafa 350 ml", Origin: "SP", Destination: "SP", Rate: RateEntry{IBS: 0.05, CBS: 0.02}},
		{Category: "garrafa 350 ml", Origin: "SP", Destination: "RJ", Rate: RateEntry{IBS: 0.07, CBS: 0.03}},
		{Category: "lata 473 ml", Origin: "SP", Destination: "SP", Rate: RateEntry{IBS: 0.00, CBS: 0.00}},
		{Category: "lata 473 ml", Origin: "SP", Destination: "RJ", Rate: RateEntry{IBS: 0.01, CBS: 0.01}},
		{Category: "lata sem alcool", Origin: "SP", Destination: "SP", Rate: RateEntry{IBS: 0.10, CBS: 0.40}},
		{Category: "lata sem alcool", Origin: "SP", Destination: "RJ", Rate: RateEntry{IBS: 0.12, CBS: 0.45}},
	}
}

// LoadEntries reads additional rate rules from a JSON file. The file holds
// an array of Entry objects.
func LoadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate rules file: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse rate rules file %s: %w", path, err)
	}
	return entries, nil
}
