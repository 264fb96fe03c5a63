package recon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AliasDictionary maps a canonical provider key to the text aliases that
// identify it in bank transaction text. It is configuration data, injected
// at construction time so it can be extended without redeploying the
// matching logic.
type AliasDictionary map[string][]string

// LoadAliasDictionary reads an alias dictionary from a YAML file of the form:
//
//	netflix:
//	  - netflix
//	  - netflix.com
func LoadAliasDictionary(path string) (AliasDictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias dictionary %s: %w", path, err)
	}
	var dict AliasDictionary
	if err := yaml.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("failed to parse alias dictionary %s: %w", path, err)
	}
	return dict, nil
}

// DefaultAliasDictionary covers common UK household providers. It is the
// fallback when no dictionary file is configured.
func DefaultAliasDictionary() AliasDictionary {
	return AliasDictionary{
		"british gas":   {"british gas", "britishgas", "bg energy"},
		"edf":           {"edf", "edf energy"},
		"octopus":       {"octopus", "octopus energy"},
		"thames water":  {"thames water", "thameswater"},
		"council tax":   {"council tax", "counciltax", "ct payment"},
		"netflix":       {"netflix", "netflix.com"},
		"spotify":       {"spotify", "spotify ltd"},
		"virgin media":  {"virgin media", "virginmedia", "virgin mda"},
		"bt":            {"bt group", "bt broadband", "british telecom"},
		"sky":           {"sky digital", "sky subscription", "sky uk"},
		"vodafone":      {"vodafone", "vodafone ltd"},
		"o2":            {"o2", "o2 uk", "telefonica"},
		"ee":            {"ee", "ee limited", "everything everywhere"},
		"tv licence":    {"tv licence", "tv license", "tvlicensing"},
		"amazon prime":  {"amazon prime", "prime video", "amznprime"},
		"disney":        {"disney plus", "disney+", "disneyplus"},
		"gym":           {"puregym", "the gym", "david lloyd", "nuffield"},
		"car insurance": {"admiral", "direct line", "aviva", "churchill"},
	}
}

// Resolver maps free-text merchant/description strings to canonical provider
// keys. All comparisons are case-insensitive on trimmed text.
type Resolver struct {
	dict AliasDictionary
}

// NewResolver builds a resolver over the given dictionary. A nil dictionary
// yields a resolver that only performs direct hint containment.
func NewResolver(dict AliasDictionary) *Resolver {
	normalised := make(AliasDictionary, len(dict))
	for canonical, aliases := range dict {
		key := normalise(canonical)
		list := make([]string, 0, len(aliases))
		for _, a := range aliases {
			if a = normalise(a); a != "" {
				list = append(list, a)
			}
		}
		normalised[key] = list
	}
	return &Resolver{dict: normalised}
}

// ResolveProvider resolves an obligation's provider hint against a
// transaction's text fields. Lookup order, first hit wins:
//  1. direct substring containment between the hint and either text field;
//  2. the hint names a dictionary entry (canonical key or alias) and the
//     transaction text contains any alias of that same entry;
//  3. no match.
func (r *Resolver) ResolveProvider(hint, merchantText, descriptionText string) (string, bool) {
	hint = normalise(hint)
	if hint == "" {
		return "", false
	}

	texts := make([]string, 0, 2)
	if t := normalise(merchantText); t != "" {
		texts = append(texts, t)
	}
	if t := normalise(descriptionText); t != "" {
		texts = append(texts, t)
	}

	for _, text := range texts {
		if strings.Contains(text, hint) || strings.Contains(hint, text) {
			return hint, true
		}
	}

	canonical, aliases, found := r.lookup(hint)
	if !found {
		return "", false
	}
	for _, text := range texts {
		if strings.Contains(text, canonical) {
			return canonical, true
		}
		for _, alias := range aliases {
			if strings.Contains(text, alias) {
				return canonical, true
			}
		}
	}
	return "", false
}

// lookup finds the dictionary entry whose canonical key or alias equals the
// hint.
func (r *Resolver) lookup(hint string) (string, []string, bool) {
	if aliases, ok := r.dict[hint]; ok {
		return hint, aliases, true
	}
	for canonical, aliases := range r.dict {
		for _, alias := range aliases {
			if alias == hint {
				return canonical, aliases, true
			}
		}
	}
	return "", nil, false
}

func normalise(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
