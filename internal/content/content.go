// Package content serves the static per-language string tables shown by the
// kiosk. Tables are embedded YAML, decoded strictly and checked for parity with
// English at load time.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"dmt_kiosk_backend/platform/apperr"

	"gopkg.in/yaml.v3"
)

// Supported language codes. English is the reference table.
const (
	English = "en"
	Sinhala = "si"
	Tamil   = "ta"
)

var languages = []string{English, Sinhala, Tamil}

//go:embed locales/*.yaml
var localesFS embed.FS

// Catalog holds one Table per supported language.
type Catalog struct {
	tables map[string]Table
}

// Load decodes the embedded tables.
func Load() (*Catalog, error) {
	sub, err := fs.Sub(localesFS, "locales")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS decodes <lang>.yaml for every supported language from fsys. It fails
// when a file carries unknown keys, when a language's key set differs from
// English, or when any leaf string is empty.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	tables := make(map[string]Table, len(languages))
	keys := make(map[string][]string, len(languages))

	for _, lang := range languages {
		raw, err := fs.ReadFile(fsys, lang+".yaml")
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", lang, err)
		}

		var table Table
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&table); err != nil {
			return nil, fmt.Errorf("content: decode %s: %w", lang, err)
		}

		var tree map[string]interface{}
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("content: decode %s: %w", lang, err)
		}
		flat, err := flatten(tree)
		if err != nil {
			return nil, fmt.Errorf("content: %s: %w", lang, err)
		}

		tables[lang] = table
		keys[lang] = flat
	}

	for _, lang := range languages[1:] {
		if missing, extra := diff(keys[English], keys[lang]); len(missing) > 0 || len(extra) > 0 {
			return nil, fmt.Errorf("content: %s differs from %s (missing %v, extra %v)", lang, English, missing, extra)
		}
	}

	return &Catalog{tables: tables}, nil
}

// Languages lists the supported language codes, English first.
func (c *Catalog) Languages() []string {
	out := make([]string, len(languages))
	copy(out, languages)
	return out
}

// Lookup returns the table for lang.
func (c *Catalog) Lookup(lang string) (Table, error) {
	t, ok := c.tables[lang]
	if !ok {
		return Table{}, apperr.NotFound("unknown language: " + lang)
	}
	return t, nil
}

// IsSupported reports whether lang has a table.
func IsSupported(lang string) bool {
	for _, l := range languages {
		if l == lang {
			return true
		}
	}
	return false
}

// flatten returns the dotted paths of every leaf. List elements are indexed
// ("steps.step1.items.0").
func flatten(tree map[string]interface{}) ([]string, error) {
	var out []string
	var errs []error

	var walk func(prefix string, v interface{})
	walk = func(prefix string, v interface{}) {
		switch node := v.(type) {
		case map[string]interface{}:
			for k, child := range node {
				walk(join(prefix, k), child)
			}
		case []interface{}:
			if len(node) == 0 {
				errs = append(errs, fmt.Errorf("%s: empty list", prefix))
			}
			for i, child := range node {
				walk(join(prefix, strconv.Itoa(i)), child)
			}
		case string:
			if strings.TrimSpace(node) == "" {
				errs = append(errs, fmt.Errorf("%s: empty string", prefix))
			}
			out = append(out, prefix)
		default:
			errs = append(errs, fmt.Errorf("%s: unexpected %T", prefix, v))
		}
	}
	walk("", tree)

	sort.Strings(out)
	return out, errors.Join(errs...)
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func diff(want, got []string) (missing, extra []string) {
	seen := make(map[string]bool, len(got))
	for _, k := range got {
		seen[k] = true
	}
	ref := make(map[string]bool, len(want))
	for _, k := range want {
		ref[k] = true
		if !seen[k] {
			missing = append(missing, k)
		}
	}
	for _, k := range got {
		if !ref[k] {
			extra = append(extra, k)
		}
	}
	return missing, extra
}
