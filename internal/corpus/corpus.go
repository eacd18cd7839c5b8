// Package corpus embeds the golden SQLi/XSS test payloads this module
// ships its own correctness tests against, each tagged with a stable UUID
// so a differential run against a separate reference implementation can
// refer to an entry even after its payload text changes.
package corpus

import (
	"bufio"
	_ "embed"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/sqli.txt
var sqliRaw string

//go:embed testdata/xss.txt
var xssRaw string

//go:embed testdata/manifest.yaml
var manifestRaw []byte

// Entry is one named, UUID-tagged corpus payload and its expected verdict.
type Entry struct {
	Name      string
	ID        uuid.UUID
	Input     string
	Injection bool
}

type manifestEntry struct {
	ID        string `yaml:"id"`
	Injection bool   `yaml:"injection"`
}

func loadManifest() (map[string]manifestEntry, error) {
	var m map[string]manifestEntry
	if err := yaml.Unmarshal(manifestRaw, &m); err != nil {
		return nil, fmt.Errorf("corpus: parsing manifest: %w", err)
	}
	return m, nil
}

// parse splits "name: payload" lines, skipping blanks and '#' comments,
// and joins each against its manifest entry.
func parse(raw string, manifest map[string]manifestEntry) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		name, payload, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, fmt.Errorf("corpus: malformed line %q", line)
		}
		meta, ok := manifest[name]
		if !ok {
			return nil, fmt.Errorf("corpus: %q has no manifest entry", name)
		}
		id, err := uuid.FromString(meta.ID)
		if err != nil {
			return nil, fmt.Errorf("corpus: %q: %w", name, err)
		}
		entries = append(entries, Entry{
			Name:      name,
			ID:        id,
			Input:     payload,
			Injection: meta.Injection,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// SQLiEntries returns the embedded SQL-injection corpus. It panics on
// malformed embedded data, which would indicate a broken build rather
// than a runtime condition callers should handle.
func SQLiEntries() []Entry {
	manifest, err := loadManifest()
	if err != nil {
		panic(err)
	}
	entries, err := parse(sqliRaw, manifest)
	if err != nil {
		panic(err)
	}
	return entries
}

// XSSEntries returns the embedded XSS corpus.
func XSSEntries() []Entry {
	manifest, err := loadManifest()
	if err != nil {
		panic(err)
	}
	entries, err := parse(xssRaw, manifest)
	if err != nil {
		panic(err)
	}
	return entries
}
