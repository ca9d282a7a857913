// Package catalog describes the games shown in the menu: title, blurb,
// instructions and an ASCII thumbnail. Missing metadata or art never
// fails; a generic entry or placeholder art is used instead.
package catalog

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcade-portal/internal/config"
)

//go:embed catalog.yaml
var defaultCatalog []byte

//go:embed thumbs/*.txt
var thumbs embed.FS

// PlaceholderArt is shown when a thumbnail cannot be loaded.
var PlaceholderArt = []string{
	"+-----------+",
	"|    ???    |",
	"+-----------+",
}

// Entry is the metadata of one game.
type Entry struct {
	ID           string   `yaml:"-"`
	Title        string   `yaml:"title"`
	Blurb        string   `yaml:"blurb"`
	Thumbnail    string   `yaml:"thumbnail"`
	Instructions []string `yaml:"instructions"`
}

// Catalog maps game IDs to entries.
type Catalog struct {
	games map[string]Entry
	dir   string // Directory relative thumbnail paths are resolved against
}

type file struct {
	Games map[string]Entry `yaml:"games"`
}

// Default returns the bundled catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		return &Catalog{games: map[string]Entry{}}
	}
	return c
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: cannot parse: %w", err)
	}
	c := &Catalog{games: make(map[string]Entry, len(f.Games))}
	for id, e := range f.Games {
		e.ID = id
		c.games[id] = e
	}
	return c, nil
}

// Load returns the bundled catalog with entries from customPath, or
// ~/.arcade/catalog.yaml when customPath is empty, laid over it. An
// unreadable override is reported but the bundled catalog is still returned.
func Load(customPath string) (*Catalog, error) {
	c := Default()

	path := customPath
	if path == "" {
		path = filepath.Join(config.ArcadeDir(), "catalog.yaml")
	}
	path = config.ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if customPath == "" && os.IsNotExist(err) {
			return c, nil
		}
		return c, fmt.Errorf("catalog: cannot read %s: %w", path, err)
	}
	override, err := Parse(data)
	if err != nil {
		return c, err
	}

	for id, e := range override.games {
		base, ok := c.games[id]
		if ok {
			e = merge(base, e)
		}
		c.games[id] = e
	}
	c.dir = filepath.Dir(path)
	return c, nil
}

func merge(base, over Entry) Entry {
	if over.Title != "" {
		base.Title = over.Title
	}
	if over.Blurb != "" {
		base.Blurb = over.Blurb
	}
	if over.Thumbnail != "" {
		base.Thumbnail = over.Thumbnail
	}
	if len(over.Instructions) > 0 {
		base.Instructions = over.Instructions
	}
	return base
}

// Lookup returns the entry for id. Unknown games get a generic entry
// titled with fallbackTitle.
func (c *Catalog) Lookup(id, fallbackTitle string) Entry {
	if e, ok := c.games[id]; ok {
		if e.Title == "" {
			e.Title = fallbackTitle
		}
		return e
	}
	if fallbackTitle == "" {
		fallbackTitle = id
	}
	return Entry{
		ID:           id,
		Title:        fallbackTitle,
		Blurb:        "No description yet.",
		Instructions: []string{"Press SPACE to start, P to pause, Q to quit."},
	}
}

// Thumbnail returns the entry's ASCII art. Bundled names are read from the
// embedded set; other paths from disk. Any failure yields PlaceholderArt.
func (c *Catalog) Thumbnail(e Entry) []string {
	if e.Thumbnail == "" {
		return PlaceholderArt
	}

	data, err := thumbs.ReadFile("thumbs/" + e.Thumbnail)
	if err != nil {
		path := config.ExpandPath(e.Thumbnail)
		if !filepath.IsAbs(path) && c.dir != "" {
			path = filepath.Join(c.dir, path)
		}
		data, err = os.ReadFile(path)
	}
	if err != nil || len(strings.TrimSpace(string(data))) == 0 {
		return PlaceholderArt
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
