package pinpoint

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcade-portal/internal/config"
)

// WordsPerSet is the number of clue words in a set.
const WordsPerSet = 5

// ErrNoWordSets is returned when no usable word set is available.
var ErrNoWordSets = errors.New("pinpoint: no word sets")

//go:embed words.yaml
var builtinWords []byte

// WordSet is one puzzle: a category and clue words revealed in order.
type WordSet struct {
	Category string   `yaml:"category"`
	Aliases  []string `yaml:"aliases"`
	Words    []string `yaml:"words"`
}

// Matches reports whether a guess names the category or one of its
// aliases, ignoring case and surrounding space.
func (w WordSet) Matches(guess string) bool {
	guess = normalize(guess)
	if guess == "" {
		return false
	}
	if guess == normalize(w.Category) {
		return true
	}
	for _, a := range w.Aliases {
		if guess == normalize(a) {
			return true
		}
	}
	return false
}

func (w WordSet) valid() bool {
	if strings.TrimSpace(w.Category) == "" || len(w.Words) != WordsPerSet {
		return false
	}
	for _, word := range w.Words {
		if strings.TrimSpace(word) == "" {
			return false
		}
	}
	return true
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

type wordFile struct {
	Sets []WordSet `yaml:"sets"`
}

// ParseWordSets decodes a word set file, dropping malformed sets.
func ParseWordSets(data []byte) ([]WordSet, error) {
	var f wordFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("pinpoint: cannot parse word sets: %w", err)
	}

	sets := make([]WordSet, 0, len(f.Sets))
	for _, s := range f.Sets {
		if s.valid() {
			sets = append(sets, s)
		}
	}
	if len(sets) == 0 {
		return nil, ErrNoWordSets
	}
	return sets, nil
}

// LoadWordSets reads the word sets from path, or the built-in sets when
// path is empty.
func LoadWordSets(path string) ([]WordSet, error) {
	if path == "" {
		return ParseWordSets(builtinWords)
	}
	data, err := os.ReadFile(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("pinpoint: cannot read word sets: %w", err)
	}
	return ParseWordSets(data)
}
