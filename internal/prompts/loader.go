// Package prompts holds the model prompt templates for breed recommendations
// and guide generation. Each embedded JSON file is a flat map of prompt key
// to template text.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Set is one parsed prompt file.
type Set map[string]string

// Keys returns the prompt keys in the set, sorted.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	loadOnce sync.Once
	sets     map[string]Set
	loadErr  error
)

func loadAll() (map[string]Set, error) {
	loadOnce.Do(func() {
		names, err := fs.Glob(promptFiles, "*.json")
		if err != nil {
			loadErr = err
			return
		}
		parsed := make(map[string]Set, len(names))
		for _, name := range names {
			data, err := promptFiles.ReadFile(name)
			if err != nil {
				loadErr = fmt.Errorf("failed to read prompt file %s: %w", name, err)
				return
			}
			var set Set
			if err := json.Unmarshal(data, &set); err != nil {
				loadErr = fmt.Errorf("failed to parse prompt file %s: %w", name, err)
				return
			}
			parsed[name] = set
		}
		sets = parsed
	})
	return sets, loadErr
}

// Load returns the prompt set stored in filename (e.g. "guide.json").
func Load(filename string) (Set, error) {
	all, err := loadAll()
	if err != nil {
		return nil, err
	}
	set, ok := all[filename]
	if !ok {
		return nil, fmt.Errorf("unknown prompt file %s", filename)
	}
	return set, nil
}

// Get retrieves a single prompt.
func Get(filename, key string) (string, error) {
	set, err := Load(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := set[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts the caller cannot run without.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format fills {{.Key}} placeholders from data. Placeholders with no value
// are left untouched.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Render looks up a prompt and fills it in one step.
func Render(filename, key string, data map[string]string) (string, error) {
	tmpl, err := Get(filename, key)
	if err != nil {
		return "", err
	}
	return Format(tmpl, data), nil
}
