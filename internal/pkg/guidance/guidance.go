package guidance

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"time"

	"github.com/patrickmn/go-cache"
	"gopkg.in/yaml.v3"

	"github.com/validalex/draft-backend/internal/entity"
)

const (
	DefaultTemplateVersion = "cobranca_v1_2"

	DefaultMinParagraphs = 1
	DefaultMaxParagraphs = 5
)

var versionPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Section holds the paragraph bounds and drafting notes of one section.
// Zero bounds mean "not constrained".
type Section struct {
	MinParagraphs int      `json:"minParagraphs" yaml:"minParagraphs"`
	MaxParagraphs int      `json:"maxParagraphs" yaml:"maxParagraphs"`
	Notes         string   `json:"notes" yaml:"notes"`
	Structure     []string `json:"structure" yaml:"structure"`
}

type Template struct {
	Version         string             `json:"version" yaml:"version"`
	SectionGuidance map[string]Section `json:"sectionGuidance" yaml:"sectionGuidance"`
}

// For returns the guidance of key as declared by the template.
func (t *Template) For(key entity.SectionKey) (Section, bool) {
	if t == nil || t.SectionGuidance == nil {
		return Section{}, false
	}
	s, ok := t.SectionGuidance[string(key)]
	return s, ok
}

// WithDefaults returns the guidance for every section, filling unset bounds
// with DefaultMinParagraphs and DefaultMaxParagraphs.
func (t *Template) WithDefaults() map[entity.SectionKey]Section {
	out := make(map[entity.SectionKey]Section, len(entity.SectionKeys))
	for _, k := range entity.SectionKeys {
		s, _ := t.For(k)
		if s.MinParagraphs <= 0 {
			s.MinParagraphs = DefaultMinParagraphs
		}
		if s.MaxParagraphs <= 0 {
			s.MaxParagraphs = DefaultMaxParagraphs
		}
		if s.Structure == nil {
			s.Structure = []string{}
		}
		out[k] = s
	}
	return out
}

// Loader reads templates named <version>.json, <version>.yaml or
// <version>.yml from a filesystem and keeps parsed templates for ttl.
type Loader struct {
	fsys  fs.FS
	cache *cache.Cache
}

func NewLoader(fsys fs.FS, ttl time.Duration) *Loader {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Loader{
		fsys:  fsys,
		cache: cache.New(ttl, 10*time.Minute),
	}
}

// Load returns the template for version, or the default version when empty.
// Errors wrap entity.ErrInvalidTemplateVersion or entity.ErrTemplateLoad.
func (l *Loader) Load(version string) (*Template, error) {
	if version == "" {
		version = DefaultTemplateVersion
	}
	if !versionPattern.MatchString(version) {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidTemplateVersion, version)
	}

	if v, ok := l.cache.Get(version); ok {
		return v.(*Template), nil
	}

	tpl, err := l.read(version)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", entity.ErrTemplateLoad, version, err)
	}
	if tpl.Version == "" {
		tpl.Version = version
	}

	l.cache.SetDefault(version, tpl)
	return tpl, nil
}

func (l *Loader) read(version string) (*Template, error) {
	candidates := []struct {
		name      string
		unmarshal func([]byte, any) error
	}{
		{name: version + ".json", unmarshal: json.Unmarshal},
		{name: version + ".yaml", unmarshal: yaml.Unmarshal},
		{name: version + ".yml", unmarshal: yaml.Unmarshal},
	}

	for _, c := range candidates {
		data, err := fs.ReadFile(l.fsys, path.Clean(c.name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		var tpl Template
		if err := c.unmarshal(data, &tpl); err != nil {
			return nil, fmt.Errorf("parse %s: %w", c.name, err)
		}
		return &tpl, nil
	}

	return nil, fmt.Errorf("template %s: %w", version, fs.ErrNotExist)
}

// Versions lists the template versions available in the filesystem.
func (l *Loader) Versions() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := path.Ext(e.Name())
		switch ext {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		v := e.Name()[:len(e.Name())-len(ext)]
		if !seen[v] && versionPattern.MatchString(v) {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}
