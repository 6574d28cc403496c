package testutil

import (
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ConfigBuilder builds config overlays for loader and app tests. Only the
// fields that were set are rendered, so the rest keep their defaults.
type ConfigBuilder struct {
	doc map[string]any
}

// NewConfigBuilder creates an empty overlay.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{doc: make(map[string]any)}
}

func (b *ConfigBuilder) section(name string) map[string]any {
	s, ok := b.doc[name].(map[string]any)
	if !ok {
		s = make(map[string]any)
		b.doc[name] = s
	}
	return s
}

// WithProfilePath sets profile_path.
func (b *ConfigBuilder) WithProfilePath(path string) *ConfigBuilder {
	b.doc["profile_path"] = path
	return b
}

// WithAssumeYes sets assume_yes.
func (b *ConfigBuilder) WithAssumeYes(yes bool) *ConfigBuilder {
	b.doc["assume_yes"] = yes
	return b
}

// WithPythonCount sets python.count.
func (b *ConfigBuilder) WithPythonCount(count int) *ConfigBuilder {
	b.section("python")["count"] = count
	return b
}

// WithFallbackTag sets asdf.fallback_tag.
func (b *ConfigBuilder) WithFallbackTag(tag string) *ConfigBuilder {
	b.section("asdf")["fallback_tag"] = tag
	return b
}

// WithTools sets pipx.tools.
func (b *ConfigBuilder) WithTools(tools ...string) *ConfigBuilder {
	b.section("pipx")["tools"] = tools
	return b
}

// WithField sets an arbitrary top-level key, for unknown-key tests.
func (b *ConfigBuilder) WithField(key string, value any) *ConfigBuilder {
	b.doc[key] = value
	return b
}

// ToYAML renders the overlay as YAML.
func (b *ConfigBuilder) ToYAML() string {
	out, err := yaml.Marshal(b.doc)
	if err != nil {
		panic(err)
	}
	return string(out)
}

// ToTOML renders the overlay as TOML.
func (b *ConfigBuilder) ToTOML() string {
	out, err := toml.Marshal(b.doc)
	if err != nil {
		panic(err)
	}
	return string(out)
}
