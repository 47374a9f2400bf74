package reveal

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Catalog is a set of presets and keyframe lists, optionally with global
// defaults, loaded from YAML:
//
//	defaults:
//	  duration: 600ms
//	  offset: 80
//	presets:
//	  rise:
//	    from: {opacity: 0, translateY: 40}
//	    easing: ease-out-back
//	keyframes:
//	  wobble:
//	    - {offset: 0}
//	    - {offset: 0.5, style: {rotate: 6}}
//	    - {offset: 1}
//
// Style maps only list the fields that differ from the visible state.
type Catalog struct {
	Presets   map[string]Preset    `yaml:"presets"`
	Keyframes map[string]Keyframes `yaml:"keyframes"`
	Defaults  yaml.Node            `yaml:"defaults"`
}

// LoadCatalog parses a YAML catalog and validates its keyframe lists.
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for name, k := range c.Keyframes {
		if err := k.Validate(); err != nil {
			return nil, fmt.Errorf("parse catalog: keyframes %q: %w", name, err)
		}
	}
	return &c, nil
}

// Config overlays the catalog defaults onto base. Fields the catalog does
// not mention keep their base value.
func (c *Catalog) Config(base Config) (Config, error) {
	if c.Defaults.Kind == 0 {
		return base, nil
	}
	cfg := base
	if err := c.Defaults.Decode(&cfg); err != nil {
		return base, fmt.Errorf("catalog defaults: %w", err)
	}
	return cfg, nil
}

// UnmarshalYAML decodes a style map on top of the visible state, so only
// the differing fields need to be written.
func (s *Style) UnmarshalYAML(value *yaml.Node) error {
	type plain Style
	p := plain(Visible())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*s = Style(p)
	return nil
}

// UnmarshalYAML lets a keyframe omit its style, meaning the visible state.
func (k *Keyframe) UnmarshalYAML(value *yaml.Node) error {
	type plain Keyframe
	p := plain{Style: Visible()}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*k = Keyframe(p)
	return nil
}

// UnmarshalYAML defaults From to the hidden state when a preset omits it.
func (p *Preset) UnmarshalYAML(value *yaml.Node) error {
	type plain Preset
	q := plain{From: Hidden()}
	if err := value.Decode(&q); err != nil {
		return err
	}
	*p = Preset(q)
	return nil
}
