package cli

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/reveal"
)

// pageElement is one box of a page description.
type pageElement struct {
	Tag      string            `yaml:"tag"`
	ID       string            `yaml:"id"`
	X        float64           `yaml:"x"`
	Y        float64           `yaml:"y"`
	Width    float64           `yaml:"width"`
	Height   float64           `yaml:"height"`
	Attrs    map[string]string `yaml:"attrs"`
	Path     []reveal.Vec2     `yaml:"path"`
	Children []pageElement     `yaml:"children"`
}

// page is a document description for headless replay:
//
//	viewport: {width: 800, height: 600}
//	elements:
//	  - {tag: div, id: hero, y: 900, width: 200, height: 100, attrs: {data-aos: fade-up}}
type page struct {
	Viewport struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"viewport"`
	Elements []pageElement `yaml:"elements"`
}

// loadPage builds a Document from a YAML page description. labels maps
// element IDs to the id attribute, or to the tag when there is none.
func loadPage(data []byte) (doc *reveal.Document, labels map[uint32]string, err error) {
	var p page
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, nil, fmt.Errorf("parse page: %w", err)
	}
	if p.Viewport.Width <= 0 || p.Viewport.Height <= 0 {
		p.Viewport.Width, p.Viewport.Height = 800, 600
	}
	doc = reveal.NewDocument(p.Viewport.Width, p.Viewport.Height)
	labels = make(map[uint32]string)
	for _, pe := range p.Elements {
		doc.Root().AddChild(buildElement(pe, labels))
	}
	return doc, labels, nil
}

func buildElement(pe pageElement, labels map[uint32]string) *reveal.Element {
	tag := pe.Tag
	if tag == "" {
		tag = "div"
	}
	el := reveal.NewBox(tag, pe.X, pe.Y, pe.Width, pe.Height)
	for k, v := range pe.Attrs {
		el.SetAttr(k, v)
	}
	label := tag
	if pe.ID != "" {
		el.SetAttr("id", pe.ID)
		label = "#" + pe.ID
	}
	el.Path = pe.Path
	labels[el.ID] = label
	for _, c := range pe.Children {
		el.AddChild(buildElement(c, labels))
	}
	return el
}
