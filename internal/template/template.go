// =============================================================================
// GEMINI Metadata Import - Template Provider
// =============================================================================
//
// This module loads the canonical GEMINI dataset document once and hands out
// independent copies of it, one per input row.
//
// NAMED ANCHORS:
//   The template repeats many tag names (two keyword blocks, three citation
//   dates, two contact parties). Every element the importer writes to is
//   located once, when the template is loaded, and remembered as a path of
//   child-token indexes from the document node. A clone is an exact copy, so
//   the same paths lead to the same elements in every clone without any
//   searching by tag name.
//
// =============================================================================

package template

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/beevik/etree"
)

//go:embed dataset_empty.xml
var defaultTemplate []byte

// ErrAnchorNotFound is returned when a template lacks an element the importer
// writes to.
var ErrAnchorNotFound = errors.New("anchor not found in template")

// =============================================================================
// TEMPLATE
// =============================================================================

// Template is a parsed, anchor-resolved metadata document.
type Template struct {
	// Source names where the template came from ("embedded" or a file path).
	Source string

	doc   *etree.Document
	paths map[Anchor][]int
}

// Default returns the embedded GEMINI dataset template.
func Default() (*Template, error) {
	return Parse(defaultTemplate, "embedded")
}

// Load reads a template from disk.
//
// PARAMETERS:
//   - path: The template file. Empty selects the embedded template.
//
// RETURNS:
//   - The resolved template.
//   - An error if the file is unreadable, not XML, or misses an anchor.
func Load(path string) (*Template, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	return Parse(data, path)
}

// Parse builds a Template from raw XML.
func Parse(data []byte, source string) (*Template, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", source, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("template %s has no root element", source)
	}

	// Output is compact, so the template's own indentation goes.
	doc.Indent(etree.NoIndent)

	if !hasDeclaration(doc) {
		doc.InsertChildAt(0, etree.NewProcInst("xml", `version="1.0" encoding="UTF-8"`))
	}

	paths := make(map[Anchor][]int, len(locators))
	for anchor, locate := range locators {
		el := locate(root)
		if el == nil {
			return nil, fmt.Errorf("%w: %s (template %s)", ErrAnchorNotFound, anchor, source)
		}
		paths[anchor] = pathOf(el)
	}

	return &Template{
		Source: source,
		doc:    doc,
		paths:  paths,
	}, nil
}

// Anchors lists the resolved anchors in name order.
func (t *Template) Anchors() []Anchor {
	anchors := make([]Anchor, 0, len(t.paths))
	for a := range t.paths {
		anchors = append(anchors, a)
	}
	sort.Slice(anchors, func(i, j int) bool { return anchors[i] < anchors[j] })
	return anchors
}

// Clone returns a fresh, independent record with its anchors bound.
func (t *Template) Clone() (*Record, error) {
	doc := t.doc.Copy()

	anchors := make(map[Anchor]*etree.Element, len(t.paths))
	for anchor, path := range t.paths {
		el, err := follow(&doc.Element, path)
		if err != nil {
			return nil, fmt.Errorf("anchor %s: %w", anchor, err)
		}
		anchors[anchor] = el
	}

	return &Record{Doc: doc, anchors: anchors}, nil
}

// =============================================================================
// RECORD
// =============================================================================

// Record is one row's private copy of the template.
type Record struct {
	Doc *etree.Document

	anchors map[Anchor]*etree.Element
}

// Element returns the element bound to anchor.
func (r *Record) Element(anchor Anchor) (*etree.Element, error) {
	el, ok := r.anchors[anchor]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAnchorNotFound, anchor)
	}
	return el, nil
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// pathOf returns the child-token indexes leading from the document node to el.
func pathOf(el *etree.Element) []int {
	var path []int
	for e := el; e.Parent() != nil; e = e.Parent() {
		path = append([]int{e.Index()}, path...)
	}
	return path
}

// follow walks path down from start.
func follow(start *etree.Element, path []int) (*etree.Element, error) {
	cur := start
	for depth, idx := range path {
		if idx < 0 || idx >= len(cur.Child) {
			return nil, fmt.Errorf("index %d out of range at depth %d", idx, depth)
		}
		next, ok := cur.Child[idx].(*etree.Element)
		if !ok {
			return nil, fmt.Errorf("token %d at depth %d is not an element", idx, depth)
		}
		cur = next
	}
	return cur, nil
}

func hasDeclaration(doc *etree.Document) bool {
	for _, tok := range doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			return true
		}
	}
	return false
}
