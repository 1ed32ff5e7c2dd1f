package converter

import (
	"strings"

	"github.com/beevik/etree"
)

// listSeparator splits multi-valued columns.
const listSeparator = ","

// splitList splits a delimited value into trimmed, non-empty tokens.
func splitList(raw string) []string {
	var tokens []string
	for _, part := range strings.Split(raw, listSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// insertBefore inserts children into parent, in order, immediately before
// anchor. A nil anchor appends them.
func insertBefore(parent, anchor *etree.Element, children ...*etree.Element) {
	if anchor == nil {
		for _, child := range children {
			parent.AddChild(child)
		}
		return
	}

	index := anchor.Index()
	for _, child := range children {
		parent.InsertChildAt(index, child)
		index++
	}
}

// expandList builds one element per token of raw and inserts them before
// anchor. It returns the number of elements added.
func expandList(raw string, parent, anchor *etree.Element, build func(token string) *etree.Element) int {
	tokens := splitList(raw)
	children := make([]*etree.Element, 0, len(tokens))
	for _, token := range tokens {
		children = append(children, build(token))
	}
	insertBefore(parent, anchor, children...)
	return len(children)
}

// wrapped builds <outer><inner>token</inner></outer>.
func wrapped(outer, inner string) func(string) *etree.Element {
	return func(token string) *etree.Element {
		el := etree.NewElement(outer)
		el.CreateElement(inner).SetText(token)
		return el
	}
}

// leaf builds <tag>token</tag>.
func leaf(tag string) func(string) *etree.Element {
	return func(token string) *etree.Element {
		el := etree.NewElement(tag)
		el.SetText(token)
		return el
	}
}

// splitFields splits a delimited value into trimmed tokens, keeping empty
// positions so two lists can be paired index by index. Blank input yields
// no tokens.
func splitFields(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, listSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
