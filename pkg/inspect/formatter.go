package inspect

import (
	"fmt"
	"strings"

	"github.com/mash-protocol/objwatch/pkg/model"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowIDs includes short node ids alongside type names
	ShowIDs bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowIDs:     false,
		IndentWidth: 2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatValue formats a scalar value for display.
func (f *Formatter) FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return fmt.Sprintf("%q", v)
	case float64:
		return fmt.Sprintf("%.2f", v)
	case float32:
		return fmt.Sprintf("%.2f", v)
	case []byte:
		return fmt.Sprintf("0x%x", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatNode returns the one-line label of a node.
func (f *Formatter) FormatNode(n *model.Node) string {
	if f.ShowIDs {
		return n.String()
	}
	return n.Type().Name()
}

// FormatTree renders root and everything reachable from it, one attribute
// per line. Contained nodes are expanded in place; referenced nodes are
// shown as "-> Type". A node already printed is not expanded again.
func (f *Formatter) FormatTree(root *model.Node) string {
	var sb strings.Builder
	sb.WriteString(f.FormatNode(root))
	sb.WriteString("\n")
	f.writeNode(&sb, root, 1, map[*model.Node]bool{root: true})
	return sb.String()
}

func (f *Formatter) writeNode(sb *strings.Builder, n *model.Node, depth int, seen map[*model.Node]bool) {
	for _, name := range n.Names() {
		v, _ := n.Get(name)
		f.writeEntry(sb, name, v, n.Type().IsContainment(name), depth, seen)
	}
}

func (f *Formatter) writeEntry(sb *strings.Builder, label string, v any, contained bool, depth int, seen map[*model.Node]bool) {
	switch c := v.(type) {
	case *model.List:
		sb.WriteString(f.Indent(depth, fmt.Sprintf("%s: list[%d]%s\n", label, c.Len(), marker(c.Containment()))))
		for i, e := range c.Values() {
			f.writeEntry(sb, fmt.Sprintf("[%d]", i), e, c.Containment(), depth+1, seen)
		}
		return
	case *model.Map:
		sb.WriteString(f.Indent(depth, fmt.Sprintf("%s: map[%d]%s\n", label, c.Len(), marker(c.Containment()))))
		for _, p := range c.Pairs() {
			f.writeEntry(sb, p.Key, p.Value, c.Containment(), depth+1, seen)
		}
		return
	}

	node, ok := model.AsNode(v)
	if !ok {
		sb.WriteString(f.Indent(depth, fmt.Sprintf("%s: %s\n", label, f.FormatValue(v))))
		return
	}
	if !contained || seen[node] {
		sb.WriteString(f.Indent(depth, fmt.Sprintf("%s: -> %s\n", label, f.FormatNode(node))))
		return
	}
	seen[node] = true
	sb.WriteString(f.Indent(depth, fmt.Sprintf("%s: %s\n", label, f.FormatNode(node))))
	f.writeNode(sb, node, depth+1, seen)
}

func marker(containment bool) string {
	if containment {
		return " (contained)"
	}
	return ""
}
