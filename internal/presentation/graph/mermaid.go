package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/dictshape/pkg/schema"
)

// Overlay marks a validation failure on the diagram.
type Overlay struct {
	Failure *schema.ValidationError
}

// GenerateMermaid produces a Mermaid flowchart of a template.
// It applies semantic styling:
// - Root: ((Circle))
// - Nested template: [Rectangle]
// - Leaf: [/Parallelogram/] labelled "key: kind"
// With an overlay, the failing field and its ancestors are highlighted. A key
// the template does not declare is drawn as a dashed, unexpected child.
func GenerateMermaid(tmpl *schema.Template, overlay *Overlay) string {
	g := &generator{overlay: overlay}
	g.sb.WriteString("graph TD\n")
	g.sb.WriteString("    root((\"record\"))\n")
	g.walk(tmpl, "root", "")

	if overlay != nil && overlay.Failure != nil {
		g.sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds.
		g.sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		g.sb.WriteString("    classDef failed fill:#fecaca,stroke:#b91c1c,stroke-width:4px,color:#000;\n")
		for _, id := range g.visited {
			fmt.Fprintf(&g.sb, "    class %s visited;\n", id)
		}
		if g.failed != "" {
			fmt.Fprintf(&g.sb, "    class %s failed;\n", g.failed)
		}
	}
	return g.sb.String()
}

type generator struct {
	sb      strings.Builder
	overlay *Overlay
	next    int
	visited []string
	failed  string
}

// walk emits the children of one template level. parentID is the Mermaid id
// of the node they hang from and path is its dot-joined key path.
func (g *generator) walk(tmpl *schema.Template, parentID, path string) {
	if g.onFailurePath(path) {
		g.visited = append(g.visited, parentID)
	}

	for _, key := range tmpl.Keys() {
		f, _ := tmpl.Get(key)
		here := key
		if path != "" {
			here = path + "." + key
		}
		id := g.newID()

		if f.IsNode() {
			fmt.Fprintf(&g.sb, "    %s[\"%s\"]\n", id, escapeLabel(key))
		} else {
			fmt.Fprintf(&g.sb, "    %s[/\"%s: %s\"/]\n", id, escapeLabel(key), f.Kind())
		}
		fmt.Fprintf(&g.sb, "    %s --> %s\n", parentID, id)

		if g.isFailure(here) {
			g.failed = id
		}
		if f.IsNode() {
			g.walk(f.Template(), id, here)
		}
	}

	if g.failed == "" && g.isUnexpectedUnder(path, tmpl) {
		id := g.newID()
		key := g.overlay.Failure.Path[len(prefix(path)):]
		fmt.Fprintf(&g.sb, "    %s[\"%s (unexpected)\"]\n", id, escapeLabel(key))
		fmt.Fprintf(&g.sb, "    %s -.-> %s\n", parentID, id)
		g.failed = id
	}
}

func (g *generator) newID() string {
	g.next++
	return fmt.Sprintf("n%d", g.next)
}

func (g *generator) isFailure(path string) bool {
	return g.overlay != nil && g.overlay.Failure != nil && g.overlay.Failure.Path == path
}

// onFailurePath reports whether path is a strict ancestor of the failing field.
func (g *generator) onFailurePath(path string) bool {
	if g.overlay == nil || g.overlay.Failure == nil {
		return false
	}
	return strings.HasPrefix(g.overlay.Failure.Path, prefix(path))
}

// isUnexpectedUnder reports whether the failure names a key directly below
// path that tmpl does not declare.
func (g *generator) isUnexpectedUnder(path string, tmpl *schema.Template) bool {
	if g.overlay == nil || g.overlay.Failure == nil ||
		g.overlay.Failure.Kind != schema.FailureMismatchedKeys {
		return false
	}
	p := prefix(path)
	full := g.overlay.Failure.Path
	if !strings.HasPrefix(full, p) {
		return false
	}
	key := full[len(p):]
	return key != "" && !tmpl.Has(key)
}

func prefix(path string) string {
	if path == "" {
		return ""
	}
	return path + "."
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
