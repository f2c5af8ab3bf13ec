package report

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Renderer writes a report in one output format.
type Renderer interface {
	// Format returns the format name used to select the renderer, e.g. "xlsx".
	Format() string

	// Render writes r to w.
	Render(w io.Writer, r *Report) error
}

// Registry maps format names to renderers.
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry returns a registry holding rs.
func NewRegistry(rs ...Renderer) *Registry {
	reg := &Registry{renderers: make(map[string]Renderer, len(rs))}
	for _, r := range rs {
		reg.Register(r)
	}
	return reg
}

// Register adds r, replacing any renderer with the same format.
func (reg *Registry) Register(r Renderer) {
	reg.renderers[strings.ToLower(r.Format())] = r
}

// Lookup returns the renderer for format.
func (reg *Registry) Lookup(format string) (Renderer, error) {
	r, ok := reg.renderers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %s)", format, strings.Join(reg.Formats(), ", "))
	}
	return r, nil
}

// Formats lists the registered format names, sorted.
func (reg *Registry) Formats() []string {
	out := make([]string, 0, len(reg.renderers))
	for f := range reg.renderers {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}
