package agent

import (
	"fmt"
	"sort"

	"tailortalk/pkg/llmprovider"
)

// ToolRegistry holds the tools offered to the model. Registration happens at
// startup; lookups afterwards are read-only.
type ToolRegistry struct {
	byName map[string]Tool
	names  []string
}

func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{byName: map[string]Tool{}}
}

// Register adds tool. Two tools with one name is a wiring bug and panics.
func (r *ToolRegistry) Register(tool Tool) {
	name := tool.Name()
	if _, dup := r.byName[name]; dup {
		panic(fmt.Sprintf("agent: tool %q registered twice", name))
	}
	r.byName[name] = tool

	i := sort.SearchStrings(r.names, name)
	r.names = append(r.names, "")
	copy(r.names[i+1:], r.names[i:])
	r.names[i] = name
}

func (r *ToolRegistry) Get(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// List returns the tools ordered by name.
func (r *ToolRegistry) List() []Tool {
	out := make([]Tool, len(r.names))
	for i, n := range r.names {
		out[i] = r.byName[n]
	}
	return out
}

// Definitions renders the tools as function declarations, ordered by name.
func (r *ToolRegistry) Definitions() []llmprovider.Tool {
	out := make([]llmprovider.Tool, len(r.names))
	for i, n := range r.names {
		t := r.byName[n]
		out[i] = llmprovider.Tool{Name: n, Description: t.Description(), Parameters: t.Parameters()}
	}
	return out
}
