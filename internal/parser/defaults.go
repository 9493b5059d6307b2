package parser

// NewDefaultRegistry builds a registry with every built-in plugin. The
// fallback is registered last; it claims no extensions and catches whatever
// the others don't.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewCodePlugin())
	r.Register(NewJSONPlugin())
	r.Register(NewYAMLPlugin())
	r.Register(NewTOMLPlugin())
	r.Register(NewCSVPlugin())
	r.Register(NewMarkdownPlugin())
	r.Register(NewFallbackPlugin())
	return r
}
