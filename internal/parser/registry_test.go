package parser

import "testing"

func TestRegistryDispatchByExtension(t *testing.T) {
	r := NewDefaultRegistry()

	cases := []struct {
		path string
		want string
	}{
		{"src/main.ts", "code"},
		{"src/app.TSX", "code"},
		{"main.go", "code"},
		{"lib.rs", "code"},
		{"package.json", "json"},
		{"config.YAML", "yaml"},
		{"config.yml", "yaml"},
		{"Cargo.toml", "toml"},
		{"data.csv", "csv"},
		{"data.tsv", "csv"},
		{"README.md", "markdown"},
		{"Makefile", "fallback"},
		{"binary.bin", "fallback"},
		{"noextension", "fallback"},
	}
	for _, tc := range cases {
		plugin := r.GetPlugin(tc.path)
		if plugin == nil {
			t.Fatalf("no plugin for %s", tc.path)
		}
		if plugin.ID() != tc.want {
			t.Errorf("%s: expected plugin %s, got %s", tc.path, tc.want, plugin.ID())
		}
	}
}

func TestRegistryGetPluginByID(t *testing.T) {
	r := NewDefaultRegistry()
	if r.GetPluginByID("json") == nil {
		t.Error("json plugin not found by id")
	}
	if r.GetPluginByID("nope") != nil {
		t.Error("unknown id should return nil")
	}
}

func TestRegistryListPlugins(t *testing.T) {
	r := NewDefaultRegistry()
	plugins := r.ListPlugins()
	if len(plugins) != 7 {
		t.Errorf("expected 7 plugins, got %d", len(plugins))
	}
	if plugins[len(plugins)-1].ID() != "fallback" {
		t.Error("fallback must be registered last")
	}
}

func TestRegistryDotfileGoesToFallback(t *testing.T) {
	r := NewDefaultRegistry()
	// filepath.Ext(".gitignore") is ".gitignore"; no plugin claims it.
	if got := r.GetPlugin(".gitignore").ID(); got != "fallback" {
		t.Errorf("expected fallback for dotfile, got %s", got)
	}
}
