package parser

import "testing"

func TestTOMLSectionsAndProperties(t *testing.T) {
	content := `title = "example"

[package]
name = "my-app"
version = "1.0.0"

[dependencies]
serde = "1.0"
`
	p := NewTOMLPlugin()
	entities := p.ExtractEntities(content, "Cargo.toml")
	byName := indexByName(entities)

	title, ok := byName["title"]
	if !ok {
		t.Fatal("title missing")
	}
	if title.EntityType != "property" || title.StartLine != 1 {
		t.Errorf("unexpected title entity: %+v", title)
	}

	pkg, ok := byName["package"]
	if !ok {
		t.Fatal("package missing")
	}
	if pkg.EntityType != "section" {
		t.Errorf("package should be a section, got %s", pkg.EntityType)
	}
	if pkg.StartLine != 3 {
		t.Errorf("package startLine: got %d, want 3", pkg.StartLine)
	}
	if pkg.EndLine < 5 {
		t.Errorf("package section should span its keys, endLine %d", pkg.EndLine)
	}

	if _, ok := byName["package.version"]; !ok {
		t.Error("package.version missing")
	}
	if byName["package.version"].EntityType != "property" {
		t.Error("package.version should be a property")
	}

	if _, ok := byName["dependencies.serde"]; !ok {
		t.Error("dependencies.serde missing")
	}
}

func TestTOMLValueChangeChangesHash(t *testing.T) {
	p := NewTOMLPlugin()
	before := indexByName(p.ExtractEntities("[server]\nport = 8080\n", "c.toml"))
	after := indexByName(p.ExtractEntities("[server]\nport = 9090\n", "c.toml"))

	if before["server.port"].ContentHash == after["server.port"].ContentHash {
		t.Error("changed port must change the hash")
	}
	if before["server"].ContentHash == after["server"].ContentHash {
		t.Error("section hash must follow its members")
	}
}

func TestTOMLInvalidAndEmpty(t *testing.T) {
	p := NewTOMLPlugin()
	if got := p.ExtractEntities("= broken", "bad.toml"); len(got) != 0 {
		t.Errorf("invalid TOML should yield no entities, got %d", len(got))
	}
	if got := p.ExtractEntities("", "empty.toml"); len(got) != 0 {
		t.Errorf("empty file should yield no entities, got %d", len(got))
	}
}
