package parser

import "testing"

func TestYAMLTopLevelEntities(t *testing.T) {
	content := "name: my-app\nversion: 1.0.0\nscripts:\n  build: tsc\n  test: jest\ndescription: a test app\n"
	p := NewYAMLPlugin()
	entities := p.ExtractEntities(content, "config.yaml")

	byName := indexByName(entities)

	name, ok := byName["name"]
	if !ok {
		t.Fatal("name missing")
	}
	if name.EntityType != "property" || name.StartLine != 1 || name.EndLine != 1 {
		t.Errorf("unexpected name entity: %+v", name)
	}

	scripts, ok := byName["scripts"]
	if !ok {
		t.Fatal("scripts missing")
	}
	if scripts.EntityType != "section" {
		t.Errorf("scripts should be a section, got %s", scripts.EntityType)
	}
	if scripts.StartLine != 3 || scripts.EndLine != 5 {
		t.Errorf("scripts lines: got %d-%d, want 3-5", scripts.StartLine, scripts.EndLine)
	}

	// Nested keys are dot-joined.
	build, ok := byName["scripts.build"]
	if !ok {
		t.Fatal("scripts.build missing")
	}
	if build.EntityType != "property" || build.StartLine != 4 {
		t.Errorf("unexpected scripts.build: %+v", build)
	}
}

func TestYAMLNestedAdditionScenario(t *testing.T) {
	p := NewYAMLPlugin()
	before := p.ExtractEntities("server:\n  host: localhost\n", "c.yaml")
	after := p.ExtractEntities("server:\n  host: 0.0.0.0\ndatabase:\n  pool_size: 10\n", "c.yaml")

	beforeByName := indexByName(before)
	afterByName := indexByName(after)

	if beforeByName["server.host"].ContentHash == afterByName["server.host"].ContentHash {
		t.Error("changed host value must change the hash")
	}
	if _, ok := afterByName["database"]; !ok {
		t.Error("database section missing from after side")
	}
	if _, ok := afterByName["database.pool_size"]; !ok {
		t.Error("database.pool_size missing from after side")
	}
	if _, ok := beforeByName["database"]; ok {
		t.Error("database must not exist on the before side")
	}
}

func TestYAMLDepthLimit(t *testing.T) {
	content := "a:\n  b:\n    c:\n      d:\n        e: 1\n"
	p := NewYAMLPlugin()
	byName := indexByName(p.ExtractEntities(content, "deep.yaml"))

	if _, ok := byName["a.b.c.d"]; !ok {
		t.Error("depth-4 key should be emitted")
	}
	if _, ok := byName["a.b.c.d.e"]; ok {
		t.Error("depth-5 key should not be emitted")
	}
}

func TestYAMLInvalidAndEmpty(t *testing.T) {
	p := NewYAMLPlugin()
	if got := p.ExtractEntities("{invalid: [", "bad.yaml"); len(got) != 0 {
		t.Errorf("invalid YAML should yield no entities, got %d", len(got))
	}
	if got := p.ExtractEntities("", "empty.yaml"); len(got) != 0 {
		t.Errorf("empty file should yield no entities, got %d", len(got))
	}
	if got := p.ExtractEntities("- a\n- b\n", "seq.yaml"); len(got) != 0 {
		t.Errorf("sequence root should yield no entities, got %d", len(got))
	}
}

func TestYAMLSequenceValueIsSection(t *testing.T) {
	p := NewYAMLPlugin()
	byName := indexByName(p.ExtractEntities("steps:\n  - one\n  - two\n", "s.yaml"))
	steps, ok := byName["steps"]
	if !ok {
		t.Fatal("steps missing")
	}
	if steps.EntityType != "section" {
		t.Errorf("sequence value should be a section, got %s", steps.EntityType)
	}
	if steps.EndLine != 3 {
		t.Errorf("steps endLine: got %d, want 3", steps.EndLine)
	}
}
