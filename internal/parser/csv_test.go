package parser

import "testing"

func TestCSVRows(t *testing.T) {
	content := "id,name,price\nwidget,Widget,9.99\ngadget,Gadget,19.99\n"
	p := NewCSVPlugin()
	entities := p.ExtractEntities(content, "products.csv")

	if len(entities) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(entities))
	}
	first := entities[0]
	if first.Name != "row[widget]" {
		t.Errorf("expected row[widget], got %s", first.Name)
	}
	if first.EntityType != "row" {
		t.Errorf("expected row type, got %s", first.EntityType)
	}
	if first.StartLine != 2 || first.EndLine != 2 {
		t.Errorf("row lines: got %d-%d", first.StartLine, first.EndLine)
	}
	if first.Metadata["name"] != "Widget" || first.Metadata["price"] != "9.99" {
		t.Errorf("unexpected metadata: %v", first.Metadata)
	}
}

func TestCSVQuoting(t *testing.T) {
	content := "id,comment\n1,\"hello, world\"\n2,\"she said \"\"hi\"\"\"\n"
	p := NewCSVPlugin()
	entities := p.ExtractEntities(content, "c.csv")

	if len(entities) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(entities))
	}
	if entities[0].Metadata["comment"] != "hello, world" {
		t.Errorf("comma inside quotes mishandled: %q", entities[0].Metadata["comment"])
	}
	if entities[1].Metadata["comment"] != `she said "hi"` {
		t.Errorf("escaped quote mishandled: %q", entities[1].Metadata["comment"])
	}
}

func TestTSVSeparator(t *testing.T) {
	content := "id\tname\nx\tAlpha\n"
	p := NewCSVPlugin()
	entities := p.ExtractEntities(content, "data.tsv")
	if len(entities) != 1 {
		t.Fatalf("expected 1 row, got %d", len(entities))
	}
	if entities[0].Metadata["name"] != "Alpha" {
		t.Errorf("tab separator mishandled: %v", entities[0].Metadata)
	}
}

func TestCSVBlankLinesAndFallbackRowName(t *testing.T) {
	content := "id,name\n\n,NoID\n"
	p := NewCSVPlugin()
	entities := p.ExtractEntities(content, "c.csv")
	if len(entities) != 1 {
		t.Fatalf("expected 1 row, got %d", len(entities))
	}
	if entities[0].Name != "row[row_1]" {
		t.Errorf("empty first column should fall back to ordinal: %s", entities[0].Name)
	}
	if entities[0].StartLine != 3 {
		t.Errorf("blank lines must not shift line numbers: got %d", entities[0].StartLine)
	}
}

func TestCSVEmpty(t *testing.T) {
	p := NewCSVPlugin()
	if got := p.ExtractEntities("", "e.csv"); len(got) != 0 {
		t.Errorf("empty file should yield no entities, got %d", len(got))
	}
	if got := p.ExtractEntities("only,header\n", "h.csv"); len(got) != 0 {
		t.Errorf("header-only file should yield no rows, got %d", len(got))
	}
}
