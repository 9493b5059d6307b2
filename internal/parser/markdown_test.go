package parser

import "testing"

func TestMarkdownSections(t *testing.T) {
	content := `intro text before any heading

# Title

Opening words.

## Install

Run the thing.

## Usage

Use the thing.

# Appendix

Extra notes.
`
	p := NewMarkdownPlugin()
	entities := p.ExtractEntities(content, "README.md")
	byName := indexByName(entities)

	preamble, ok := byName["(preamble)"]
	if !ok {
		t.Fatal("preamble missing")
	}
	if preamble.EntityType != "preamble" || preamble.StartLine != 1 {
		t.Errorf("unexpected preamble: %+v", preamble)
	}

	title, ok := byName["Title"]
	if !ok {
		t.Fatal("Title section missing")
	}
	if title.EntityType != "heading" || title.ParentID != "" {
		t.Errorf("unexpected Title section: %+v", title)
	}
	if title.StartLine != 3 {
		t.Errorf("Title startLine: got %d, want 3", title.StartLine)
	}

	install, ok := byName["Install"]
	if !ok {
		t.Fatal("Install section missing")
	}
	wantParent := "README.md::heading::Title"
	if install.ParentID != wantParent {
		t.Errorf("Install parent: got %q, want %q", install.ParentID, wantParent)
	}

	appendix := byName["Appendix"]
	if appendix.ParentID != "" {
		t.Errorf("Appendix should be top-level, got parent %q", appendix.ParentID)
	}
}

func TestMarkdownSectionContentOwnsLinesUntilNextHeading(t *testing.T) {
	content := "# A\n\nbody a\n\n# B\nbody b\n"
	p := NewMarkdownPlugin()
	byName := indexByName(p.ExtractEntities(content, "d.md"))

	a := byName["A"]
	if a.Content != "# A\n\nbody a" {
		t.Errorf("section A content trimmed wrong: %q", a.Content)
	}
	b := byName["B"]
	if b.StartLine != 5 {
		t.Errorf("section B startLine: got %d, want 5", b.StartLine)
	}
}

func TestMarkdownEmptyAndNoHeadings(t *testing.T) {
	p := NewMarkdownPlugin()
	if got := p.ExtractEntities("", "e.md"); len(got) != 0 {
		t.Errorf("empty file should yield no entities, got %d", len(got))
	}

	entities := p.ExtractEntities("just prose\nmore prose\n", "p.md")
	if len(entities) != 1 || entities[0].EntityType != "preamble" {
		t.Errorf("heading-less file should be one preamble, got %+v", entities)
	}
}
