package parser

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"sem/internal/model"
)

// CodePlugin extracts entities from source code using tree-sitter grammars.
// One plugin instance serves every configured language; the grammar is chosen
// per file by extension.
type CodePlugin struct{}

// NewCodePlugin creates the tree-sitter code plugin.
func NewCodePlugin() *CodePlugin {
	return &CodePlugin{}
}

// ID returns the plugin identifier.
func (p *CodePlugin) ID() string {
	return "code"
}

// Extensions returns every extension claimed by a language config.
func (p *CodePlugin) Extensions() []string {
	return allCodeExtensions()
}

// ExtractEntities parses content with the language grammar selected by the
// file extension. A missing grammar or failed parse yields an empty list.
func (p *CodePlugin) ExtractEntities(content, filePath string) []model.Entity {
	ext := strings.ToLower(filepath.Ext(filePath))
	config := languageConfigForExt(ext)
	if config == nil {
		return nil
	}

	lang := grammarFor(config.ID)
	if lang == nil {
		return nil
	}

	tsParser := sitter.NewParser()
	tsParser.SetLanguage(lang)
	tree, err := tsParser.ParseCtx(context.Background(), nil, []byte(content))
	if err != nil || tree == nil {
		return nil
	}

	return extractCodeEntities(tree.RootNode(), filePath, config, []byte(content))
}
