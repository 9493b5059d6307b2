package parser

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// grammarLoaders maps language ids to their grammar constructors. Loading is
// lazy so that a binary only pays for the grammars it touches.
var grammarLoaders = map[string]func() *sitter.Language{
	"typescript": typescript.GetLanguage,
	"tsx":        tsx.GetLanguage,
	"javascript": javascript.GetLanguage,
	"python":     python.GetLanguage,
	"go":         golang.GetLanguage,
	"rust":       rust.GetLanguage,
	"java":       java.GetLanguage,
	"c":          c.GetLanguage,
	"cpp":        cpp.GetLanguage,
	"ruby":       ruby.GetLanguage,
	"csharp":     csharp.GetLanguage,
	"php":        php.GetLanguage,
}

var (
	grammarMu    sync.RWMutex
	grammarCache = make(map[string]*sitter.Language)
)

// grammarFor returns the cached grammar for a language id, loading it on
// first use. Returns nil when no grammar is available; callers treat that as
// "no entities for this file". The cache is process-wide and write-once per
// language.
func grammarFor(langID string) *sitter.Language {
	grammarMu.RLock()
	lang, ok := grammarCache[langID]
	grammarMu.RUnlock()
	if ok {
		return lang
	}

	grammarMu.Lock()
	defer grammarMu.Unlock()
	if lang, ok := grammarCache[langID]; ok {
		return lang
	}

	loader, ok := grammarLoaders[langID]
	if !ok {
		grammarCache[langID] = nil
		return nil
	}
	lang = loader()
	grammarCache[langID] = lang
	return lang
}
