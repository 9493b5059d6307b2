package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// normalizeNode renders the entity's token stream with comments removed and
// every whitespace run collapsed to a single space. Two entities that differ
// only in formatting or comments normalise to the same string and therefore
// share a content hash. String and identifier tokens keep their bytes exact.
func normalizeNode(node *sitter.Node, source []byte) string {
	var tokens []string
	collectTokens(node, source, &tokens)
	return strings.Join(tokens, " ")
}

func collectTokens(node *sitter.Node, source []byte, tokens *[]string) {
	if isCommentNode(node.Type()) {
		return
	}
	if node.ChildCount() == 0 {
		text := nodeText(node, source)
		if text != "" {
			*tokens = append(*tokens, text)
		}
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectTokens(node.Child(i), source, tokens)
	}
}

func isCommentNode(nodeType string) bool {
	return strings.Contains(nodeType, "comment")
}
