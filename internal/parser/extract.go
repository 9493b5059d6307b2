package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"sem/internal/hashutil"
	"sem/internal/model"
)

// walkContext is the small immutable state threaded through the syntax tree
// walk. A fresh copy is made at each entity boundary, never mutated in place.
type walkContext struct {
	parentID       string
	insideFunction bool
}

// extractCodeEntities walks the syntax tree depth-first and collects one
// entity per node whose type appears in the language's entity node types.
func extractCodeEntities(root *sitter.Node, filePath string, config *LanguageConfig, source []byte) []model.Entity {
	var entities []model.Entity
	visitNode(root, filePath, config, &entities, walkContext{}, source)
	return entities
}

func visitNode(node *sitter.Node, filePath string, config *LanguageConfig, entities *[]model.Entity, ctx walkContext, source []byte) {
	nodeType := node.Type()

	// Export and decoration wrappers are transparent: the entity comes from
	// the wrapped declaration, not the wrapper.
	if nodeType == "export_statement" {
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			visitNode(decl, filePath, config, entities, ctx, source)
			return
		}
	}
	if nodeType == "decorated_definition" {
		if def := node.ChildByFieldName("definition"); def != nil {
			visitNode(def, filePath, config, entities, ctx, source)
			return
		}
	}

	if containsType(config.EntityNodeTypes, nodeType) {
		entityType := entityTypeForNode(nodeType)

		// Object-literal pairs only count when the value is function-like.
		if nodeType == "pair" {
			if !pairIsFunctionLike(node) {
				return
			}
			entityType = "method"
		}

		// Local bindings inside a function body are noise, not entities.
		if entityType == "variable" && ctx.insideFunction {
			return
		}

		if name := extractName(node, source); name != "" {
			content := nodeText(node, source)
			id := model.BuildEntityID(filePath, entityType, name, ctx.parentID)

			*entities = append(*entities, model.Entity{
				ID:          id,
				FilePath:    filePath,
				EntityType:  entityType,
				Name:        name,
				ParentID:    ctx.parentID,
				Content:     content,
				ContentHash: hashutil.ContentHash(normalizeNode(node, source)),
				StartLine:   int(node.StartPoint().Row) + 1,
				EndLine:     int(node.EndPoint().Row) + 1,
			})

			childCtx := walkContext{
				parentID:       id,
				insideFunction: ctx.insideFunction || containsType(config.FunctionNodeTypes, nodeType),
			}
			for i := 0; i < int(node.NamedChildCount()); i++ {
				visitNode(node.NamedChild(i), filePath, config, entities, childCtx, source)
			}
			return
		}
	}

	childCtx := ctx
	if containsType(config.FunctionNodeTypes, nodeType) {
		childCtx.insideFunction = true
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		visitNode(node.NamedChild(i), filePath, config, entities, childCtx, source)
	}
}

// extractName resolves the human identifier of an entity node. The lookup
// order is: the node's name field, the declarator's name for variable-like
// declarations, the key of a key-value pair, and finally the first
// identifier-shaped named child.
func extractName(node *sitter.Node, source []byte) string {
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return nodeText(nameNode, source)
	}

	switch node.Type() {
	case "lexical_declaration", "variable_declaration", "var_declaration",
		"const_declaration", "type_declaration", "field_declaration", "declaration":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			switch child.Type() {
			case "variable_declarator", "var_spec", "const_spec", "type_spec",
				"init_declarator":
				if declName := child.ChildByFieldName("name"); declName != nil {
					return nodeText(declName, source)
				}
				if declName := child.ChildByFieldName("declarator"); declName != nil {
					return nodeText(declName, source)
				}
			}
		}
	case "pair":
		if key := node.ChildByFieldName("key"); key != nil {
			return strings.Trim(nodeText(key, source), `"'`)
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "identifier", "type_identifier", "field_identifier",
			"property_identifier", "constant", "simple_identifier":
			return nodeText(child, source)
		}
	}

	return ""
}

// pairIsFunctionLike reports whether an object-literal pair's value is a
// function expression.
func pairIsFunctionLike(node *sitter.Node) bool {
	value := node.ChildByFieldName("value")
	if value == nil {
		return false
	}
	switch value.Type() {
	case "function", "function_expression", "arrow_function", "generator_function":
		return true
	}
	return false
}

func containsType(types []string, t string) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func nodeText(node *sitter.Node, source []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if int(end) > len(source) {
		end = uint32(len(source))
	}
	if start > end {
		return ""
	}
	return string(source[start:end])
}
