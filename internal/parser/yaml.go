package parser

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"sem/internal/hashutil"
	"sem/internal/model"
)

// yamlMaxDepth is the deepest key level that still yields entities
// (the document root is depth 0).
const yamlMaxDepth = 4

// YAMLPlugin extracts properties and sections from YAML documents. Key paths
// are dot-joined; the yaml.v3 node API supplies line numbers directly.
type YAMLPlugin struct{}

// NewYAMLPlugin creates the YAML plugin.
func NewYAMLPlugin() *YAMLPlugin {
	return &YAMLPlugin{}
}

func (p *YAMLPlugin) ID() string { return "yaml" }

func (p *YAMLPlugin) Extensions() []string { return []string{".yml", ".yaml"} }

func (p *YAMLPlugin) ExtractEntities(content, filePath string) []model.Entity {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}

	var entities []model.Entity
	walkYAMLMapping(root, filePath, "", 1, &entities)
	return entities
}

// walkYAMLMapping emits an entity per key of a mapping node and recurses
// into mapping values while the depth budget allows.
func walkYAMLMapping(mapping *yaml.Node, filePath, prefix string, depth int, entities *[]model.Entity) {
	if depth > yamlMaxDepth {
		return
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		value := mapping.Content[i+1]

		keyPath := key.Value
		if prefix != "" {
			keyPath = prefix + "." + key.Value
		}

		entityType := "property"
		var entityContent string
		switch value.Kind {
		case yaml.MappingNode, yaml.SequenceNode:
			entityType = "section"
			if dumped, err := yaml.Marshal(value); err == nil {
				entityContent = strings.TrimSpace(string(dumped))
			}
		default:
			entityContent = fmt.Sprintf("%s: %s", key.Value, value.Value)
		}

		*entities = append(*entities, model.Entity{
			ID:          model.BuildEntityID(filePath, entityType, keyPath, ""),
			FilePath:    filePath,
			EntityType:  entityType,
			Name:        keyPath,
			Content:     entityContent,
			ContentHash: hashutil.ContentHash(strings.TrimSpace(entityContent)),
			StartLine:   key.Line,
			EndLine:     yamlEndLine(value),
		})

		if value.Kind == yaml.MappingNode {
			walkYAMLMapping(value, filePath, keyPath, depth+1, entities)
		}
	}
}

// yamlEndLine returns the last source line covered by a node, descending
// into collections and accounting for multi-line scalars.
func yamlEndLine(node *yaml.Node) int {
	end := node.Line
	if node.Kind == yaml.ScalarNode {
		end += strings.Count(node.Value, "\n")
	}
	for _, child := range node.Content {
		if childEnd := yamlEndLine(child); childEnd > end {
			end = childEnd
		}
	}
	return end
}
