package parser

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	tomlv2 "github.com/pelletier/go-toml/v2"

	"sem/internal/hashutil"
	"sem/internal/model"
)

// tomlMaxDepth mirrors the YAML plugin's depth budget.
const tomlMaxDepth = 4

// TOMLPlugin extracts properties and sections from TOML documents. Decoding
// uses BurntSushi/toml because its MetaData preserves document key order;
// section subtrees are re-serialised with go-toml/v2, whose map marshalling
// is deterministic.
type TOMLPlugin struct{}

// NewTOMLPlugin creates the TOML plugin.
func NewTOMLPlugin() *TOMLPlugin {
	return &TOMLPlugin{}
}

func (p *TOMLPlugin) ID() string { return "toml" }

func (p *TOMLPlugin) Extensions() []string { return []string{".toml"} }

func (p *TOMLPlugin) ExtractEntities(content, filePath string) []model.Entity {
	var parsed map[string]interface{}
	md, err := toml.Decode(content, &parsed)
	if err != nil {
		return nil
	}

	lines := strings.Split(content, "\n")
	keys := md.Keys()

	// Document order is non-decreasing in the source, so each key's line is
	// found by scanning forward from the previous key's line.
	keyLines := make([]int, len(keys))
	cursor := 0
	for i, key := range keys {
		keyLines[i] = findTOMLKeyLine(lines, key, cursor)
		if keyLines[i] > cursor {
			cursor = keyLines[i]
		}
	}

	var entities []model.Entity
	for i, key := range keys {
		path := []string(key)
		if len(path) > tomlMaxDepth {
			continue
		}
		value, ok := lookupTOMLValue(parsed, path)
		if !ok {
			continue
		}

		name := strings.Join(path, ".")
		entityType := "property"
		var entityContent string
		switch v := value.(type) {
		case map[string]interface{}:
			entityType = "section"
			entityContent = dumpTOMLTable(v)
		case []map[string]interface{}:
			entityType = "section"
			entityContent = dumpTOMLTable(map[string]interface{}{path[len(path)-1]: v})
		default:
			entityContent = fmt.Sprintf("%s = %v", path[len(path)-1], v)
		}

		startLine := keyLines[i]
		endLine := startLine
		if entityType == "section" {
			for j := i + 1; j < len(keys); j++ {
				if isTOMLPrefix(path, keys[j]) && keyLines[j] > endLine {
					endLine = keyLines[j]
				}
			}
		}

		entities = append(entities, model.Entity{
			ID:          model.BuildEntityID(filePath, entityType, name, ""),
			FilePath:    filePath,
			EntityType:  entityType,
			Name:        name,
			Content:     entityContent,
			ContentHash: hashutil.ContentHash(strings.TrimSpace(entityContent)),
			StartLine:   startLine,
			EndLine:     endLine,
		})
	}

	return entities
}

// findTOMLKeyLine locates a key in the source, matching "[key]", "[[key]]",
// "key =" and "key:" forms. Best-effort: unmatched keys inherit the cursor
// line.
func findTOMLKeyLine(lines []string, key toml.Key, from int) int {
	joined := strings.Join(key, ".")
	last := key[len(key)-1]
	for i := from; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(trimmed, "["+joined+"]"),
			strings.HasPrefix(trimmed, "[["+joined+"]]"),
			strings.HasPrefix(trimmed, last+" ="),
			strings.HasPrefix(trimmed, last+"="),
			strings.HasPrefix(trimmed, last+":"):
			return i + 1
		}
	}
	if from < 1 {
		return 1
	}
	return from
}

func lookupTOMLValue(root map[string]interface{}, path []string) (interface{}, bool) {
	var current interface{} = root
	for _, seg := range path {
		table, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = table[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func isTOMLPrefix(prefix []string, key toml.Key) bool {
	if len(key) <= len(prefix) {
		return false
	}
	for i, seg := range prefix {
		if key[i] != seg {
			return false
		}
	}
	return true
}

func dumpTOMLTable(table map[string]interface{}) string {
	dumped, err := tomlv2.Marshal(table)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(dumped))
}
