package parser

import (
	"fmt"
	"strings"

	"sem/internal/hashutil"
	"sem/internal/model"
)

// fallbackChunkLines is the fixed window size of the fallback chunker.
const fallbackChunkLines = 20

// FallbackPlugin partitions any file into fixed-size line chunks so that
// files without a format-specific plugin still have diffable entities. It
// tolerates binary and invalid-UTF-8 content.
type FallbackPlugin struct{}

// NewFallbackPlugin creates the fallback plugin.
func NewFallbackPlugin() *FallbackPlugin {
	return &FallbackPlugin{}
}

func (p *FallbackPlugin) ID() string { return "fallback" }

// Extensions is empty: the registry routes to the fallback implicitly.
func (p *FallbackPlugin) Extensions() []string { return nil }

func (p *FallbackPlugin) ExtractEntities(content, filePath string) []model.Entity {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	var entities []model.Entity
	for start := 0; start < len(lines); start += fallbackChunkLines {
		end := start + fallbackChunkLines
		if end > len(lines) {
			end = len(lines)
		}
		chunk := strings.Join(lines[start:end], "\n")
		name := fmt.Sprintf("lines %d-%d", start+1, end)

		entities = append(entities, model.Entity{
			ID:          model.BuildEntityID(filePath, "chunk", name, ""),
			FilePath:    filePath,
			EntityType:  "chunk",
			Name:        name,
			Content:     chunk,
			ContentHash: hashutil.ContentHash(strings.TrimSpace(chunk)),
			StartLine:   start + 1,
			EndLine:     end,
		})
	}
	return entities
}
