// Package history answers entity-level blame and entity history questions by
// combining the VCS bridge, the parser plugins and the store. It only reads
// from the diff core, never mutates it.
package history

import (
	"context"
	"log/slog"

	"sem/internal/gitbridge"
	"sem/internal/model"
	"sem/internal/parser"
	"sem/internal/semerr"
)

// DefaultBlameDepth bounds how many commits a blame walk inspects.
const DefaultBlameDepth = 50

// EntityBlame attributes one entity of the current file version to the
// commit that last changed it.
type EntityBlame struct {
	EntityID   string `json:"entityId"`
	Name       string `json:"name"`
	EntityType string `json:"entityType"`
	StartLine  int    `json:"startLine"`
	EndLine    int    `json:"endLine"`
	CommitSha  string `json:"commitSha,omitempty"`
	ShortSha   string `json:"shortSha,omitempty"`
	Author     string `json:"author,omitempty"`
	Date       string `json:"date,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Blame extracts the entities of filePath's working-tree version and walks
// the file's commits newest-first. The first commit at which an entity's
// hash differs from the next-older version (or the entity is freshly
// present) is its blame commit. The walk stops as soon as every entity is
// attributed; entities older than the walk depth are attributed to the
// oldest commit inspected.
func Blame(ctx context.Context, bridge *gitbridge.Bridge, registry *parser.Registry, filePath string, depth int, logger *slog.Logger) ([]EntityBlame, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if depth <= 0 {
		depth = DefaultBlameDepth
	}

	content, err := bridge.ReadWorkingFile(ctx, filePath)
	if err != nil {
		return nil, err
	}
	plugin := registry.GetPlugin(filePath)
	entities := plugin.ExtractEntities(content, filePath)
	if len(entities) == 0 {
		return nil, nil
	}

	commits, err := bridge.FileLog(filePath, depth)
	if err != nil {
		return nil, err
	}

	results := make([]EntityBlame, len(entities))
	for i, e := range entities {
		results[i] = EntityBlame{
			EntityID:   e.ID,
			Name:       e.Name,
			EntityType: e.EntityType,
			StartLine:  e.StartLine,
			EndLine:    e.EndLine,
		}
	}
	if len(commits) == 0 {
		return results, nil
	}

	attributed := make(map[string]bool, len(entities))

	newer := extractAt(bridge, plugin, commits[0].Sha, filePath)
	for i := range commits {
		if err := ctx.Err(); err != nil {
			return nil, semerr.New(semerr.Cancelled, "blame cancelled", err)
		}

		var older map[string]model.Entity
		if i+1 < len(commits) {
			older = extractAt(bridge, plugin, commits[i+1].Sha, filePath)
		}

		for j := range results {
			if attributed[results[j].EntityID] {
				continue
			}
			newerEnt, present := newer[results[j].EntityID]
			if !present {
				continue
			}
			olderEnt, existed := older[results[j].EntityID]
			if !existed || olderEnt.ContentHash != newerEnt.ContentHash {
				attributed[results[j].EntityID] = true
				stampCommit(&results[j], commits[i])
			}
		}
		if len(attributed) == len(results) {
			logger.Debug("blame attributed early", "file", filePath, "commits", i+1)
			break
		}
		newer = older
	}

	// Anything still unattributed predates the walk: pin it to the oldest
	// commit inspected rather than leaving it blank.
	oldest := commits[len(commits)-1]
	for j := range results {
		if !attributed[results[j].EntityID] {
			stampCommit(&results[j], oldest)
		}
	}
	return results, nil
}

func stampCommit(b *EntityBlame, c gitbridge.CommitInfo) {
	b.CommitSha = c.Sha
	b.ShortSha = c.ShortSha
	b.Author = c.Author
	b.Date = c.Date
	b.Message = c.Message
}

// extractAt parses the file as it existed at a commit, keyed by entity id.
// A missing or unparsable revision maps to "no entities".
func extractAt(bridge *gitbridge.Bridge, plugin parser.Plugin, sha, filePath string) map[string]model.Entity {
	content, err := bridge.FileAtCommit(sha, filePath)
	if err != nil {
		return nil
	}
	entities := plugin.ExtractEntities(content, filePath)
	byID := make(map[string]model.Entity, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}
	return byID
}
