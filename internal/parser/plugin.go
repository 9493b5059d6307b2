// Package parser extracts semantic entities from file contents. One plugin
// covers each supported format; a registry dispatches on file extension and
// guarantees a fallback so every file has some diffable entities.
package parser

import "sem/internal/model"

// Plugin extracts entities from the bytes of a single file.
//
// ExtractEntities must tolerate malformed input: a file it cannot parse
// yields an empty entity list, never a panic that escapes to the caller.
type Plugin interface {
	// ID is the unique plugin identifier (e.g. "code", "json", "fallback").
	ID() string

	// Extensions lists the file extensions this plugin recognises, each with
	// a leading dot, lowercase. The fallback plugin returns none and is
	// matched implicitly.
	Extensions() []string

	// ExtractEntities parses content and returns the entities found, in a
	// deterministic order that follows the source (the JSON plugin emits an
	// object's members before the object itself). filePath is used verbatim
	// in entity ids.
	ExtractEntities(content, filePath string) []model.Entity
}

// Similarer is optionally implemented by plugins that provide a
// format-aware similarity function for fuzzy matching. Scores are in [0,1].
type Similarer interface {
	ComputeSimilarity(a, b *model.Entity) float64
}
