// Package model defines the core value types of the semantic diff engine:
// entities extracted from files and the change records produced by matching
// two entity sets against each other.
package model

// Entity is a named, locatable unit of meaning inside a file: a function, a
// class, a JSON property, a Markdown section, a CSV row. Entities are pure
// values derived from file bytes; they are created by a parser plugin and
// never mutated afterwards.
type Entity struct {
	// ID is the stable identifier, "<filePath>::<entityType>::<name>" for
	// top-level entities and "<filePath>::<parentID>::<name>" for nested
	// ones. Unique within a (file, revision) pair.
	ID string `json:"id"`

	// FilePath is relative to the repository root, forward-slash separated.
	FilePath string `json:"filePath"`

	// EntityType is one of the canonical type tags (function, method, class,
	// interface, type, enum, struct, impl, trait, module, constant, static,
	// variable, property, section, object, element, row, heading, preamble,
	// chunk, export).
	EntityType string `json:"entityType"`

	// Name is the human identifier. Path-structured sources (JSON, YAML,
	// TOML) use the pointer or dotted path as the name.
	Name string `json:"name"`

	// ParentID is the id of the enclosing entity, empty at top level.
	ParentID string `json:"parentId,omitempty"`

	// Content is the exact source slice of the entity.
	Content string `json:"content"`

	// ContentHash is the SHA-256 hex digest of the normalised content.
	// Entities with equal hashes are structurally equivalent.
	ContentHash string `json:"contentHash"`

	// StartLine and EndLine are 1-based and inclusive.
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`

	// Metadata carries plugin-specific extras, e.g. CSV column values.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// BuildEntityID builds the stable entity id. parentID is the full id of the
// enclosing entity, or empty for top-level entities. Names containing "::"
// are preserved literally; the id is addressable either way.
func BuildEntityID(filePath, entityType, name, parentID string) string {
	if parentID != "" {
		return filePath + "::" + parentID + "::" + name
	}
	return filePath + "::" + entityType + "::" + name
}
