package history

import (
	"context"
	"log/slog"
	"strings"

	"sem/internal/gitbridge"
	"sem/internal/model"
	"sem/internal/parser"
	"sem/internal/semerr"
	"sem/internal/storage"
)

// DefaultHistoryDepth bounds how many commits an entity history walk covers.
const DefaultHistoryDepth = 100

// Event is one transition in an entity's history.
type Event struct {
	Commit     gitbridge.CommitInfo `json:"commit"`
	ChangeType model.ChangeType     `json:"changeType"`
}

// EntityQuery identifies the entity being tracked.
type EntityQuery struct {
	FilePath   string
	EntityType string
	Name       string
}

// ParseQuery understands "<file>::<type>::<name>" and bare "<name>" forms.
// Bare names are resolved against the store's current snapshot; db may be
// nil when the caller always passes the full form.
func ParseQuery(query string, db *storage.DB) (EntityQuery, error) {
	if strings.Contains(query, "::") {
		parts := strings.SplitN(query, "::", 3)
		if len(parts) == 3 {
			return EntityQuery{FilePath: parts[0], EntityType: parts[1], Name: parts[2]}, nil
		}
		return EntityQuery{}, semerr.Errorf(semerr.NotFound, "malformed entity query %q", query)
	}

	if db == nil {
		return EntityQuery{}, semerr.Errorf(semerr.NotFound,
			"bare entity name %q needs a saved snapshot to resolve; run sem save first", query)
	}
	entities, err := db.GetEntities("current", "")
	if err != nil {
		return EntityQuery{}, err
	}
	for _, e := range entities {
		if e.Name == query {
			return EntityQuery{FilePath: e.FilePath, EntityType: e.EntityType, Name: query}, nil
		}
	}
	return EntityQuery{}, semerr.Errorf(semerr.NotFound, "no entity named %q in the current snapshot", query)
}

// Track walks the entity's file backward through commits and records an
// event whenever the entity's presence or hash flips: added when it appears,
// modified when the hash changes, deleted when it vanishes. Events are
// ordered newest first.
func Track(ctx context.Context, bridge *gitbridge.Bridge, registry *parser.Registry, query EntityQuery, depth int, logger *slog.Logger) ([]Event, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}

	commits, err := bridge.FileLog(query.FilePath, depth)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		return nil, nil
	}

	plugin := registry.GetPlugin(query.FilePath)

	var events []Event
	newer := findEntity(bridge, plugin, commits[0].Sha, query)
	for i := range commits {
		if err := ctx.Err(); err != nil {
			return nil, semerr.New(semerr.Cancelled, "history cancelled", err)
		}

		var older *model.Entity
		if i+1 < len(commits) {
			older = findEntity(bridge, plugin, commits[i+1].Sha, query)
		}

		switch {
		case newer != nil && older == nil:
			events = append(events, Event{Commit: commits[i], ChangeType: model.ChangeAdded})
		case newer == nil && older != nil:
			events = append(events, Event{Commit: commits[i], ChangeType: model.ChangeDeleted})
		case newer != nil && older != nil && newer.ContentHash != older.ContentHash:
			events = append(events, Event{Commit: commits[i], ChangeType: model.ChangeModified})
		}

		newer = older
	}

	logger.Debug("entity history tracked", "file", query.FilePath,
		"name", query.Name, "events", len(events))
	return events, nil
}

// findEntity extracts the file at a commit and picks the queried entity:
// exact type+name match wins, then a name-only match.
func findEntity(bridge *gitbridge.Bridge, plugin parser.Plugin, sha string, query EntityQuery) *model.Entity {
	content, err := bridge.FileAtCommit(sha, query.FilePath)
	if err != nil {
		return nil
	}
	entities := plugin.ExtractEntities(content, query.FilePath)

	for i := range entities {
		if entities[i].Name == query.Name &&
			(query.EntityType == "" || entities[i].EntityType == query.EntityType) {
			return &entities[i]
		}
	}
	for i := range entities {
		if entities[i].Name == query.Name {
			return &entities[i]
		}
	}
	return nil
}
