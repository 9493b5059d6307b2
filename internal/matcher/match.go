// Package matcher pairs two entity sets into change records using the
// three-phase algorithm: exact identity, structural hash, fuzzy similarity.
package matcher

import (
	"sem/internal/model"
)

// fuzzyThreshold is the minimum similarity score for a phase-3 pairing.
const fuzzyThreshold = 0.80

// Options carries the optional inputs of a match run.
type Options struct {
	// Similarity overrides the default token-overlap scorer for phase 3.
	Similarity func(a, b *model.Entity) float64

	// CommitSha and Author are stamped onto every emitted change.
	CommitSha string
	Author    string
}

// MatchEntities compares before and after and emits one change per entity
// that was added, modified, deleted, moved or renamed. Unchanged entities are
// silent. The emitted order is: phase-1 modifications, phase-2 hash pairs,
// phase-3 fuzzy pairs, deletions, additions — each in the insertion order of
// the side that drives the phase. The result is deterministic for identical
// inputs regardless of map iteration order.
func MatchEntities(before, after []model.Entity, filePath string, opts Options) []model.Change {
	changes := make([]model.Change, 0)
	matchedBefore := make(map[string]bool, len(before))
	matchedAfter := make(map[string]bool, len(after))

	beforeByID := make(map[string]*model.Entity, len(before))
	for i := range before {
		beforeByID[before[i].ID] = &before[i]
	}

	// Phase 1: exact identity. Same id on both sides; a hash difference is a
	// modification, hash equality is silence.
	for i := range after {
		afterEnt := &after[i]
		beforeEnt, ok := beforeByID[afterEnt.ID]
		if !ok {
			continue
		}
		matchedBefore[beforeEnt.ID] = true
		matchedAfter[afterEnt.ID] = true

		if beforeEnt.ContentHash != afterEnt.ContentHash {
			changes = append(changes, model.Change{
				ID:            "change::" + afterEnt.ID,
				EntityID:      afterEnt.ID,
				ChangeType:    model.ChangeModified,
				EntityType:    afterEnt.EntityType,
				EntityName:    afterEnt.Name,
				FilePath:      afterEnt.FilePath,
				BeforeContent: beforeEnt.Content,
				AfterContent:  afterEnt.Content,
				CommitSha:     opts.CommitSha,
				Author:        opts.Author,
			})
		}
	}

	// Phase 2: structural hash. Index the unmatched before side per hash as
	// a FIFO queue so ties resolve to the earliest before entity.
	hashQueues := make(map[string][]*model.Entity)
	for i := range before {
		if matchedBefore[before[i].ID] {
			continue
		}
		hashQueues[before[i].ContentHash] = append(hashQueues[before[i].ContentHash], &before[i])
	}

	for i := range after {
		afterEnt := &after[i]
		if matchedAfter[afterEnt.ID] {
			continue
		}
		queue := hashQueues[afterEnt.ContentHash]
		if len(queue) == 0 {
			continue
		}
		beforeEnt := queue[0]
		hashQueues[afterEnt.ContentHash] = queue[1:]

		matchedBefore[beforeEnt.ID] = true
		matchedAfter[afterEnt.ID] = true
		changes = append(changes, pairChange(beforeEnt, afterEnt, opts))
	}

	// Phase 3: fuzzy similarity over the residual, same entity type only.
	// Greedy per after entity; a before entity claimed once is gone. Ties
	// break toward the earlier before entity.
	similarity := opts.Similarity
	if similarity == nil {
		similarity = DefaultSimilarity
	}
	for i := range after {
		afterEnt := &after[i]
		if matchedAfter[afterEnt.ID] {
			continue
		}

		var best *model.Entity
		bestScore := 0.0
		for j := range before {
			beforeEnt := &before[j]
			if matchedBefore[beforeEnt.ID] {
				continue
			}
			if beforeEnt.EntityType != afterEnt.EntityType {
				continue
			}
			score := similarity(beforeEnt, afterEnt)
			if score >= fuzzyThreshold && score > bestScore {
				bestScore = score
				best = beforeEnt
			}
		}
		if best == nil {
			continue
		}

		matchedBefore[best.ID] = true
		matchedAfter[afterEnt.ID] = true
		changes = append(changes, pairChange(best, afterEnt, opts))
	}

	// Terminal: leftover before entities are deletions, leftover after
	// entities are additions.
	for i := range before {
		ent := &before[i]
		if matchedBefore[ent.ID] {
			continue
		}
		changes = append(changes, model.Change{
			ID:            "change::deleted::" + ent.ID,
			EntityID:      ent.ID,
			ChangeType:    model.ChangeDeleted,
			EntityType:    ent.EntityType,
			EntityName:    ent.Name,
			FilePath:      ent.FilePath,
			BeforeContent: ent.Content,
			CommitSha:     opts.CommitSha,
			Author:        opts.Author,
		})
	}
	for i := range after {
		ent := &after[i]
		if matchedAfter[ent.ID] {
			continue
		}
		changes = append(changes, model.Change{
			ID:           "change::added::" + ent.ID,
			EntityID:     ent.ID,
			ChangeType:   model.ChangeAdded,
			EntityType:   ent.EntityType,
			EntityName:   ent.Name,
			FilePath:     ent.FilePath,
			AfterContent: ent.Content,
			CommitSha:    opts.CommitSha,
			Author:       opts.Author,
		})
	}

	return changes
}

// pairChange emits the moved/renamed record for a phase-2 or phase-3 pair:
// moved when the file path changed, renamed otherwise.
func pairChange(beforeEnt, afterEnt *model.Entity, opts Options) model.Change {
	changeType := model.ChangeRenamed
	oldFilePath := ""
	if beforeEnt.FilePath != afterEnt.FilePath {
		changeType = model.ChangeMoved
		oldFilePath = beforeEnt.FilePath
	}
	return model.Change{
		ID:            "change::" + afterEnt.ID,
		EntityID:      afterEnt.ID,
		ChangeType:    changeType,
		EntityType:    afterEnt.EntityType,
		EntityName:    afterEnt.Name,
		FilePath:      afterEnt.FilePath,
		OldFilePath:   oldFilePath,
		BeforeContent: beforeEnt.Content,
		AfterContent:  afterEnt.Content,
		CommitSha:     opts.CommitSha,
		Author:        opts.Author,
	}
}
