package gitbridge

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// contentFetchParallelism caps concurrent git show / file read processes in
// one content batch.
const contentFetchParallelism = 8

func newContentGroup(ctx context.Context) (*errgroup.Group, context.Context) {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(contentFetchParallelism)
	return group, ctx
}

// ParseScope builds a DiffScope from CLI-style inputs: staged flag, a single
// commit, or a from/to pair. Empty inputs auto-detect.
func (b *Bridge) ParseScope(staged bool, commit, from, to string) DiffScope {
	switch {
	case staged:
		return DiffScope{Type: ScopeStaged}
	case commit != "":
		return DiffScope{Type: ScopeCommit, Sha: commit}
	case from != "" && to != "":
		return DiffScope{Type: ScopeRange, From: from, To: to}
	case from != "":
		return DiffScope{Type: ScopeRange, From: from, To: "HEAD"}
	default:
		return b.DetectScope()
	}
}

// String renders a scope for log lines and terminal headers.
func (s DiffScope) String() string {
	switch s.Type {
	case ScopeStaged:
		return "staged"
	case ScopeCommit:
		return "commit " + shortSha(s.Sha)
	case ScopeRange:
		return s.From + ".." + s.To
	default:
		return "working tree"
	}
}
