package gitbridge

import (
	"context"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/viant/afs"

	"sem/internal/semerr"
)

// defaultCommandTimeout bounds a single git invocation.
const defaultCommandTimeout = 10 * time.Second

// emptyTreeSha is git's well-known hash of the empty tree, used to diff a
// root commit against nothing.
const emptyTreeSha = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// Bridge runs git commands against one repository.
type Bridge struct {
	repoRoot string
	ignore   []string
	timeout  time.Duration
	fs       afs.Service
	logger   *slog.Logger
}

// Open discovers the repository containing dir. Returns a NOT_A_REPO error
// when dir is not inside a work tree.
func Open(dir string, logger *slog.Logger) (*Bridge, error) {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bridge{timeout: defaultCommandTimeout, fs: afs.New(), logger: logger}

	out, err := b.runGitIn(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, semerr.New(semerr.NotARepo, "not a git repository", err)
	}
	b.repoRoot = strings.TrimSpace(out)
	return b, nil
}

// SetIgnore adds path prefixes filtered from every file list, in addition to
// the always-filtered .sem/ directory.
func (b *Bridge) SetIgnore(prefixes []string) {
	b.ignore = prefixes
}

// RepoRoot returns the absolute path of the work tree root.
func (b *Bridge) RepoRoot() string {
	return b.repoRoot
}

// IsRepo reports whether the bridge points at a usable repository.
func (b *Bridge) IsRepo() bool {
	_, err := b.runGit("rev-parse", "--is-inside-work-tree")
	return err == nil
}

// CurrentBranch returns the checked-out branch name ("HEAD" when detached).
func (b *Bridge) CurrentBranch() (string, error) {
	out, err := b.runGit("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// HeadSha returns the full sha of HEAD.
func (b *Bridge) HeadSha() (string, error) {
	out, err := b.runGit("rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// DetectScope picks the most useful diff scope for the repository's state:
// staged changes win, then working-tree changes (including untracked files),
// then the HEAD commit.
func (b *Bridge) DetectScope() DiffScope {
	if lines, err := b.runGitLines("diff", "--cached", "--name-only"); err == nil && len(lines) > 0 {
		return DiffScope{Type: ScopeStaged}
	}
	working, _ := b.runGitLines("diff", "--name-only")
	untracked, _ := b.runGitLines("ls-files", "--others", "--exclude-standard")
	if len(working)+len(untracked) > 0 {
		return DiffScope{Type: ScopeWorking}
	}
	if sha, err := b.HeadSha(); err == nil {
		return DiffScope{Type: ScopeCommit, Sha: sha}
	}
	return DiffScope{Type: ScopeWorking}
}

// GetChangedFiles lists the paths changed in scope with both content sides
// populated. Content fetches run as one parallel batch so the parse/match
// pass downstream sees fully-materialised inputs.
func (b *Bridge) GetChangedFiles(ctx context.Context, scope DiffScope) ([]FileChange, error) {
	var files []FileChange
	var err error

	switch scope.Type {
	case ScopeWorking:
		files, err = b.nameStatus("diff", "--name-status", "-M", "HEAD")
		if err != nil {
			// A repository without commits has no HEAD; everything on disk
			// is untracked and handled below.
			files = nil
		}
		untracked, uerr := b.runGitLines("ls-files", "--others", "--exclude-standard")
		if uerr == nil {
			for _, path := range untracked {
				files = append(files, FileChange{FilePath: path, Status: StatusAdded})
			}
		}
	case ScopeStaged:
		files, err = b.nameStatus("diff", "--cached", "--name-status", "-M")
		if err != nil {
			return nil, err
		}
	case ScopeCommit:
		parent := scope.Sha + "~1"
		if !b.revExists(parent) {
			parent = emptyTreeSha
		}
		files, err = b.nameStatus("diff", "--name-status", "-M", parent, scope.Sha)
		if err != nil {
			return nil, err
		}
	case ScopeRange:
		files, err = b.nameStatus("diff", "--name-status", "-M", scope.From, scope.To)
		if err != nil {
			return nil, err
		}
	default:
		return nil, semerr.Errorf(semerr.Internal, "unknown diff scope %q", scope.Type)
	}

	files = b.filterIgnored(files)
	if err := b.populateContents(ctx, files, scope); err != nil {
		return nil, err
	}
	return files, nil
}

// GetLog returns up to limit commits reachable from HEAD, newest first.
func (b *Bridge) GetLog(limit int) ([]CommitInfo, error) {
	return b.log(limit, "")
}

// FileLog returns up to limit commits touching path, newest first, following
// renames.
func (b *Bridge) FileLog(path string, limit int) ([]CommitInfo, error) {
	return b.log(limit, path)
}

// ListFiles returns every tracked path in the work tree.
func (b *Bridge) ListFiles() ([]string, error) {
	return b.runGitLines("ls-files")
}

// DescribeCommit resolves a single revision to its commit metadata.
func (b *Bridge) DescribeCommit(rev string) (CommitInfo, error) {
	lines, err := b.runGitLines("log", "-n", "1", "--format=%H|%an|%aI|%s", rev)
	if err != nil {
		return CommitInfo{}, err
	}
	if len(lines) == 0 {
		return CommitInfo{}, semerr.Errorf(semerr.NotFound, "unknown revision %q", rev)
	}
	parts := strings.SplitN(lines[0], "|", 4)
	if len(parts) != 4 {
		return CommitInfo{}, semerr.Errorf(semerr.Internal, "malformed git log output")
	}
	return CommitInfo{
		Sha:      parts[0],
		ShortSha: shortSha(parts[0]),
		Author:   parts[1],
		Date:     parts[2],
		Message:  parts[3],
	}, nil
}

// FileAtCommit reads a file's blob at a commit. Returns NotFound when the
// path does not exist in that revision.
func (b *Bridge) FileAtCommit(sha, path string) (string, error) {
	out, err := b.runGit("show", sha+":"+path)
	if err != nil {
		return "", semerr.Errorf(semerr.NotFound, "%s not found at %s", path, shortSha(sha))
	}
	return out, nil
}

func (b *Bridge) log(limit int, path string) ([]CommitInfo, error) {
	args := []string{"log", "--format=%H|%an|%aI|%s"}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	if path != "" {
		args = append(args, "--follow", "--", path)
	}
	lines, err := b.runGitLines(args...)
	if err != nil {
		return nil, err
	}

	commits := make([]CommitInfo, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, "|", 4)
		if len(parts) != 4 {
			b.logger.Warn("skipping malformed git log line", "line", line)
			continue
		}
		commits = append(commits, CommitInfo{
			Sha:      parts[0],
			ShortSha: shortSha(parts[0]),
			Author:   parts[1],
			Date:     parts[2],
			Message:  parts[3],
		})
	}
	return commits, nil
}

// nameStatus runs a git diff variant and parses --name-status output.
func (b *Bridge) nameStatus(args ...string) ([]FileChange, error) {
	lines, err := b.runGitLines(args...)
	if err != nil {
		return nil, err
	}

	var files []FileChange
	for _, line := range lines {
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		status := parts[0]
		switch {
		case status == "A":
			files = append(files, FileChange{FilePath: parts[1], Status: StatusAdded})
		case status == "M":
			files = append(files, FileChange{FilePath: parts[1], Status: StatusModified})
		case status == "D":
			files = append(files, FileChange{FilePath: parts[1], Status: StatusDeleted})
		case strings.HasPrefix(status, "R") && len(parts) >= 3:
			files = append(files, FileChange{
				FilePath:    parts[2],
				Status:      StatusRenamed,
				OldFilePath: parts[1],
			})
		}
	}
	return files, nil
}

// populateContents fills BeforeContent/AfterContent for every file according
// to the scope, fanning the fetches out as an unordered batch.
func (b *Bridge) populateContents(ctx context.Context, files []FileChange, scope DiffScope) error {
	group, ctx := newContentGroup(ctx)
	for i := range files {
		file := &files[i]
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return semerr.New(semerr.Cancelled, "content fetch cancelled", err)
			}
			b.populateOne(ctx, file, scope)
			return nil
		})
	}
	return group.Wait()
}

func (b *Bridge) populateOne(ctx context.Context, file *FileChange, scope DiffScope) {
	beforePath := file.FilePath
	if file.OldFilePath != "" {
		beforePath = file.OldFilePath
	}

	switch scope.Type {
	case ScopeWorking:
		if file.Status != StatusDeleted {
			file.AfterContent = b.readWorkingFile(ctx, file.FilePath)
		}
		if file.Status != StatusAdded {
			file.BeforeContent = b.readBlob("HEAD", beforePath)
		}
	case ScopeStaged:
		if file.Status != StatusDeleted {
			file.AfterContent = b.readBlob("", file.FilePath)
		}
		if file.Status != StatusAdded {
			file.BeforeContent = b.readBlob("HEAD", beforePath)
		}
	case ScopeCommit:
		if file.Status != StatusDeleted {
			file.AfterContent = b.readBlob(scope.Sha, file.FilePath)
		}
		if file.Status != StatusAdded {
			file.BeforeContent = b.readBlob(scope.Sha+"~1", beforePath)
		}
	case ScopeRange:
		if file.Status != StatusDeleted {
			file.AfterContent = b.readBlob(scope.To, file.FilePath)
		}
		if file.Status != StatusAdded {
			file.BeforeContent = b.readBlob(scope.From, beforePath)
		}
	}
}

// readBlob reads rev:path via git show; rev "" reads the index entry.
func (b *Bridge) readBlob(rev, path string) *string {
	out, err := b.runGit("show", rev+":"+path)
	if err != nil {
		return nil
	}
	return &out
}

// ReadWorkingFile reads a file from the work tree through the abstract file
// service. path is relative to the repository root.
func (b *Bridge) ReadWorkingFile(ctx context.Context, path string) (string, error) {
	data, err := b.fs.DownloadWithURL(ctx, filepath.Join(b.repoRoot, path))
	if err != nil {
		return "", semerr.Errorf(semerr.NotFound, "cannot read %s: %v", path, err)
	}
	return string(data), nil
}

func (b *Bridge) readWorkingFile(ctx context.Context, path string) *string {
	content, err := b.ReadWorkingFile(ctx, path)
	if err != nil {
		return nil
	}
	return &content
}

func (b *Bridge) filterIgnored(files []FileChange) []FileChange {
	kept := files[:0]
	for _, file := range files {
		if b.isIgnored(file.FilePath) {
			continue
		}
		kept = append(kept, file)
	}
	return kept
}

func (b *Bridge) isIgnored(path string) bool {
	if strings.HasPrefix(path, ".sem/") {
		return true
	}
	for _, prefix := range b.ignore {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (b *Bridge) revExists(rev string) bool {
	_, err := b.runGit("rev-parse", "--verify", "--quiet", rev+"^{commit}")
	return err == nil
}

// runGit executes git with the bridge's repository as working directory.
func (b *Bridge) runGit(args ...string) (string, error) {
	return b.runGitIn(b.repoRoot, args...)
}

func (b *Bridge) runGitIn(dir string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	b.logger.Debug("executing git command", "args", args)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", semerr.New(semerr.GitFailed, "git "+strings.Join(args, " "),
				errWithStderr{err: err, stderr: strings.TrimSpace(string(exitErr.Stderr))})
		}
		return "", semerr.New(semerr.GitFailed, "failed to execute git", err)
	}
	return string(output), nil
}

func (b *Bridge) runGitLines(args ...string) ([]string, error) {
	output, err := b.runGit(args...)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines, nil
}

type errWithStderr struct {
	err    error
	stderr string
}

func (e errWithStderr) Error() string {
	if e.stderr != "" {
		return e.stderr
	}
	return e.err.Error()
}

func (e errWithStderr) Unwrap() error { return e.err }

func shortSha(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
