// Package gitinfo queries repository state through go-git. Lookups that
// are meaningful outside a repository (root, branch, commit) return an
// absence indicator; file-set operations require a repository and fail
// with domain.ErrNotRepository otherwise.
package gitinfo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/pyqa/pyqa/internal/domain"
)

// Probe implements the source-control queries using go-git.
type Probe struct{}

func New() *Probe {
	return &Probe{}
}

// IsRepository reports whether dir is the root of a git repository.
func (p *Probe) IsRepository(dir string) bool {
	_, err := git.PlainOpen(dir)
	return err == nil
}

// Root returns the repository worktree root for dir, searching parent
// directories the way git itself does. Absence outside a repository.
func (p *Probe) Root(dir string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", false
	}
	return wt.Filesystem.Root(), true
}

// Branch returns the current branch name, or absence outside a
// repository or before the first commit.
func (p *Probe) Branch(dir string) (string, bool) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", false
	}
	head, err := repo.Head()
	if err != nil {
		return "", false
	}
	return head.Name().Short(), true
}

// CommitHash returns the HEAD commit hash, 7 characters when short is
// set, or absence when there is no commit to point at.
func (p *Probe) CommitHash(dir string, short bool) (string, bool) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", false
	}
	head, err := repo.Head()
	if err != nil {
		return "", false
	}
	hash := head.Hash().String()
	if short {
		return hash[:7], true
	}
	return hash, true
}

// StagedFiles lists paths with changes recorded in the index.
func (p *Probe) StagedFiles(dir string) ([]string, error) {
	status, err := p.status(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for path, st := range status {
		if st.Staging != git.Unmodified && st.Staging != git.Untracked {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// UnstagedFiles lists tracked paths modified in the worktree but not
// staged.
func (p *Probe) UnstagedFiles(dir string) ([]string, error) {
	status, err := p.status(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for path, st := range status {
		if st.Worktree != git.Unmodified && st.Worktree != git.Untracked {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// UntrackedFiles lists paths git does not track.
func (p *Probe) UntrackedFiles(dir string) ([]string, error) {
	status, err := p.status(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for path, st := range status {
		if st.Worktree == git.Untracked {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// FileStatus returns the two-letter status code for one path (staging
// then worktree, e.g. " M", "A ", "??"). Absence for a clean file.
func (p *Probe) FileStatus(dir, path string) (string, bool, error) {
	status, err := p.status(dir)
	if err != nil {
		return "", false, err
	}
	st, ok := status[path]
	if !ok {
		return "", false, nil
	}
	if st.Staging == git.Unmodified && st.Worktree == git.Unmodified {
		return "", false, nil
	}
	return string([]byte{byte(st.Staging), byte(st.Worktree)}), true, nil
}

// ChangedFiles lists paths that differ between ref (default HEAD) and
// the current working state: committed differences from ref plus any
// staged or unstaged modifications. Untracked files are not included.
func (p *Probe) ChangedFiles(dir, ref string) ([]string, error) {
	repo, err := p.open(dir)
	if err != nil {
		return nil, err
	}
	if ref == "" {
		ref = "HEAD"
	}

	refTree, err := treeAt(repo, ref)
	if err != nil {
		return nil, err
	}
	headTree, err := treeAt(repo, "HEAD")
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	if ref != "HEAD" {
		changes, err := object.DiffTree(refTree, headTree)
		if err != nil {
			return nil, fmt.Errorf("diffing %s against HEAD: %w", ref, err)
		}
		for _, change := range changes {
			if change.To.Name != "" {
				seen[change.To.Name] = true
			}
			if change.From.Name != "" {
				seen[change.From.Name] = true
			}
		}
	}

	status, err := p.status(dir)
	if err != nil {
		return nil, err
	}
	for path, st := range status {
		if st.Worktree == git.Untracked {
			continue
		}
		if st.Staging != git.Unmodified || st.Worktree != git.Unmodified {
			seen[path] = true
		}
	}

	files := make([]string, 0, len(seen))
	for path := range seen {
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

// Status is a full snapshot of repository state for display. Outside a
// repository every field stays zero and Repository is false.
type Status struct {
	Repository bool     `json:"repository"`
	Root       string   `json:"root,omitempty"`
	Branch     string   `json:"branch,omitempty"`
	Commit     string   `json:"commit,omitempty"`
	Changed    []string `json:"changed,omitempty"`
	Staged     []string `json:"staged,omitempty"`
	Unstaged   []string `json:"unstaged,omitempty"`
	Untracked  []string `json:"untracked,omitempty"`
}

// Snapshot aggregates the probe operations for one directory.
func (p *Probe) Snapshot(dir string) (Status, error) {
	var status Status
	if !p.IsRepository(dir) {
		return status, nil
	}
	status.Repository = true
	status.Root, _ = p.Root(dir)
	status.Branch, _ = p.Branch(dir)

	var hasHead bool
	status.Commit, hasHead = p.CommitHash(dir, true)

	var err error
	if hasHead {
		if status.Changed, err = p.ChangedFiles(dir, ""); err != nil {
			return status, err
		}
	}
	if status.Staged, err = p.StagedFiles(dir); err != nil {
		return status, err
	}
	if status.Unstaged, err = p.UnstagedFiles(dir); err != nil {
		return status, err
	}
	if status.Untracked, err = p.UntrackedFiles(dir); err != nil {
		return status, err
	}
	return status, nil
}

func (p *Probe) open(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotRepository, dir)
		}
		return nil, fmt.Errorf("opening git repo at %s: %w", dir, err)
	}
	return repo, nil
}

func (p *Probe) status(dir string) (git.Status, error) {
	repo, err := p.open(dir)
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading worktree status: %w", err)
	}
	return status, nil
}

func treeAt(repo *git.Repository, rev string) (*object.Tree, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading tree for %s: %w", hash, err)
	}
	return tree, nil
}
