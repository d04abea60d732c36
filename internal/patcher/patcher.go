// Package patcher inserts a missing SVG icon into login-button markup across
// a directory of HTML files. Each changed file is backed up next to itself
// before it is replaced.
package patcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ziadkadry99/sitekit/internal/config"
	"github.com/ziadkadry99/sitekit/internal/progress"
	"github.com/ziadkadry99/sitekit/internal/walker"
)

// Status is the outcome for one candidate file.
type Status string

const (
	StatusSkipped   Status = "skipped"      // marker token absent
	StatusUnchanged Status = "unchanged"    // no changes needed
	StatusPending   Status = "would-update" // planned but not yet written
	StatusUpdated   Status = "updated"
	StatusFailed    Status = "failed"
)

// ErrNotUTF8 is returned for files whose content is not valid UTF-8 text.
var ErrNotUTF8 = errors.New("not valid UTF-8")

// FileError records a failure isolated to one file. Op is "read", "backup"
// or "write".
type FileError struct {
	Name string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// FileResult is the per-file outcome of a scan.
type FileResult struct {
	File     walker.FileInfo
	Status   Status
	Inserted int
	Backup   string
	Err      *FileError

	original string
	patched  string
}

// Name returns the file's path relative to the scanned directory.
func (r FileResult) Name() string { return r.File.RelPath }

// Plan holds the computed changes for a directory before anything is written.
type Plan struct {
	Dir   string
	Files []FileResult
}

// Pending returns the names of files that Apply would rewrite.
func (p *Plan) Pending() []string {
	var names []string
	for _, f := range p.Files {
		if f.Status == StatusPending {
			names = append(names, f.Name())
		}
	}
	return names
}

// Summary reports what a scan did.
type Summary struct {
	Processed int
	Updated   []string
	Pending   []string
	Errors    []*FileError
	Results   []FileResult
}

// Summary collects the plan's current per-file state.
func (p *Plan) Summary() Summary {
	s := Summary{Processed: len(p.Files), Results: p.Files}
	for _, f := range p.Files {
		switch f.Status {
		case StatusUpdated:
			s.Updated = append(s.Updated, f.Name())
		case StatusPending:
			s.Pending = append(s.Pending, f.Name())
		}
		if f.Err != nil {
			s.Errors = append(s.Errors, f.Err)
		}
	}
	return s
}

// Patcher scans directories and inserts the icon snippet.
type Patcher struct {
	Finder       Finder
	Splicer      Splicer
	Marker       string // fast-path token; files without it are skipped
	Require      string // optional companion token that must also appear
	BackupPrefix string
	Include      []string
	Exclude      []string
	Recursive    bool

	Out      io.Writer         // progress lines; defaults to os.Stdout
	Reporter progress.Reporter // write progress; may be nil
	Now      func() time.Time  // backup timestamps; defaults to time.Now
}

// New builds a Patcher from the patch section of cfg.
func New(cfg config.PatchConfig) (*Patcher, error) {
	icon, err := cfg.ResolveIcon()
	if err != nil {
		return nil, err
	}
	finder, err := NewFinder(cfg.Finder, cfg.Marker)
	if err != nil {
		return nil, err
	}
	return &Patcher{
		Finder: finder,
		Splicer: Splicer{
			Snippet:   icon + cfg.Indent,
			Lookahead: cfg.Lookahead,
			Mode:      cfg.InsertAfter,
		},
		Marker:       cfg.Marker,
		Require:      cfg.Require,
		BackupPrefix: cfg.BackupPrefix,
		Include:      cfg.Include,
		Exclude:      cfg.Exclude,
		Recursive:    cfg.Recursive,
	}, nil
}

func (p *Patcher) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

func (p *Patcher) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// Plan reads every candidate file in dir and computes its patched content
// without touching the filesystem. Only a failure to enumerate dir is
// returned; per-file read failures are recorded in the plan.
func (p *Patcher) Plan(dir string) (*Plan, error) {
	files, err := walker.Walk(walker.WalkerConfig{
		RootDir:    dir,
		Include:    p.Include,
		Exclude:    p.Exclude,
		SkipPrefix: p.BackupPrefix,
		Recursive:  p.Recursive,
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	plan := &Plan{Dir: dir, Files: make([]FileResult, 0, len(files))}
	for _, f := range files {
		plan.Files = append(plan.Files, p.planFile(f))
	}
	return plan, nil
}

func (p *Patcher) planFile(f walker.FileInfo) FileResult {
	out := p.out()
	res := FileResult{File: f}

	data, err := os.ReadFile(f.Path)
	if err == nil && !utf8.Valid(data) {
		err = ErrNotUTF8
	}
	if err != nil {
		res.Status = StatusFailed
		res.Err = &FileError{Name: f.RelPath, Op: "read", Err: err}
		fmt.Fprintf(out, "✗ Error processing %s: %v\n", f.RelPath, err)
		return res
	}

	content := string(data)
	if !strings.Contains(content, p.Marker) {
		res.Status = StatusSkipped
		return res
	}

	fmt.Fprintf(out, "\nProcessing %s...\n", f.RelPath)

	patched := content
	if p.Require == "" || strings.Contains(content, p.Require) {
		var n int
		patched, n = p.Splicer.PatchContent(content, p.Finder.FindInsertionPoints(content))
		for i := 0; i < n; i++ {
			fmt.Fprintln(out, "  Added login SVG icon")
		}
		res.Inserted = n
	}

	if patched == content {
		res.Status = StatusUnchanged
		fmt.Fprintf(out, "  No changes needed for %s\n", f.RelPath)
		return res
	}

	res.Status = StatusPending
	res.original = content
	res.patched = patched
	return res
}

// Apply writes every pending file in plan: first a backup of the original
// content, then an atomic replacement. Failures are isolated per file.
func (p *Patcher) Apply(plan *Plan) Summary {
	rep := p.Reporter
	if rep == nil {
		rep = progress.Nop{}
	}

	rep.Start(len(plan.Pending()))
	done := 0
	for i := range plan.Files {
		res := &plan.Files[i]
		if res.Status != StatusPending {
			continue
		}
		done++
		rep.Update(done, res.Name())
		p.applyFile(res)
	}
	rep.Finish()

	return plan.Summary()
}

func (p *Patcher) applyFile(res *FileResult) {
	out := p.out()
	fail := func(op string, err error) {
		res.Status = StatusFailed
		res.Err = &FileError{Name: res.Name(), Op: op, Err: err}
		fmt.Fprintf(out, "✗ Error processing %s: %v\n", res.Name(), err)
	}

	perm := res.File.Mode
	if perm == 0 {
		perm = 0644
	}

	backup, err := writeBackup(res.File.Path, p.BackupPrefix, []byte(res.original), perm, p.now())
	if err != nil {
		fail("backup", err)
		return
	}
	res.Backup = backup

	if err := replaceFile(res.File.Path, []byte(res.patched), perm); err != nil {
		fail("write", err)
		return
	}

	res.Status = StatusUpdated
	fmt.Fprintf(out, "✓ Updated %s with login SVG icon\n", res.Name())
}

// ScanAndPatch plans and applies changes for dir in one pass.
func (p *Patcher) ScanAndPatch(dir string) (Summary, error) {
	plan, err := p.Plan(dir)
	if err != nil {
		return Summary{}, err
	}
	return p.Apply(plan), nil
}
