// Package state keeps list editing instantaneous while network calls are in
// flight: immediate-mode field changes mutate local state before the server
// answers, debounced text edits coalesce into one request per quiet window,
// and the task stats aggregate is mirrored incrementally so the dashboard
// never waits for a stats refetch.
package state

import (
	"sync"

	"notesflow-cli/internal/model"
)

type RecordType string

const (
	RecordNote RecordType = "note"
	RecordTask RecordType = "task"
)

// PendingDelete is the staged descriptor of the two-phase delete flow.
// Staging it performs no network call; only a confirm does.
type PendingDelete struct {
	Type  RecordType
	ID    int64
	Title string
}

type recordKey struct {
	typ RecordType
	id  int64
}

// Controller owns the client-side copies of the notes and tasks lists, the
// stats mirror, per-record sequence numbers for discarding stale responses,
// and the staged delete descriptor. All methods are safe for concurrent use;
// a single user action (e.g. a status click) updates the task and the stats
// under one lock so the two can never be observed out of step.
type Controller struct {
	// RollbackOnFailure controls what happens when an immediate-mode write
	// fails: true reverts the optimistic value, false (the default) leaves it
	// and relies on the next full refetch to correct drift.
	RollbackOnFailure bool

	mu      sync.Mutex
	notes   []model.Note
	tasks   []model.Task
	stats   model.TaskStats
	seqs    map[recordKey]uint64
	pending *PendingDelete
}

func NewController() *Controller {
	return &Controller{seqs: map[recordKey]uint64{}}
}

// --- list snapshots ---

func (c *Controller) SetNotes(notes []model.Note) {
	c.mu.Lock()
	c.notes = append([]model.Note(nil), notes...)
	c.mu.Unlock()
}

func (c *Controller) Notes() []model.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Note(nil), c.notes...)
}

func (c *Controller) SetTasks(tasks []model.Task) {
	c.mu.Lock()
	c.tasks = append([]model.Task(nil), tasks...)
	c.mu.Unlock()
}

func (c *Controller) Tasks() []model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Task(nil), c.tasks...)
}

func (c *Controller) SetStats(s model.TaskStats) {
	c.mu.Lock()
	c.stats = s
	c.mu.Unlock()
}

func (c *Controller) Stats() model.TaskStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// AddNote prepends a freshly created note so it appears at the head of the
// list immediately.
func (c *Controller) AddNote(n model.Note) {
	c.mu.Lock()
	c.notes = append([]model.Note{n}, c.notes...)
	c.mu.Unlock()
}

// AddTask prepends a freshly created task and counts it into the stats
// mirror.
func (c *Controller) AddTask(t model.Task) {
	c.mu.Lock()
	c.tasks = append([]model.Task{t}, c.tasks...)
	c.adjustStatsLocked("", t.Status)
	c.mu.Unlock()
}

// --- sequences (last-request-wins) ---

// Begin issues the next sequence number for a record. Attach it to the
// outgoing request and pass it back to Commit/Rollback; responses that are
// not the latest issued for that record are discarded.
func (c *Controller) Begin(typ RecordType, id int64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := recordKey{typ, id}
	c.seqs[k]++
	return c.seqs[k]
}

func (c *Controller) isLatestLocked(typ RecordType, id int64, seq uint64) bool {
	return c.seqs[recordKey{typ, id}] == seq
}

// --- immediate-mode changes ---

// ApplyTaskStatus optimistically sets a task's status and adjusts the stats
// mirror in the same synchronous step. It returns the previous status and a
// sequence number for the accompanying request; ok is false when the task is
// unknown or already in that status.
func (c *Controller) ApplyTaskStatus(id int64, next model.Status) (prev model.Status, seq uint64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.findTaskLocked(id)
	if t == nil || t.Status == next {
		return "", 0, false
	}
	prev = t.Status
	t.Status = next
	c.adjustStatsLocked(prev, next)

	k := recordKey{RecordTask, id}
	c.seqs[k]++
	return prev, c.seqs[k], true
}

// RollbackTaskStatus reverts a failed optimistic status change, but only when
// rollback is enabled and no newer change has superseded it.
func (c *Controller) RollbackTaskStatus(id int64, seq uint64, prev model.Status) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.RollbackOnFailure || !c.isLatestLocked(RecordTask, id, seq) {
		return false
	}
	t := c.findTaskLocked(id)
	if t == nil {
		return false
	}
	c.adjustStatsLocked(t.Status, prev)
	t.Status = prev
	return true
}

// ApplyTaskPriority optimistically sets a task's priority.
func (c *Controller) ApplyTaskPriority(id int64, p model.Priority) (prev model.Priority, seq uint64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.findTaskLocked(id)
	if t == nil || t.Priority == p {
		return "", 0, false
	}
	prev = t.Priority
	t.Priority = p

	k := recordKey{RecordTask, id}
	c.seqs[k]++
	return prev, c.seqs[k], true
}

// ApplyPin optimistically flips the pinned flag and reports the new value.
func (c *Controller) ApplyPin(typ RecordType, id int64) (pinned bool, seq uint64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch typ {
	case RecordNote:
		n := c.findNoteLocked(id)
		if n == nil {
			return false, 0, false
		}
		n.IsPinned = !n.IsPinned
		pinned = n.IsPinned
	case RecordTask:
		t := c.findTaskLocked(id)
		if t == nil {
			return false, 0, false
		}
		t.IsPinned = !t.IsPinned
		pinned = t.IsPinned
	default:
		return false, 0, false
	}

	k := recordKey{typ, id}
	c.seqs[k]++
	return pinned, c.seqs[k], true
}

// ApplyColor optimistically sets the background color.
func (c *Controller) ApplyColor(typ RecordType, id int64, color string) (seq uint64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch typ {
	case RecordNote:
		n := c.findNoteLocked(id)
		if n == nil {
			return 0, false
		}
		n.BackgroundColor = color
	case RecordTask:
		t := c.findTaskLocked(id)
		if t == nil {
			return 0, false
		}
		t.BackgroundColor = color
	default:
		return 0, false
	}

	k := recordKey{typ, id}
	c.seqs[k]++
	return c.seqs[k], true
}

// --- server reconciliation ---

// CommitNote merges the server's copy of a note, unless a newer request for
// the same note has been issued since seq (the slow response lost the race
// and is dropped).
func (c *Controller) CommitNote(seq uint64, n model.Note) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isLatestLocked(RecordNote, n.ID, seq) {
		return false
	}
	if dst := c.findNoteLocked(n.ID); dst != nil {
		*dst = n
		return true
	}
	return false
}

// CommitTask merges the server's copy of a task with stale-response discard.
// The stats mirror tracks any status difference between the local copy and
// the server's.
func (c *Controller) CommitTask(seq uint64, t model.Task) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isLatestLocked(RecordTask, t.ID, seq) {
		return false
	}
	if dst := c.findTaskLocked(t.ID); dst != nil {
		c.adjustStatsLocked(dst.Status, t.Status)
		*dst = t
		return true
	}
	return false
}

// UpdateNote applies a local mutation (debounced-save bookkeeping after a
// confirmed write).
func (c *Controller) UpdateNote(id int64, mutate func(*model.Note)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := c.findNoteLocked(id); n != nil {
		mutate(n)
		return true
	}
	return false
}

// UpdateTask applies a local mutation to a task.
func (c *Controller) UpdateTask(id int64, mutate func(*model.Task)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t := c.findTaskLocked(id); t != nil {
		mutate(t)
		return true
	}
	return false
}

// --- two-phase delete ---

// RequestDelete stages a pending-delete descriptor. No network call happens
// here; the caller shows a confirmation first.
func (c *Controller) RequestDelete(typ RecordType, id int64) (PendingDelete, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	title := ""
	switch typ {
	case RecordNote:
		n := c.findNoteLocked(id)
		if n == nil {
			return PendingDelete{}, false
		}
		title = n.Title
		if title == "" {
			title = "Untitled Note"
		}
	case RecordTask:
		t := c.findTaskLocked(id)
		if t == nil {
			return PendingDelete{}, false
		}
		title = t.Title
		if title == "" {
			title = "Untitled Task"
		}
	default:
		return PendingDelete{}, false
	}

	c.pending = &PendingDelete{Type: typ, ID: id, Title: title}
	return *c.pending, true
}

// Pending returns the staged descriptor, if any.
func (c *Controller) Pending() (PendingDelete, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return PendingDelete{}, false
	}
	return *c.pending, true
}

// CancelDelete discards the staged descriptor with no other effect.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	c.pending = nil
	c.mu.Unlock()
}

// CompleteDelete removes the staged record from local state after the server
// confirmed the delete, and clears the descriptor.
func (c *Controller) CompleteDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return
	}
	switch c.pending.Type {
	case RecordNote:
		for i := range c.notes {
			if c.notes[i].ID == c.pending.ID {
				c.notes = append(c.notes[:i], c.notes[i+1:]...)
				break
			}
		}
	case RecordTask:
		for i := range c.tasks {
			if c.tasks[i].ID == c.pending.ID {
				c.adjustStatsLocked(c.tasks[i].Status, "")
				c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
				break
			}
		}
	}
	c.pending = nil
}

// --- internals ---

func (c *Controller) findNoteLocked(id int64) *model.Note {
	for i := range c.notes {
		if c.notes[i].ID == id {
			return &c.notes[i]
		}
	}
	return nil
}

func (c *Controller) findTaskLocked(id int64) *model.Task {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			return &c.tasks[i]
		}
	}
	return nil
}

// adjustStatsLocked moves one task between status counters. Empty prev means
// a new task; empty next means a removed task.
func (c *Controller) adjustStatsLocked(prev, next model.Status) {
	if prev == next {
		return
	}
	switch prev {
	case model.StatusPending:
		c.stats.Pending--
	case model.StatusInProgress:
		c.stats.InProgress--
	case model.StatusCompleted:
		c.stats.Completed--
	}
	switch next {
	case model.StatusPending:
		c.stats.Pending++
	case model.StatusInProgress:
		c.stats.InProgress++
	case model.StatusCompleted:
		c.stats.Completed++
	}
}
