package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"notesflow-cli/internal/model"
)

func seedTasks(c *Controller) {
	c.SetTasks([]model.Task{
		{ID: 1, Title: "Write report", Status: model.StatusPending, Priority: model.PriorityMedium},
		{ID: 2, Title: "Review PR", Status: model.StatusInProgress, Priority: model.PriorityHigh},
		{ID: 3, Title: "", Status: model.StatusCompleted, Priority: model.PriorityLow},
	})
	c.SetStats(model.TaskStats{Pending: 1, InProgress: 1, Completed: 1})
}

func taskByID(t *testing.T, c *Controller, id int64) model.Task {
	t.Helper()
	for _, tk := range c.Tasks() {
		if tk.ID == id {
			return tk
		}
	}
	t.Fatalf("task %d not found", id)
	return model.Task{}
}

func TestAddNotePrependsToHead(t *testing.T) {
	c := NewController()
	c.SetNotes([]model.Note{{ID: 1, Title: "old"}})
	c.AddNote(model.Note{ID: 2, Title: "new"})

	notes := c.Notes()
	require.Len(t, notes, 2)
	require.Equal(t, int64(2), notes[0].ID)
}

func TestAddTaskCountsIntoStats(t *testing.T) {
	c := NewController()
	seedTasks(c)
	c.AddTask(model.Task{ID: 4, Status: model.StatusPending})

	require.Equal(t, model.TaskStats{Pending: 2, InProgress: 1, Completed: 1}, c.Stats())
	require.Equal(t, int64(4), c.Tasks()[0].ID)
}

func TestApplyTaskStatusAdjustsStatsSynchronously(t *testing.T) {
	c := NewController()
	seedTasks(c)

	prev, seq, ok := c.ApplyTaskStatus(1, model.StatusInProgress)
	require.True(t, ok)
	require.Equal(t, model.StatusPending, prev)
	require.NotZero(t, seq)

	// Both the task and the aggregate moved in the same step, before any
	// server response.
	require.Equal(t, model.StatusInProgress, taskByID(t, c, 1).Status)
	require.Equal(t, model.TaskStats{Pending: 0, InProgress: 2, Completed: 1}, c.Stats())
}

func TestThreeStatusClicksAreNetZero(t *testing.T) {
	c := NewController()
	seedTasks(c)
	start := c.Stats()

	st := taskByID(t, c, 1).Status
	for i := 0; i < 3; i++ {
		st = st.Next()
		_, _, ok := c.ApplyTaskStatus(1, st)
		require.True(t, ok)
	}

	require.Equal(t, model.StatusPending, taskByID(t, c, 1).Status)
	require.Equal(t, start, c.Stats())
}

func TestApplyTaskStatusNoopOnSameStatus(t *testing.T) {
	c := NewController()
	seedTasks(c)

	_, _, ok := c.ApplyTaskStatus(1, model.StatusPending)
	require.False(t, ok)
	require.Equal(t, model.TaskStats{Pending: 1, InProgress: 1, Completed: 1}, c.Stats())
}

func TestApplyPinIsAFlip(t *testing.T) {
	c := NewController()
	c.SetNotes([]model.Note{{ID: 7}})

	pinned, _, ok := c.ApplyPin(RecordNote, 7)
	require.True(t, ok)
	require.True(t, pinned)

	pinned, _, ok = c.ApplyPin(RecordNote, 7)
	require.True(t, ok)
	require.False(t, pinned, "two flips return to the original state")
}

func TestCommitTaskDiscardsStaleResponse(t *testing.T) {
	c := NewController()
	seedTasks(c)

	// Two rapid edits to the same task; the response for the first comes back
	// after the second was issued and must be dropped.
	seq1 := c.Begin(RecordTask, 1)
	seq2 := c.Begin(RecordTask, 1)

	stale := taskByID(t, c, 1)
	stale.Title = "first edit"
	require.False(t, c.CommitTask(seq1, stale))
	require.Equal(t, "Write report", taskByID(t, c, 1).Title)

	fresh := taskByID(t, c, 1)
	fresh.Title = "second edit"
	require.True(t, c.CommitTask(seq2, fresh))
	require.Equal(t, "second edit", taskByID(t, c, 1).Title)
}

func TestCommitTaskReconcilesStatsDrift(t *testing.T) {
	c := NewController()
	seedTasks(c)

	// Server says completed but the local copy still thinks pending; the
	// mirror follows the server on commit.
	seq := c.Begin(RecordTask, 1)
	srv := taskByID(t, c, 1)
	srv.Status = model.StatusCompleted
	require.True(t, c.CommitTask(seq, srv))
	require.Equal(t, model.TaskStats{Pending: 0, InProgress: 1, Completed: 2}, c.Stats())
}

func TestRollbackDisabledByDefault(t *testing.T) {
	c := NewController()
	seedTasks(c)

	prev, seq, ok := c.ApplyTaskStatus(1, model.StatusCompleted)
	require.True(t, ok)

	require.False(t, c.RollbackTaskStatus(1, seq, prev))
	require.Equal(t, model.StatusCompleted, taskByID(t, c, 1).Status)
}

func TestRollbackRevertsStatusAndStatsWhenEnabled(t *testing.T) {
	c := NewController()
	c.RollbackOnFailure = true
	seedTasks(c)

	prev, seq, ok := c.ApplyTaskStatus(1, model.StatusCompleted)
	require.True(t, ok)

	require.True(t, c.RollbackTaskStatus(1, seq, prev))
	require.Equal(t, model.StatusPending, taskByID(t, c, 1).Status)
	require.Equal(t, model.TaskStats{Pending: 1, InProgress: 1, Completed: 1}, c.Stats())
}

func TestRollbackSkippedWhenSuperseded(t *testing.T) {
	c := NewController()
	c.RollbackOnFailure = true
	seedTasks(c)

	prev, seq, _ := c.ApplyTaskStatus(1, model.StatusInProgress)
	c.ApplyTaskStatus(1, model.StatusCompleted)

	require.False(t, c.RollbackTaskStatus(1, seq, prev), "a newer change owns the record now")
	require.Equal(t, model.StatusCompleted, taskByID(t, c, 1).Status)
}

func TestRequestDeleteStagesWithoutRemoving(t *testing.T) {
	c := NewController()
	seedTasks(c)

	pd, ok := c.RequestDelete(RecordTask, 2)
	require.True(t, ok)
	require.Equal(t, PendingDelete{Type: RecordTask, ID: 2, Title: "Review PR"}, pd)

	// Staging touches nothing: list and stats are unchanged.
	require.Len(t, c.Tasks(), 3)
	require.Equal(t, model.TaskStats{Pending: 1, InProgress: 1, Completed: 1}, c.Stats())
}

func TestRequestDeleteDefaultsUntitled(t *testing.T) {
	c := NewController()
	seedTasks(c)
	c.SetNotes([]model.Note{{ID: 5}})

	pd, ok := c.RequestDelete(RecordTask, 3)
	require.True(t, ok)
	require.Equal(t, "Untitled Task", pd.Title)

	pd, ok = c.RequestDelete(RecordNote, 5)
	require.True(t, ok)
	require.Equal(t, "Untitled Note", pd.Title)
}

func TestCancelDeleteClearsDescriptor(t *testing.T) {
	c := NewController()
	seedTasks(c)

	c.RequestDelete(RecordTask, 1)
	c.CancelDelete()

	_, ok := c.Pending()
	require.False(t, ok)
	require.Len(t, c.Tasks(), 3)
}

func TestCompleteDeleteRemovesAndUncounts(t *testing.T) {
	c := NewController()
	seedTasks(c)

	c.RequestDelete(RecordTask, 2)
	c.CompleteDelete()

	require.Len(t, c.Tasks(), 2)
	require.Equal(t, model.TaskStats{Pending: 1, InProgress: 0, Completed: 1}, c.Stats())
	_, ok := c.Pending()
	require.False(t, ok)
}

func TestUpdateNoteMutatesInPlace(t *testing.T) {
	c := NewController()
	now := time.Now()
	c.SetNotes([]model.Note{{ID: 1, Title: "draft", UpdatedAt: now}})

	ok := c.UpdateNote(1, func(n *model.Note) { n.Title = "final" })
	require.True(t, ok)
	require.Equal(t, "final", c.Notes()[0].Title)

	require.False(t, c.UpdateNote(99, func(n *model.Note) {}))
}
