package editor

import "voidwake/mobs/tomlval"

const defaultHistoryLimit = 50

// History keeps bounded undo and redo stacks of whole-document
// snapshots. Pushing a new snapshot invalidates the redo stack; when
// the undo stack is full the oldest snapshot falls off.
type History struct {
	past   []tomlval.Value
	future []tomlval.Value
	limit  int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push records the pre-edit state.
func (h *History) Push(snapshot tomlval.Value) {
	if h == nil {
		return
	}
	h.future = h.future[:0]
	if len(h.past) >= h.limit {
		copy(h.past, h.past[1:])
		h.past = h.past[:len(h.past)-1]
	}
	h.past = append(h.past, snapshot.Clone())
}

func (h *History) CanUndo() bool {
	return h != nil && len(h.past) > 0
}

func (h *History) CanRedo() bool {
	return h != nil && len(h.future) > 0
}

// Undo trades the current state for the most recent snapshot. The
// current state moves to the redo stack.
func (h *History) Undo(current tomlval.Value) (tomlval.Value, bool) {
	if !h.CanUndo() {
		return tomlval.Value{}, false
	}
	snapshot := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current.Clone())
	return snapshot, true
}

// Redo is the inverse of Undo.
func (h *History) Redo(current tomlval.Value) (tomlval.Value, bool) {
	if !h.CanRedo() {
		return tomlval.Value{}, false
	}
	snapshot := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current.Clone())
	return snapshot, true
}

// Depth reports the undo and redo stack sizes.
func (h *History) Depth() (past, future int) {
	if h == nil {
		return 0, 0
	}
	return len(h.past), len(h.future)
}
