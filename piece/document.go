// Package piece implements the document model's mutators and queries:
// title and track management, section overlap resolution, note and
// chord batch operations, harmony flagging, and the bounded undo/redo
// snapshot engine. Every mutator follows the same shape: validate
// first, checkpoint, then write, so a failed validation never consumes
// a snapshot.
package piece

import (
	"sync"

	"github.com/jsphweid/scoretool/model"
)

const maxHistory = 10

// Document owns one model.Piece plus its undo/redo history. History lives
// outside model.Piece itself because a snapshot excludes the history
// stacks; keeping them in the same struct as the document would risk
// copying them in.
type Document struct {
	mu      sync.Mutex
	current *model.Piece
	undo    []*model.Piece
	redo    []*model.Piece
}

// Lock and Unlock guard access to the document for callers that share it
// across goroutines; the core tool-call path is strictly serial and
// never contends on this, but the admin sidecar runs its own HTTP
// goroutines against the same document and must not read it
// mid-mutation.
func (d *Document) Lock()   { d.mu.Lock() }
func (d *Document) Unlock() { d.mu.Unlock() }

// New returns an empty document.
func New() *Document {
	return &Document{current: model.NewPiece()}
}

// Snapshot returns a read-only view of the current piece. Callers must
// not mutate the returned value; query paths that need to build response
// payloads should copy fields they return.
func (d *Document) Snapshot() *model.Piece {
	return d.current
}

// checkpoint pushes a deep copy of the current state onto the undo stack,
// trims the stack to at most maxHistory entries from the bottom, and
// clears the redo stack. Every mutator calls this after validating its
// arguments and before its first write.
func (d *Document) checkpoint() {
	d.undo = append(d.undo, d.current.Clone())
	if len(d.undo) > maxHistory {
		d.undo = d.undo[len(d.undo)-maxHistory:]
	}
	d.redo = nil
}

// Undo restores the most recently checkpointed state. It fails with
// NothingToUndo if the undo stack is empty.
func (d *Document) Undo() error {
	if len(d.undo) == 0 {
		return model.NewError(model.CodeNothingToUndo, "no undo history available")
	}
	restored := d.undo[len(d.undo)-1]
	d.undo = d.undo[:len(d.undo)-1]
	d.redo = append(d.redo, d.current.Clone())
	d.current = restored
	return nil
}

// Redo restores the most recently undone state. It fails with
// NothingToRedo if the redo stack is empty.
func (d *Document) Redo() error {
	if len(d.redo) == 0 {
		return model.NewError(model.CodeNothingToRedo, "no redo history available")
	}
	restored := d.redo[len(d.redo)-1]
	d.redo = d.redo[:len(d.redo)-1]
	d.undo = append(d.undo, d.current.Clone())
	d.current = restored
	return nil
}

// UndoDepth and RedoDepth report the current stack lengths, used by tests
// and the admin sidecar's debug state dump.
func (d *Document) UndoDepth() int { return len(d.undo) }
func (d *Document) RedoDepth() int { return len(d.redo) }
