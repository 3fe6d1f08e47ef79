// Package history keeps a linear log of reversible edits.
package history

// Command is a reversible edit. Redo applies it and Undo reverts it.
type Command interface {
	Redo()
	Undo()
}

// Discarder is implemented by commands that own resources which must be
// released once the command can no longer be redone.
type Discarder interface {
	Discard()
}

// Stack is a linear undo/redo history. Pushing after an undo drops the redo
// tail. Dropped commands are discarded newest first, the order an undo would
// have visited them. Stack is not safe for concurrent use.
type Stack struct {
	cmds []Command
	pos  int
}

// Push applies cmd and records it at the current position.
func (s *Stack) Push(cmd Command) {
	cmd.Redo()
	s.truncate(s.pos)
	s.cmds = append(s.cmds, cmd)
	s.pos = len(s.cmds)
}

// Undo reverts the command before the current position. It does nothing at
// the start of history.
func (s *Stack) Undo() bool {
	if s.pos == 0 {
		return false
	}
	s.pos--
	s.cmds[s.pos].Undo()
	return true
}

// Redo reapplies the command at the current position. It does nothing at the
// end of history.
func (s *Stack) Redo() bool {
	if s.pos == len(s.cmds) {
		return false
	}
	s.cmds[s.pos].Redo()
	s.pos++
	return true
}

// Clear discards every command.
func (s *Stack) Clear() {
	s.truncate(0)
	s.pos = 0
}

// Len returns the number of recorded commands including the redo tail.
func (s *Stack) Len() int { return len(s.cmds) }

// Index returns the current position.
func (s *Stack) Index() int { return s.pos }

// CanUndo reports whether Undo would do anything.
func (s *Stack) CanUndo() bool { return s.pos > 0 }

// CanRedo reports whether Redo would do anything.
func (s *Stack) CanRedo() bool { return s.pos < len(s.cmds) }

func (s *Stack) truncate(n int) {
	for i := len(s.cmds) - 1; i >= n; i-- {
		if d, ok := s.cmds[i].(Discarder); ok {
			d.Discard()
		}
		s.cmds[i] = nil
	}
	s.cmds = s.cmds[:n]
}
