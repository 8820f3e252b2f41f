package arena

import "iter"

// HandleIter yields a handle for every slot that existed when it was
// created, in ascending index order. Vacant slots are included; vacancy
// shows up when the handle is dereferenced.
type HandleIter[T, U any, H Handle[T]] struct {
	arena    *Arena[T]
	fromRaw  FromRaw[T, U, H]
	userdata U
	next     int
	end      int
}

func newHandleIter[T, U any, H Handle[T]](a *Arena[T], userdata U, fromRaw FromRaw[T, U, H]) *HandleIter[T, U, H] {
	return &HandleIter[T, U, H]{
		arena:    a,
		fromRaw:  fromRaw,
		userdata: userdata,
		end:      a.Slots(),
	}
}

// Next returns the next handle, or false once every slot was visited.
func (it *HandleIter[T, U, H]) Next() (H, bool) {
	if it.next >= it.end {
		var zero H
		return zero, false
	}

	ud := it.userdata
	if c, ok := any(ud).(Cloner[U]); ok {
		ud = c.Clone()
	}

	h := it.fromRaw(it.arena.Handle(IndexFromOffset(it.next)), ud)
	it.next++
	return h, true
}

// All adapts the remaining handles to a range-over-func sequence.
func (it *HandleIter[T, U, H]) All() iter.Seq[H] {
	return func(yield func(H) bool) {
		for {
			h, ok := it.Next()
			if !ok || !yield(h) {
				return
			}
		}
	}
}
