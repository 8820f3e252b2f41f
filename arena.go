package arena

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/wippyai/arena/cell"
	"github.com/wippyai/arena/errors"
)

// slot is one storage position: a value or vacant.
type slot[T any] struct {
	value    T
	occupied bool
}

type subscription struct {
	observer Observer
	id       uint64
}

// Arena owns values of type T stored at stable slot positions.
type Arena[T any] struct {
	data      *cell.Vec[slot[T]]
	log       *zap.Logger
	free      []Index
	observers []subscription
	nextSubID uint64
}

// New creates an empty arena.
func New[T any](opts ...Option) *Arena[T] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = Logger()
	}

	a := &Arena[T]{
		data: cell.NewVec[slot[T]](cfg.capacity),
		log:  cfg.logger,
	}
	for _, o := range cfg.observers {
		a.Subscribe(o)
	}
	return a
}

// FromSlice creates an arena holding values at indices 0..len(values)-1.
func FromSlice[T any](values []T, opts ...Option) *Arena[T] {
	a := New[T](append([]Option{WithCapacity(len(values))}, opts...)...)
	for _, v := range values {
		a.Add(v)
	}
	return a
}

// Collect creates an arena by adding every value of seq in order.
func Collect[T any](seq iter.Seq[T], opts ...Option) *Arena[T] {
	a := New[T](opts...)
	for v := range seq {
		a.Add(v)
	}
	return a
}

// Len returns the number of occupied slots.
func (a *Arena[T]) Len() int {
	return a.data.Len() - len(a.free)
}

// IsEmpty reports whether no slot is occupied.
func (a *Arena[T]) IsEmpty() bool {
	return a.Len() == 0
}

// Slots returns the total number of slots, occupied or vacant.
func (a *Arena[T]) Slots() int {
	return a.data.Len()
}

// Add stores value and returns its index. The most recently freed slot is
// reused first; otherwise a new slot is appended.
func (a *Arena[T]) Add(value T) Index {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]

		// Vacant slots never hold guards: every path releases them before the
		// slot reaches the free-list.
		if _, err := a.data.TryReplace(idx.Offset(), slot[T]{value: value, occupied: true}); err != nil {
			panic(errors.Wrap(errors.OpAdd, errors.KindBorrow, err, fmt.Sprintf("free slot %d is borrowed", idx)))
		}

		a.log.Debug("slot reused", zap.Int64("index", idx.Int64()))
		a.notify(Event{Type: EventAdded, Index: idx, Reused: true})
		return idx
	}

	idx := IndexFromOffset(a.data.Len())
	a.data.Push(slot[T]{value: value, occupied: true})
	a.notify(Event{Type: EventAdded, Index: idx})
	return idx
}

// Remove takes the value out of the slot at index and makes the slot
// available to a later Add.
func (a *Arena[T]) Remove(index Index) (T, error) {
	var zero T
	if index.IsInvalid() {
		return zero, errors.InvalidIndex(errors.OpRemove)
	}

	g, err := a.data.TryBorrowMut(index.Offset())
	if err != nil {
		a.logConflict(errors.OpRemove, index, err)
		return zero, storageError(errors.OpRemove, index, err)
	}

	s := g.Ptr()
	if !s.occupied {
		g.Release()
		return zero, errors.RemovedElement(errors.OpRemove, index.Int64(), nil)
	}

	value := s.value
	*s = slot[T]{}
	// The guard goes before the index becomes reusable: observers may Add.
	g.Release()
	a.free = append(a.free, index)

	a.log.Debug("slot freed", zap.Int64("index", index.Int64()), zap.Int("free", len(a.free)))
	a.notify(Event{Type: EventRemoved, Index: index})
	return value, nil
}

// Lookup acquires a shared guard on the value at index.
func (a *Arena[T]) Lookup(index Index) (*ElementRef[T], error) {
	if index.IsInvalid() {
		return nil, errors.InvalidIndex(errors.OpLookup)
	}

	r, err := a.data.TryBorrow(index.Offset())
	if err != nil {
		a.logConflict(errors.OpLookup, index, err)
		return nil, storageError(errors.OpLookup, index, err)
	}
	if !r.Get().occupied {
		r.Release()
		return nil, errors.RemovedElement(errors.OpLookup, index.Int64(), nil)
	}

	return &ElementRef[T]{ref: r, index: index}, nil
}

// LookupMut acquires an exclusive guard on the value at index.
func (a *Arena[T]) LookupMut(index Index) (*ElementRefMut[T], error) {
	if index.IsInvalid() {
		return nil, errors.InvalidIndex(errors.OpLookupMut)
	}

	w, err := a.data.TryBorrowMut(index.Offset())
	if err != nil {
		a.logConflict(errors.OpLookupMut, index, err)
		return nil, storageError(errors.OpLookupMut, index, err)
	}
	if !w.Ptr().occupied {
		w.Release()
		return nil, errors.RemovedElement(errors.OpLookupMut, index.Int64(), nil)
	}

	return &ElementRefMut[T]{ref: w, index: index}, nil
}

// Handle returns a raw handle to index. The index is not validated until the
// handle is used.
func (a *Arena[T]) Handle(index Index) RawHandle[T] {
	return RawHandle[T]{arena: a, index: index}
}

// HandleIter returns an iterator over raw handles to every slot that exists
// now, occupied or vacant, in index order.
func (a *Arena[T]) HandleIter() *HandleIter[T, NoUserdata, RawHandle[T]] {
	return newHandleIter(a, NoUserdata{}, rawFromRaw[T])
}

// Subscribe registers o for lifecycle events and returns a function that
// unregisters it.
func (a *Arena[T]) Subscribe(o Observer) (unsubscribe func()) {
	a.nextSubID++
	id := a.nextSubID
	a.observers = append(a.observers, subscription{id: id, observer: o})

	return func() {
		for i, s := range a.observers {
			if s.id == id {
				a.observers = append(a.observers[:i:i], a.observers[i+1:]...)
				return
			}
		}
	}
}

func (a *Arena[T]) notify(e Event) {
	for _, s := range a.observers {
		s.observer.OnArenaEvent(e)
	}
}

func (a *Arena[T]) logConflict(op errors.Op, index Index, err error) {
	a.log.Debug("slot access failed",
		zap.String("op", string(op)),
		zap.Int64("index", index.Int64()),
		zap.Error(err))
}
