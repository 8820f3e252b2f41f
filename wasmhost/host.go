package wasmhost

import (
	"context"
	"fmt"
	"math"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/arena"
)

// ModuleName is the import module name guests use by default.
const ModuleName = "arena"

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
)

type hostFunc struct {
	fn      api.GoModuleFunc
	name    string
	params  []api.ValueType
	results []api.ValueType
}

// Host serves one arena to guests.
type Host struct {
	arena *arena.Arena[uint64]
}

// New creates a host over a.
func New(a *arena.Arena[uint64]) *Host {
	return &Host{arena: a}
}

// Arena returns the served arena.
func (h *Host) Arena() *arena.Arena[uint64] {
	return h.arena
}

// Instantiate registers the host module under ModuleName.
func (h *Host) Instantiate(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	return h.InstantiateAs(ctx, r, ModuleName)
}

// InstantiateAs registers the host module under name. It must run before
// any guest importing name is instantiated.
func (h *Host) InstantiateAs(ctx context.Context, r wazero.Runtime, name string) (api.Module, error) {
	builder := r.NewHostModuleBuilder(name)
	for _, f := range h.funcs() {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(f.fn, f.params, f.results).
			Export(f.name)
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("instantiate host module %q: %w", name, err)
	}
	return mod, nil
}

func (h *Host) funcs() []hostFunc {
	return []hostFunc{
		{name: "add", fn: h.add, params: []api.ValueType{i64}, results: []api.ValueType{i32}},
		{name: "get", fn: h.get, params: []api.ValueType{i32}, results: []api.ValueType{i64, i32}},
		{name: "set", fn: h.set, params: []api.ValueType{i32, i64}, results: []api.ValueType{i32}},
		{name: "remove", fn: h.remove, params: []api.ValueType{i32}, results: []api.ValueType{i64, i32}},
		{name: "exists", fn: h.exists, params: []api.ValueType{i32}, results: []api.ValueType{i32}},
		{name: "len", fn: h.count, params: nil, results: []api.ValueType{i32}},
	}
}

func decodeIndex(v uint64) arena.Index {
	return arena.NewIndex(int64(api.DecodeI32(v)))
}

// encodeIndex reports false for indices a guest i32 can not carry.
func encodeIndex(idx arena.Index) (uint64, bool) {
	if idx.IsInvalid() || idx.Int64() > math.MaxInt32 {
		return api.EncodeI32(int32(arena.InvalidIndex().Int64())), false
	}
	return api.EncodeI32(int32(idx.Int64())), true
}

func encodeStatus(op string, idx arena.Index, err error) uint64 {
	s := StatusOf(err)
	if s != StatusOK {
		Logger().Debug("guest arena call failed",
			zap.String("op", op),
			zap.Int64("index", idx.Int64()),
			zap.Stringer("status", s),
			zap.Error(err))
	}
	return uint64(s)
}

func (h *Host) add(_ context.Context, _ api.Module, stack []uint64) {
	idx := h.arena.Add(stack[0])
	enc, ok := encodeIndex(idx)
	if !ok {
		// Unreachable from the guest, so the value must not stay behind.
		_, _ = h.arena.Remove(idx)
		Logger().Warn("arena index exceeds guest i32 range", zap.Int64("index", idx.Int64()))
	}
	stack[0] = enc
}

func (h *Host) get(_ context.Context, _ api.Module, stack []uint64) {
	idx := decodeIndex(stack[0])
	r, err := h.arena.Lookup(idx)
	if err != nil {
		stack[0], stack[1] = 0, encodeStatus("get", idx, err)
		return
	}
	stack[0], stack[1] = r.Get(), uint64(StatusOK)
	r.Release()
}

func (h *Host) set(_ context.Context, _ api.Module, stack []uint64) {
	idx := decodeIndex(stack[0])
	value := stack[1]
	w, err := h.arena.LookupMut(idx)
	if err != nil {
		stack[0] = encodeStatus("set", idx, err)
		return
	}
	w.Set(value)
	w.Release()
	stack[0] = uint64(StatusOK)
}

func (h *Host) remove(_ context.Context, _ api.Module, stack []uint64) {
	idx := decodeIndex(stack[0])
	v, err := h.arena.Remove(idx)
	if err != nil {
		stack[0], stack[1] = 0, encodeStatus("remove", idx, err)
		return
	}
	stack[0], stack[1] = v, uint64(StatusOK)
}

func (h *Host) exists(_ context.Context, _ api.Module, stack []uint64) {
	if h.arena.Handle(decodeIndex(stack[0])).Exists() {
		stack[0] = 1
	} else {
		stack[0] = 0
	}
}

func (h *Host) count(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = api.EncodeI32(int32(min(h.arena.Len(), math.MaxInt32)))
}
