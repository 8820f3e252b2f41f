// Package wasmhost exposes an arena to WebAssembly guests as a host module.
//
// The module (named "arena" by default) stores 64-bit values and hands out
// slot indices as i32:
//
//	add(value i64) -> i32                  index of the new slot
//	get(index i32) -> (i64, i32)           value, status
//	set(index i32, value i64) -> i32       status
//	remove(index i32) -> (i64, i32)        removed value, status
//	exists(index i32) -> i32               1 if occupied, else 0
//	len() -> i32                           occupied slot count
//
// Status codes mirror the arena error kinds; see Status. Index -1 is the
// invalid sentinel. Only the first 2^31 slots are addressable: once the
// arena grows past that, add drops the value and returns -1, and len
// saturates at math.MaxInt32.
//
//	r := wazero.NewRuntime(ctx)
//	host := wasmhost.New(arena.New[uint64]())
//	if _, err := host.Instantiate(ctx, r); err != nil {
//	    return err
//	}
//	// instantiate guests importing "arena" afterwards
//
// Guest calls run synchronously on the caller's goroutine and hold no
// guard across calls. Like the arena itself, a Host must not be shared by
// guests running concurrently.
package wasmhost
