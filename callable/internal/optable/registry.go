package optable

import (
	"reflect"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/on-the-ground/call_able_go/callable/internal/storage"
	sharedHelper "github.com/on-the-ground/call_able_go/shared/helper"
)

// The registry holds every table ever built, for the life of the
// process. Shards are picked by hashing the target type's name, so
// unrelated signatures do not contend on first use; within a shard the
// first build wins, which is what makes pointer equality against a
// cached table a sound emptiness test.
const numShards = 16

type shard struct {
	mu     sync.RWMutex
	tables map[tableKey]any
}

var registry [numShards]shard

// tableKey identifies one table: sentinels have a nil target type,
// adaptive tables a nil buffer type.
type tableKey struct {
	kind    Kind
	failing bool
	target  reflect.Type
	buffer  reflect.Type
	in, out reflect.Type
}

func adaptiveKey[I, O, T any](kind Kind, failing bool) tableKey {
	return tableKey{
		kind:    kind,
		failing: failing,
		target:  reflect.TypeFor[T](),
		in:      reflect.TypeFor[I](),
		out:     reflect.TypeFor[O](),
	}
}

func fixedKey[B storage.Buffer, I, O, T any](kind Kind, failing bool) tableKey {
	key := adaptiveKey[I, O, T](kind, failing)
	key.buffer = reflect.TypeFor[B]()
	return key
}

func sentinelKey[I, O any](failing bool) tableKey {
	return tableKey{
		failing: failing,
		in:      reflect.TypeFor[I](),
		out:     reflect.TypeFor[O](),
	}
}

func shardOf(key tableKey) *shard {
	name := "sentinel"
	if key.target != nil {
		name = key.target.String()
	}
	return &registry[xxhash.Sum64String(name)%numShards]
}

// tableFor returns the registered table for key, building it under the
// shard lock on first use.
func tableFor[I, O any](key tableKey, build func() *Table[I, O]) *Table[I, O] {
	s := shardOf(key)

	s.mu.RLock()
	raw, ok := s.tables[key]
	s.mu.RUnlock()
	if ok {
		// Keep the hit path free of allocations; the typed-retrieval
		// helper only vets what the build path just registered.
		if tb, hit := raw.(*Table[I, O]); hit {
			return tb
		}
	}

	raw = buildLocked(s, key, func() any { return build() })
	return sharedHelper.MustTypedValue[*Table[I, O]](raw)
}

func buildLocked(s *shard, key tableKey, build func() any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if raw, ok := s.tables[key]; ok {
		return raw
	}
	if s.tables == nil {
		s.tables = make(map[tableKey]any)
	}
	raw := build()
	s.tables[key] = raw
	return raw
}
