package storage

import (
	"fmt"
	"testing"
)

func getAllImplementations() map[string]Storage {
	shardedMap16, _ := NewShardedMapStorage(16)
	shardedMap32, _ := NewShardedMapStorage(32)
	shardedMap64, _ := NewShardedMapStorage(64)

	return map[string]Storage{
		"MapStorage":           NewMapStorage(),
		"ShardedMapStorage_16": shardedMap16,
		"ShardedMapStorage_32": shardedMap32,
		"ShardedMapStorage_64": shardedMap64,
	}
}

func set(s Storage, key, value string) {
	s.Do(key, func(tx Tx) error { //nolint:errcheck
		tx.Set(key, &Entity{Type: TypeString, Value: value})
		return nil
	})
}

func get(s Storage, key string) {
	s.Do(key, func(tx Tx) error { //nolint:errcheck
		tx.Get(key)
		return nil
	})
}

func BenchmarkStorage(b *testing.B) {
	implementations := getAllImplementations()

	for name, s := range implementations {
		b.Run(fmt.Sprintf("%s/ReadOnly", name), func(b *testing.B) {
			set(s, "bench_key", "value")
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					get(s, "bench_key")
				}
			})
		})

		b.Run(fmt.Sprintf("%s/Mixed90-10", name), func(b *testing.B) {
			keyCount := 1000
			for i := 0; i < keyCount; i++ {
				set(s, fmt.Sprintf("key%d", i), "val")
			}
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					key := fmt.Sprintf("key%d", i%keyCount)
					if i%10 == 0 {
						set(s, key, "new_val")
					} else {
						get(s, key)
					}
					i++
				}
			})
		})
	}
}
