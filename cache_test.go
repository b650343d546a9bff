package ecs

import "testing"

func TestCacheBasicOperations(t *testing.T) {
	const capacity = 10
	cache := FactoryNewCache[string](capacity)

	items := []string{"item1", "item2", "item3", "item4", "item5"}
	indices := make([]int, len(items))

	for i, item := range items {
		index, err := cache.Register(item, item)
		if err != nil {
			t.Fatalf("failed to register item %s: %v", item, err)
		}
		indices[i] = index
		if index != i {
			t.Errorf("index for item %s is %d, expected %d", item, index, i)
		}
	}

	for i, item := range items {
		index, found := cache.GetIndex(item)
		if !found {
			t.Errorf("item %s not found in cache", item)
		}
		if index != indices[i] {
			t.Errorf("index for item %s is %d, expected %d", item, index, indices[i])
		}
	}

	for i, item := range items {
		cachedItem := cache.GetItem(indices[i])
		if *cachedItem != item {
			t.Errorf("item at index %d is %s, expected %s", indices[i], *cachedItem, item)
		}
	}

	for i, item := range items {
		cachedItem := cache.GetItem32(uint32(indices[i]))
		if *cachedItem != item {
			t.Errorf("item at index %d is %s, expected %s", indices[i], *cachedItem, item)
		}
	}

	if _, found := cache.GetIndex("nonexistent"); found {
		t.Errorf("found non-existent item in cache")
	}
}

func TestCacheRegisterIsIdempotent(t *testing.T) {
	cache := FactoryNewCache[int](4)

	first, err := cache.Register("k", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cache.Register("k", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("re-registering the same key returned a different index: %d vs %d", first, second)
	}
	if got := *cache.GetItem(first); got != 1 {
		t.Errorf("re-registering the same key overwrote its stored item: got %d, want 1", got)
	}
}

func TestCacheCapacity(t *testing.T) {
	const capacity = 5
	cache := FactoryNewCache[int](capacity)

	for i := 0; i < capacity; i++ {
		key := string(rune('a' + i))
		if _, err := cache.Register(key, i); err != nil {
			t.Fatalf("failed to register item %s: %v", key, err)
		}
	}

	if _, err := cache.Register("overflow", 100); err == nil {
		t.Errorf("expected error when exceeding cache capacity, got none")
	}
}

func TestCacheClear(t *testing.T) {
	cache := FactoryNewCache[string](10).(*SimpleCache[string])

	items := []string{"item1", "item2", "item3"}
	for _, item := range items {
		if _, err := cache.Register(item, item); err != nil {
			t.Fatalf("failed to register item %s: %v", item, err)
		}
	}

	cache.Clear()

	for _, item := range items {
		if _, found := cache.GetIndex(item); found {
			t.Errorf("item %s still found after cache clear", item)
		}
	}

	for _, item := range items {
		if _, err := cache.Register(item, item); err != nil {
			t.Errorf("failed to register item %s after clear: %v", item, err)
		}
	}
}

func TestCacheWithComplexTypes(t *testing.T) {
	cache := FactoryNewCache[Position](10)

	positions := []Position{
		{X: 1.0, Y: 2.0},
		{X: 3.0, Y: 4.0},
		{X: 5.0, Y: 6.0},
	}
	keys := []string{"pos1", "pos2", "pos3"}

	for i, pos := range positions {
		if _, err := cache.Register(keys[i], pos); err != nil {
			t.Fatalf("failed to register position %v: %v", pos, err)
		}
	}

	for i, key := range keys {
		index, found := cache.GetIndex(key)
		if !found {
			t.Errorf("position with key %s not found", key)
			continue
		}
		pos := cache.GetItem(index)
		if pos.X != positions[i].X || pos.Y != positions[i].Y {
			t.Errorf("position at index %d is %v, expected %v", index, pos, positions[i])
		}
	}
}
