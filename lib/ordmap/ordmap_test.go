package ordmap

import (
	"slices"
	"testing"
)

func TestZeroValueUsable(t *testing.T) {
	var m Map[string, int]

	if _, ok := m.Get("a"); ok {
		t.Error("Get on empty map reported a value")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}

	if inserted := m.Set("a", 1); !inserted {
		t.Error("Set of a new key reported an update")
	}
	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v, want 1, true", v, ok)
	}
}

func TestSetKeepsPosition(t *testing.T) {
	var m Map[string, int]
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	if inserted := m.Set("a", 10); inserted {
		t.Error("Set of an existing key reported an insert")
	}

	wantKeys := []string{"a", "b", "c"}
	if got := m.Keys(); !slices.Equal(got, wantKeys) {
		t.Errorf("Keys() = %v, want %v", got, wantKeys)
	}
	wantVals := []int{10, 2, 3}
	if got := m.Values(); !slices.Equal(got, wantVals) {
		t.Errorf("Values() = %v, want %v", got, wantVals)
	}
}

func TestDelete(t *testing.T) {
	var m Map[string, int]
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	if !m.Delete("b") {
		t.Error("Delete(b) = false, want true")
	}
	if m.Delete("b") {
		t.Error("second Delete(b) = true, want false")
	}
	if m.Delete("missing") {
		t.Error("Delete(missing) = true, want false")
	}

	wantKeys := []string{"a", "c"}
	if got := m.Keys(); !slices.Equal(got, wantKeys) {
		t.Errorf("Keys() = %v, want %v", got, wantKeys)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestDeleteThenReinsertMovesToEnd(t *testing.T) {
	var m Map[string, int]
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	m.Delete("a")
	m.Set("a", 4)

	wantKeys := []string{"b", "c", "a"}
	if got := m.Keys(); !slices.Equal(got, wantKeys) {
		t.Errorf("Keys() = %v, want %v", got, wantKeys)
	}
}

func TestAllOrder(t *testing.T) {
	var m Map[string, int]
	m.Set("c", 3)
	m.Set("a", 1)
	m.Set("b", 2)

	var keys []string
	var vals []int
	for k, v := range m.All() {
		keys = append(keys, k)
		vals = append(vals, v)
	}

	if want := []string{"c", "a", "b"}; !slices.Equal(keys, want) {
		t.Errorf("iteration keys = %v, want %v", keys, want)
	}
	if want := []int{3, 1, 2}; !slices.Equal(vals, want) {
		t.Errorf("iteration values = %v, want %v", vals, want)
	}
}

func TestAllEarlyBreak(t *testing.T) {
	var m Map[string, int]
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	var keys []string
	for k := range m.All() {
		keys = append(keys, k)
		if len(keys) == 2 {
			break
		}
	}

	if want := []string{"a", "b"}; !slices.Equal(keys, want) {
		t.Errorf("iteration keys = %v, want %v", keys, want)
	}
}

func TestAllRestartable(t *testing.T) {
	var m Map[string, int]
	m.Set("a", 1)
	m.Set("b", 2)

	seq := m.All()

	var first, second []string
	for k := range seq {
		first = append(first, k)
	}
	for k := range seq {
		second = append(second, k)
	}

	if !slices.Equal(first, second) {
		t.Errorf("second pass = %v, want %v", second, first)
	}
}

func TestAllSkipsDeletedMidPass(t *testing.T) {
	var m Map[string, int]
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	var keys []string
	for k := range m.All() {
		keys = append(keys, k)
		if k == "a" {
			m.Delete("b")
		}
	}

	if want := []string{"a", "c"}; !slices.Equal(keys, want) {
		t.Errorf("iteration keys = %v, want %v", keys, want)
	}
}

func TestAllReadsValuesLive(t *testing.T) {
	var m Map[string, int]
	m.Set("a", 1)
	m.Set("b", 2)

	var vals []int
	for k, v := range m.All() {
		vals = append(vals, v)
		if k == "a" {
			m.Set("b", 20)
		}
	}

	if want := []int{1, 20}; !slices.Equal(vals, want) {
		t.Errorf("iteration values = %v, want %v", vals, want)
	}
}
