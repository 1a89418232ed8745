package types_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/countdown/internal/types"
)

func TestCallbackManager(t *testing.T) {
	t.Parallel()

	var m types.CallbackManager[string]
	m.Add("a")
	removeB := m.Add("b")
	m.Add("c")

	if got := m.Len(); got != 3 {
		t.Errorf("m.Len() = %d, want 3", got)
	}
	if diff := cmp.Diff(slices.Collect(m.All()), []string{"a", "b", "c"}); diff != "" {
		t.Errorf("m.All() mismatch\ndiff (-got +want):\n%v", diff)
	}

	removeB()
	removeB()
	if diff := cmp.Diff(slices.Collect(m.All()), []string{"a", "c"}); diff != "" {
		t.Errorf("m.All() after remove mismatch\ndiff (-got +want):\n%v", diff)
	}

	// removal during iteration doesn't affect the snapshot
	var got []string
	removeD := m.Add("d")
	for s := range m.All() {
		got = append(got, s)
		removeD()
	}
	if diff := cmp.Diff(got, []string{"a", "c", "d"}); diff != "" {
		t.Errorf("iteration mismatch\ndiff (-got +want):\n%v", diff)
	}
	if got := m.Len(); got != 2 {
		t.Errorf("m.Len() = %d, want 2", got)
	}

	var nilMgr *types.CallbackManager[string]
	if got := nilMgr.Len(); got != 0 {
		t.Errorf("nil m.Len() = %d, want 0", got)
	}
	for range nilMgr.All() {
		t.Error("nil m.All() yielded a value")
	}
}
