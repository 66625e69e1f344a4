package slug

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonbleue/backend/internal/repository"
)

func TestMake(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Hello World!", "hello-world"},
		{"  Déjà Vu  ", "deja-vu"},
		{"Crème brûlée, maison", "creme-brulee-maison"},
		{"---already---slugged---", "already-slugged"},
		{"UPPER_case and 123", "upper-case-and-123"},
		{"", "item"},
		{"!!!", "item"},
		{"日本語", "item"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Make(c.in), "Make(%q)", c.in)
	}
}

func neverExists(context.Context, string) (bool, error) {
	return false, nil
}

func TestAllocateFreeBase(t *testing.T) {
	t.Parallel()

	got, err := Allocate(context.Background(), "Hello World!", neverExists)
	require.NoError(t, err)
	assert.Equal(t, "hello-world", got)
}

func TestAllocateSuffixesOnCollision(t *testing.T) {
	t.Parallel()

	exists := func(_ context.Context, c string) (bool, error) {
		return c == "hello-world", nil
	}

	got, err := Allocate(context.Background(), "Hello World", exists)
	require.NoError(t, err)
	assert.Equal(t, "hello-world-1", got)
}

func TestAllocateEmptyInput(t *testing.T) {
	t.Parallel()

	got, err := Allocate(context.Background(), "", neverExists)
	require.NoError(t, err)
	assert.Equal(t, Placeholder, got)
}

func TestAllocateAgainstGrowingSet(t *testing.T) {
	t.Parallel()

	taken := map[string]bool{}
	exists := func(_ context.Context, c string) (bool, error) {
		return taken[c], nil
	}

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		got, err := Allocate(context.Background(), "Annual report", exists)
		require.NoError(t, err)
		require.False(t, seen[got], "allocated %q twice", got)
		seen[got] = true
		taken[got] = true
	}
}

// fakeStore mimics a table with a unique index on slug.
type fakeStore struct {
	mu    sync.Mutex
	slugs map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{slugs: map[string]bool{}}
}

func (s *fakeStore) exists(_ context.Context, c string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slugs[c], nil
}

func (s *fakeStore) insert(_ context.Context, sl string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slugs[sl] {
		return repository.ErrUniqueViolation
	}
	s.slugs[sl] = true
	return nil
}

func TestAllocateInsert(t *testing.T) {
	t.Parallel()

	store := newFakeStore()

	first, err := AllocateInsert(context.Background(), "My Post", store.exists, store.insert)
	require.NoError(t, err)
	assert.Equal(t, "my-post", first)

	second, err := AllocateInsert(context.Background(), "My Post", store.exists, store.insert)
	require.NoError(t, err)
	assert.Equal(t, "my-post-1", second)
}

// A predicate that always answers "free" paired with a store that always
// rejects reproduces the worst-case race; retries must stop at the cap.
func TestAllocateInsertExhaustsRetries(t *testing.T) {
	t.Parallel()

	insert := func(context.Context, string) error {
		return repository.ErrUniqueViolation
	}

	_, err := AllocateInsert(context.Background(), "doomed", neverExists, insert)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAllocateInsertConcurrent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()

	var wg sync.WaitGroup
	results := make([]string, 2)
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = AllocateInsert(context.Background(), "Summer Fair", store.exists, store.insert)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.NotEqual(t, results[0], results[1], "both calls must end up with distinct slugs")
	assert.Len(t, store.slugs, 2)
	for _, r := range results {
		assert.True(t, store.slugs[r], "result %q missing from store", r)
	}
}
