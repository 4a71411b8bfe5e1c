package preferences

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)
	_, err = ParseTheme("sepia")
	assert.Error(t, err)
	assert.Equal(t, ThemeLight, ThemeDark.Opposite())
	assert.Equal(t, ThemeDark, ThemeLight.Opposite())
}

func TestServiceDefaultsAndToggle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), "")
	defer func() { assert.NoError(t, svc.Close()) }()

	th, err := svc.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, th)

	next, err := svc.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, next)

	th, _ = svc.Theme(ctx)
	assert.Equal(t, ThemeDark, th)

	assert.Error(t, svc.SetTheme(ctx, "neon"))
}

func TestConcurrentTogglesAlternate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), ThemeLight)
	defer func() { assert.NoError(t, svc.Close()) }()

	const n = 40
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = map[Theme]int{}
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			th, err := svc.Toggle(ctx)
			assert.NoError(t, err)
			mu.Lock()
			results[th]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, n/2, results[ThemeDark])
	assert.Equal(t, n/2, results[ThemeLight])
	th, err := svc.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, th)
}

func TestServiceCorruptValueFallsBack(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeyTheme, "???"))
	svc := NewService(store, ThemeDark)
	defer func() { _ = svc.Close() }()
	th, err := svc.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)
}

func TestSubscribeReceivesChanges(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), ThemeLight)
	sub := svc.Subscribe()

	require.NoError(t, svc.SetTheme(ctx, ThemeLight)) // unchanged, no event
	require.NoError(t, svc.SetTheme(ctx, ThemeDark))

	select {
	case c := <-sub:
		assert.Equal(t, Change{Previous: ThemeLight, Theme: ThemeDark}, c)
	case <-time.After(time.Second):
		t.Fatal("no change delivered")
	}
	svc.Unsubscribe(sub)
	_, ok := <-sub
	assert.False(t, ok)
	require.NoError(t, svc.Close())
}

func TestWatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := NewService(NewMemoryStore(), ThemeLight)
	got := make(chan Change, 1)
	done := svc.Watch(ctx, func(c Change) { got <- c })

	_, err := svc.Toggle(context.Background())
	require.NoError(t, err)
	select {
	case c := <-got:
		assert.Equal(t, ThemeDark, c.Theme)
	case <-time.After(time.Second):
		t.Fatal("watcher not called")
	}

	cancel()
	<-done
	require.NoError(t, svc.Close())
}

func TestWatchStopsOnClose(t *testing.T) {
	svc := NewService(NewMemoryStore(), ThemeLight)
	done := svc.Watch(context.Background(), func(Change) {})
	require.NoError(t, svc.Close())
	<-done

	// Subscriptions after close are already closed.
	_, ok := <-svc.Subscribe()
	assert.False(t, ok)
}

type failingStore struct{ MemoryStore }

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}

func TestServiceStoreError(t *testing.T) {
	svc := NewService(&failingStore{}, ThemeLight)
	_, err := svc.Theme(context.Background())
	assert.Error(t, err)
	_, err = svc.Toggle(context.Background())
	assert.Error(t, err)
}
