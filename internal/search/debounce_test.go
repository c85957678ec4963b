package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQuiet = 25 * time.Millisecond

func TestShortQueryIsSuppressed(t *testing.T) {
	d := NewDebouncer(testQuiet)
	for _, q := range []string{"", "a", " a ", "\t"} {
		start := time.Now()
		_, outcome := d.Submit(context.Background(), q)
		assert.Equal(t, Suppressed, outcome, "query %q", q)
		assert.Less(t, time.Since(start), testQuiet, "suppression must be immediate")
	}
}

func TestSettledQueryProceeds(t *testing.T) {
	d := NewDebouncer(testQuiet)
	q, outcome := d.Submit(context.Background(), "  laptop ")
	require.Equal(t, Proceed, outcome)
	assert.Equal(t, "laptop", q)
}

func TestNewerKeystrokeSupersedesPending(t *testing.T) {
	d := NewDebouncer(testQuiet)

	var wg sync.WaitGroup
	var firstOutcome Outcome
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstOutcome = d.Submit(context.Background(), "ab")
	}()

	time.Sleep(testQuiet / 4)
	q, outcome := d.Submit(context.Background(), "abc")
	wg.Wait()

	assert.Equal(t, Superseded, firstOutcome)
	require.Equal(t, Proceed, outcome, "latest query must win")
	assert.Equal(t, "abc", q)
}

func TestShortQueryCancelsPending(t *testing.T) {
	d := NewDebouncer(testQuiet)

	var wg sync.WaitGroup
	var pending Outcome
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, pending = d.Submit(context.Background(), "ab")
	}()

	time.Sleep(testQuiet / 4)
	_, outcome := d.Submit(context.Background(), "a")
	wg.Wait()

	assert.Equal(t, Suppressed, outcome)
	assert.Equal(t, Superseded, pending, "clearing the field must cancel the scheduled lookup")
}

func TestContextCancellation(t *testing.T) {
	d := NewDebouncer(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()
	start := time.Now()
	_, outcome := d.Submit(ctx, "ab")
	assert.Equal(t, Superseded, outcome)
	assert.Less(t, time.Since(start), time.Second)
}

func TestMultiByteQueryCountsCharacters(t *testing.T) {
	d := NewDebouncer(testQuiet)

	_, outcome := d.Submit(context.Background(), "é")
	assert.Equal(t, Suppressed, outcome, "one character is below the minimum regardless of byte width")

	q, outcome := d.Submit(context.Background(), "éé")
	require.Equal(t, Proceed, outcome)
	assert.Equal(t, "éé", q)
}

func TestRegistryIsPerKey(t *testing.T) {
	r := NewRegistry(testQuiet)
	a := r.Get("sess-a")
	b := r.Get("sess-b")
	assert.NotSame(t, a, b)
	assert.Same(t, a, r.Get("sess-a"))
}

func TestRegistryEvictsIdleSessions(t *testing.T) {
	r := NewRegistry(testQuiet)
	clock := time.Now()
	r.now = func() time.Time { return clock }

	stale := r.Get("sess-stale")
	r.Get("sess-live")
	require.Equal(t, 2, r.Len())

	clock = clock.Add(registryTTL / 2)
	r.Get("sess-live") // keeps this one fresh

	clock = clock.Add(registryTTL/2 + time.Minute)
	r.Get("sess-live")
	assert.Equal(t, 1, r.Len(), "sess-stale idled past the TTL")

	assert.NotSame(t, stale, r.Get("sess-stale"), "an evicted key starts over")
}
