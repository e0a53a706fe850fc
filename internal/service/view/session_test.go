package view

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langassist/internal/domain"
)

func okAssistant() *mockAssistant {
	return &mockAssistant{
		TranslateFunc:      func(context.Context, string) (string, error) { return "translated", nil },
		CorrectGrammarFunc: func(context.Context, string) (string, error) { return "corrected", nil },
		DefineWordFunc: func(context.Context, string) (*domain.WordMeaningResult, error) {
			return &domain.WordMeaningResult{Text: "defined"}, nil
		},
	}
}

func TestSession_ViewsAreIndependent(t *testing.T) {
	t.Parallel()

	s := newSession(uuid.New(), okAssistant(), newTestLogger())

	tr, err := s.View(domain.TaskTranslate)
	require.NoError(t, err)
	_, err = tr.Submit(context.Background(), "xin chào")
	require.NoError(t, err)

	snaps := s.Snapshots()
	require.Len(t, snaps, 3)
	assert.Equal(t, domain.StateSucceeded, snaps[0].State)
	assert.Equal(t, domain.StateIdle, snaps[1].State)
	assert.Equal(t, domain.StateIdle, snaps[2].State)
}

func TestSession_UnknownView(t *testing.T) {
	t.Parallel()

	s := newSession(uuid.New(), okAssistant(), newTestLogger())
	_, err := s.View(domain.TaskKind("summarize"))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSession_WatchReceivesTransitions(t *testing.T) {
	t.Parallel()

	s := newSession(uuid.New(), okAssistant(), newTestLogger())
	ch, cancel := s.Watch()
	defer cancel()

	c, _ := s.View(domain.TaskDefineWord)
	_, err := c.Submit(context.Background(), "benevolent")
	require.NoError(t, err)

	var got []domain.State
	for range 2 {
		select {
		case snap := <-ch:
			assert.Equal(t, domain.TaskDefineWord, snap.View)
			got = append(got, snap.State)
		case <-time.After(time.Second):
			t.Fatal("no snapshot received")
		}
	}
	assert.Equal(t, []domain.State{domain.StatePending, domain.StateSucceeded}, got)
}

func TestSession_CloseEndsWatchers(t *testing.T) {
	t.Parallel()

	s := newSession(uuid.New(), okAssistant(), newTestLogger())
	ch, cancel := s.Watch()
	assert.Equal(t, 1, s.Watchers())

	s.close()
	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, s.Watchers())

	cancel() // idempotent after close

	late, _ := s.Watch()
	_, open = <-late
	assert.False(t, open, "subscribing to a closed session yields a closed channel")
}

func TestHub_SlowWatcherDoesNotBlock(t *testing.T) {
	t.Parallel()

	h := newHub()
	_, cancel := h.subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range watcherBuffer * 3 {
			h.publish(Snapshot{})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full watcher")
	}
}

func TestHub_CancelUnsubscribes(t *testing.T) {
	t.Parallel()

	h := newHub()
	ch, cancel := h.subscribe()
	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, h.len())
}

func TestManager_CreateAndGet(t *testing.T) {
	t.Parallel()

	m := NewManager(newTestLogger(), okAssistant(), 10, time.Hour)
	s := m.Create()

	assert.Same(t, s, m.Get(s.ID))
	assert.Equal(t, 1, m.Len())
}

func TestManager_GetRestoresUnknownSession(t *testing.T) {
	t.Parallel()

	m := NewManager(newTestLogger(), okAssistant(), 10, time.Hour)
	id := uuid.New()

	s := m.Get(id)
	require.NotNil(t, s)
	assert.Equal(t, id, s.ID)
	assert.Equal(t, domain.StateIdle, s.Snapshots()[0].State)
	assert.Same(t, s, m.Get(id))
}

func TestManager_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	m := NewManager(newTestLogger(), okAssistant(), 2, time.Hour)
	first := m.Create()
	ch, _ := first.Watch()
	m.Create()
	m.Create()

	assert.Equal(t, 2, m.Len())
	_, open := <-ch
	assert.False(t, open, "evicted session must close its watchers")
}

func TestManager_ExpiredSessionIsRecreated(t *testing.T) {
	t.Parallel()

	m := NewManager(newTestLogger(), okAssistant(), 10, 20*time.Millisecond)
	s := m.Create()
	c, _ := s.View(domain.TaskTranslate)
	_, err := c.Submit(context.Background(), "xin chào")
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	restored := m.Get(s.ID)
	assert.NotSame(t, s, restored)
	assert.Equal(t, domain.StateIdle, restored.Snapshots()[0].State)
}
