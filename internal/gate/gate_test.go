package gate

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earth-explorer/internal/loader"
	"earth-explorer/internal/logger"
)

// event drives one scripted load: a progress report, or the final result.
type event struct {
	progress float32
	final    bool
	err      error
	ack      chan struct{}
}

// scriptedLoader blocks every Load until the test feeds it events.
type scriptedLoader struct {
	mu    sync.Mutex
	feeds map[string]chan event
}

func newScriptedLoader() *scriptedLoader {
	return &scriptedLoader{feeds: make(map[string]chan event)}
}

func (s *scriptedLoader) feed(uri string) chan event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.feeds[uri]
	if !ok {
		ch = make(chan event)
		s.feeds[uri] = ch
	}
	return ch
}

func (s *scriptedLoader) Load(ctx context.Context, uri string, progress loader.ProgressFunc) (*loader.Texture, error) {
	ch := s.feed(uri)
	for {
		select {
		case <-ctx.Done():
			return nil, &loader.LoadError{URI: uri, Err: ctx.Err()}
		case ev := <-ch:
			if !ev.final {
				progress(ev.progress)
				close(ev.ack)
				continue
			}
			if ev.err != nil {
				return nil, &loader.LoadError{URI: uri, Err: ev.err}
			}
			return loader.NewTexture(uri, image.NewRGBA(image.Rect(0, 0, 2, 1))), nil
		}
	}
}

func (s *scriptedLoader) report(t *testing.T, uri string, pct float32) {
	t.Helper()
	ack := make(chan struct{})
	select {
	case s.feed(uri) <- event{progress: pct, ack: ack}:
	case <-time.After(time.Second):
		t.Fatalf("load %s not listening", uri)
	}
	<-ack
}

func (s *scriptedLoader) finish(t *testing.T, uri string, err error) {
	t.Helper()
	select {
	case s.feed(uri) <- event{final: true, err: err}:
	case <-time.After(time.Second):
		t.Fatalf("load %s not listening", uri)
	}
}

func TestGateOpensOnceAfterSuccess(t *testing.T) {
	sl := newScriptedLoader()
	g := New(sl, logger.New(""))
	require.NoError(t, g.Start(context.Background(), "earth.jpg"))
	assert.Equal(t, Loading, g.State())

	var seen []float32
	for _, p := range []float32{0, 47, 100} {
		sl.report(t, "earth.jpg", p)
		seen = append(seen, g.Progress())
		// Full progress alone does not open the gate.
		assert.Equal(t, Loading, g.State())
		_, ok := g.Poll()
		assert.False(t, ok)
	}
	assert.Equal(t, []float32{0, 47, 100}, seen)

	sl.finish(t, "earth.jpg", nil)
	require.Eventually(t, g.Open, time.Second, time.Millisecond)

	textures, ok := g.Poll()
	require.True(t, ok)
	require.Contains(t, textures, "earth.jpg")
	assert.Equal(t, "earth.jpg", textures["earth.jpg"].Key())

	_, ok = g.Poll()
	assert.False(t, ok, "ready must be delivered exactly once")
	assert.Equal(t, float32(100), g.Progress())
	assert.NoError(t, g.Err())
}

func TestGateStaysClosedOnFailure(t *testing.T) {
	sl := newScriptedLoader()
	g := New(sl, logger.New(""))
	require.NoError(t, g.Start(context.Background(), "earth.jpg"))

	sl.report(t, "earth.jpg", 30)
	cause := errors.New("connection reset")
	sl.finish(t, "earth.jpg", cause)

	require.Eventually(t, func() bool { return g.State() == Failed }, time.Second, time.Millisecond)
	assert.False(t, g.Open())
	assert.True(t, errors.Is(g.Err(), cause))
	var le *loader.LoadError
	require.True(t, errors.As(g.Err(), &le))
	assert.Equal(t, "earth.jpg", le.URI)

	assert.Equal(t, float32(30), g.Progress())
	_, ok := g.Poll()
	assert.False(t, ok)
	assert.Equal(t, "failed", g.State().String())
}

func TestGateWaitsForEveryTexture(t *testing.T) {
	sl := newScriptedLoader()
	g := New(sl, nil)
	require.NoError(t, g.Start(context.Background(), "earth.jpg", "clouds.png", "earth.jpg"))

	sl.report(t, "earth.jpg", 50)
	assert.Equal(t, float32(25), g.Progress())

	sl.finish(t, "earth.jpg", nil)
	require.Eventually(t, func() bool { return g.Progress() == 50 }, time.Second, time.Millisecond)
	assert.Equal(t, Loading, g.State())

	sl.report(t, "clouds.png", 20)
	assert.Equal(t, float32(60), g.Progress())
	sl.finish(t, "clouds.png", nil)
	require.Eventually(t, g.Open, time.Second, time.Millisecond)

	textures, ok := g.Poll()
	require.True(t, ok)
	assert.Len(t, textures, 2)
}

func TestGateProgressNeverDecreases(t *testing.T) {
	sl := newScriptedLoader()
	g := New(sl, nil)
	require.NoError(t, g.Start(context.Background(), "earth.jpg"))

	sl.report(t, "earth.jpg", 60)
	assert.Equal(t, float32(60), g.Progress())
	sl.report(t, "earth.jpg", 40)
	assert.Equal(t, float32(60), g.Progress())
	sl.report(t, "earth.jpg", 250)
	assert.Equal(t, float32(100), g.Progress())
}

func TestGateCloseCancelsLoads(t *testing.T) {
	sl := newScriptedLoader()
	g := New(sl, nil)
	require.NoError(t, g.Start(context.Background(), "earth.jpg"))
	sl.report(t, "earth.jpg", 10)

	g.Close()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, g.Wait(ctx))

	// The cancelled load's error arrives after Close and is dropped.
	assert.Equal(t, Loading, g.State())
	assert.NoError(t, g.Err())
	_, ok := g.Poll()
	assert.False(t, ok)
	g.Close()
}

func TestGateWithNothingToLoad(t *testing.T) {
	g := New(newScriptedLoader(), nil)
	require.NoError(t, g.Start(context.Background()))
	assert.True(t, g.Open())
	textures, ok := g.Poll()
	assert.True(t, ok)
	assert.Empty(t, textures)
	assert.Equal(t, float32(100), g.Progress())

	assert.ErrorIs(t, g.Start(context.Background(), "x"), ErrStarted)
}
