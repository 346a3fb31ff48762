// Package gate holds the scene back until every texture it needs has loaded.
//
// Loads run on their own goroutines; the render thread only reads the gate's state
// through Progress, State and Poll. A failed load leaves the gate closed for good:
// there is no partial scene and no fallback, only the error from Err.
package gate

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"earth-explorer/internal/loader"
	"earth-explorer/internal/logger"
)

// State is the gate's lifecycle.
type State int

const (
	Loading State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// ErrStarted is returned when Start is called twice on the same gate.
var ErrStarted = errors.New("gate: already started")

// Loader is the texture source the gate waits on.
type Loader interface {
	Load(ctx context.Context, uri string, progress loader.ProgressFunc) (*loader.Texture, error)
}

// Gate tracks one set of loads for one scene instance. Remounting a scene means a new Gate.
type Gate struct {
	loader Loader
	log    *logger.Logger

	mu        sync.Mutex
	started   bool
	closed    bool
	uris      []string
	progress  map[string]float32
	textures  map[string]*loader.Texture
	state     State
	err       error
	reported  float32
	delivered bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// New returns an unstarted gate.
func New(l Loader, log *logger.Logger) *Gate {
	return &Gate{
		loader:   l,
		log:      log,
		progress: make(map[string]float32),
		textures: make(map[string]*loader.Texture),
		done:     make(chan struct{}),
	}
}

// Start begins loading every uri concurrently. With no uris the gate is ready at once.
// The first failure cancels the remaining loads.
func (g *Gate) Start(ctx context.Context, uris ...string) error {
	g.mu.Lock()
	if g.started {
		g.mu.Unlock()
		return ErrStarted
	}
	g.started = true
	for _, u := range uris {
		if _, dup := g.progress[u]; dup {
			continue
		}
		g.progress[u] = 0
		g.uris = append(g.uris, u)
	}
	if len(g.uris) == 0 {
		g.state = Ready
		g.cancel = func() {}
		close(g.done)
		g.mu.Unlock()
		return nil
	}
	ctx, g.cancel = context.WithCancel(ctx)
	g.mu.Unlock()

	g.log.Logf("gate: loading %d texture(s)", len(g.uris))
	eg, egctx := errgroup.WithContext(ctx)
	for _, uri := range g.uris {
		eg.Go(func() error {
			tex, err := g.loader.Load(egctx, uri, func(p float32) { g.onProgress(uri, p) })
			if err != nil {
				g.fail(err)
				return err
			}
			g.resolve(uri, tex)
			return nil
		})
	}
	go func() {
		_ = eg.Wait()
		close(g.done)
	}()
	return nil
}

func (g *Gate) onProgress(uri string, p float32) {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || g.state != Loading {
		return
	}
	if p > g.progress[uri] {
		g.progress[uri] = p
	}
}

func (g *Gate) fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || g.state != Loading {
		return
	}
	g.state = Failed
	g.err = err
	g.log.Errorf("gate: %v", err)
}

func (g *Gate) resolve(uri string, tex *loader.Texture) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || g.state != Loading {
		return
	}
	g.progress[uri] = 100
	g.textures[uri] = tex
	if len(g.textures) == len(g.uris) {
		g.state = Ready
		g.log.Logf("gate: all %d texture(s) ready", len(g.uris))
	}
}

// Progress returns the mean percentage across all loads. It never decreases.
func (g *Gate) Progress() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Ready {
		g.reported = 100
		return g.reported
	}
	if len(g.uris) == 0 {
		return g.reported
	}
	var sum float32
	for _, p := range g.progress {
		sum += p
	}
	if mean := sum / float32(len(g.uris)); mean > g.reported {
		g.reported = mean
	}
	return g.reported
}

// State returns the current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Open reports whether every load succeeded.
func (g *Gate) Open() bool {
	return g.State() == Ready
}

// Err returns the failure that closed the gate, or nil.
func (g *Gate) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

// Poll returns the loaded textures, keyed by uri, the first time it is called after the
// gate became ready. Every other call returns false.
func (g *Gate) Poll() (map[string]*loader.Texture, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || g.state != Ready || g.delivered {
		return nil, false
	}
	g.delivered = true
	out := make(map[string]*loader.Texture, len(g.textures))
	for k, v := range g.textures {
		out[k] = v
	}
	return out, true
}

// Close cancels outstanding loads. Nothing a load reports after Close has any effect.
func (g *Gate) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	cancel := g.cancel
	g.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Wait blocks until every started load has returned, or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	started := g.started
	g.mu.Unlock()
	if !started {
		return nil
	}
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
