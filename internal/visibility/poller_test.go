package visibility

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoller_EmptyChannel(t *testing.T) {
	ch := make(chan bool, 4)
	r := &recorder{}
	h := NewHandle(r)
	p := NewPoller(ch, h)

	assert.False(t, p.Tick())
	assert.Empty(t, r.calls)
}

func TestPoller_OneSignalPerTickInOrder(t *testing.T) {
	ch := make(chan bool, 4)
	r := &recorder{}
	h := NewHandle(r)
	p := NewPoller(ch, h)

	ch <- true
	ch <- false
	ch <- true

	require.True(t, p.Tick())
	assert.Equal(t, []bool{false}, r.calls)
	assert.Len(t, ch, 2, "remaining signals stay queued")

	require.True(t, p.Tick())
	require.True(t, p.Tick())
	assert.Equal(t, []bool{false, true, false}, r.calls)

	assert.False(t, p.Tick())
	assert.True(t, h.State().Fullscreen)
}

func TestPoller_ClosedChannel(t *testing.T) {
	ch := make(chan bool)
	close(ch)

	r := &recorder{}
	p := NewPoller(ch, NewHandle(r))

	assert.False(t, p.Tick())
	assert.Empty(t, r.calls)
}

func TestPoller_DetachedWindowIsNoop(t *testing.T) {
	ch := make(chan bool, 1)
	r := &recorder{}
	h := NewHandle(r)
	p := NewPoller(ch, h)

	h.Detach()
	ch <- true

	assert.NotPanics(t, func() { assert.True(t, p.Tick()) })
	assert.Empty(t, r.calls)
}

func TestPoller_CollectedHandleIsNoop(t *testing.T) {
	ch := make(chan bool, 1)
	r := &recorder{}

	p := func() *Poller {
		return NewPoller(ch, NewHandle(r))
	}()

	// The handle is unreachable once the closure returns.
	for i := 0; i < 5 && p.Alive(); i++ {
		runtime.GC()
	}
	if p.Alive() {
		t.Skip("handle not collected by the runtime")
	}

	ch <- true
	assert.NotPanics(t, func() { assert.True(t, p.Tick()) })
	assert.Empty(t, r.calls)
}
