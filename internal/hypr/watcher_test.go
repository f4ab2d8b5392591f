package hypr

import (
	"bufio"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompositor serves a single connection on a unix socket.
type fakeCompositor struct {
	path     string
	listener net.Listener
	conns    chan net.Conn
}

func newFakeCompositor(t *testing.T) *fakeCompositor {
	t.Helper()

	// Unix socket paths are length limited, keep the directory short.
	dir, err := os.MkdirTemp("", "hc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	path := filepath.Join(dir, ".socket2.sock")
	l, err := net.Listen("unix", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	fc := &fakeCompositor{path: path, listener: l, conns: make(chan net.Conn, 1)}
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		fc.conns <- conn
	}()
	return fc
}

func (fc *fakeCompositor) accept(t *testing.T) net.Conn {
	t.Helper()
	select {
	case conn := <-fc.conns:
		t.Cleanup(func() { _ = conn.Close() })
		return conn
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not connect")
		return nil
	}
}

func receive(t *testing.T, ch <-chan bool) bool {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("no signal received")
		return false
	}
}

func TestFullscreenWatcher_EmitsTransitions(t *testing.T) {
	fc := newFakeCompositor(t)

	w := NewFullscreenWatcher(fc.path, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	conn := fc.accept(t)

	cmd, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, SubscribeCommand, cmd)

	_, err = conn.Write([]byte("workspace>>1\nfullscreen>>1\nactivewindow>>kitty,~\nfullscreen>>0\nfullscreen>>1\n"))
	require.NoError(t, err)

	assert.True(t, receive(t, w.Signals()))
	assert.False(t, receive(t, w.Signals()))
	assert.True(t, receive(t, w.Signals()))

	select {
	case v := <-w.Signals():
		t.Fatalf("unexpected extra signal %v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFullscreenWatcher_SkipsOverlongLines(t *testing.T) {
	fc := newFakeCompositor(t)

	w := NewFullscreenWatcher(fc.path, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	conn := fc.accept(t)

	title := strings.Repeat("x", 70*1024)
	_, err := conn.Write([]byte("activewindow>>kitty," + title + "\nfullscreen>>1\n"))
	require.NoError(t, err)

	assert.True(t, receive(t, w.Signals()))
}

func TestFullscreenWatcher_EndsOnSocketClose(t *testing.T) {
	fc := newFakeCompositor(t)

	w := NewFullscreenWatcher(fc.path, nil)
	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()

	conn := fc.accept(t)
	_, err := conn.Write([]byte("fullscreen>>1\n"))
	require.NoError(t, err)
	assert.True(t, receive(t, w.Signals()))

	require.NoError(t, conn.Close())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after socket closed")
	}
}

func TestFullscreenWatcher_MissingSocketIsSilent(t *testing.T) {
	w := NewFullscreenWatcher(filepath.Join(t.TempDir(), "missing.sock"), nil)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher should give up immediately when the socket is absent")
	}

	select {
	case v := <-w.Signals():
		t.Fatalf("unexpected signal %v", v)
	default:
	}
}

func TestFullscreenWatcher_CancelClosesSocket(t *testing.T) {
	fc := newFakeCompositor(t)

	w := NewFullscreenWatcher(fc.path, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	fc.accept(t)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
