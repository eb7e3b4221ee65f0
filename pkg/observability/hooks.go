// Package observability lets the binary observe what the libraries do
// without the libraries depending on a logging or metrics backend.
//
// Three hook sets cover the events worth watching: tree loads and
// mutations ([TreeHooks]), render cache traffic ([CacheHooks]) and HTTP
// requests ([HTTPHooks]). Each starts as a no-op. The CLI swaps in a
// charmbracelet/log implementation under --verbose:
//
//	observability.SetTreeHooks(hooks)
//	defer observability.Reset()
//
// Libraries fetch the current hooks at the call site:
//
//	err := tree.Delete(id)
//	observability.Tree().OnMutation(observability.OpDelete, id, err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Op names a tree mutation reported through [TreeHooks.OnMutation].
type Op string

// Tree mutations.
const (
	OpToggle      Op = "toggle"
	OpExpandAll   Op = "expand_all"
	OpCollapseAll Op = "collapse_all"
	OpEditSummary Op = "edit_summary"
	OpEditLabel   Op = "edit_label"
	OpDelete      Op = "delete"
	OpSelect      Op = "select"
)

// TreeHooks receives events from a mindmap session. Tree operations are
// synchronous and never block, so these hooks take no context.
type TreeHooks interface {
	// OnLoad records a document being loaded into a session.
	OnLoad(source string, nodeCount int, err error)

	// OnMutation records a mutation requested by the presentation layer.
	OnMutation(op Op, nodeID string, err error)

	// OnExport records a serialization of the current tree.
	OnExport(nodeCount int)
}

// CacheHooks receives events from render cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int) // size in bytes
}

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// NoopTreeHooks ignores every event. Embed it to implement only some methods.
type NoopTreeHooks struct{}

func (NoopTreeHooks) OnLoad(string, int, error)     {}
func (NoopTreeHooks) OnMutation(Op, string, error) {}
func (NoopTreeHooks) OnExport(int)                 {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds one registered hook set. Registration is expected at startup
// but is safe at any time.
type slot[T any] struct {
	v    atomic.Pointer[T]
	noop T
}

func (s *slot[T]) get() T {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return s.noop
}

func (s *slot[T]) set(h T) { s.v.Store(&h) }

func (s *slot[T]) reset() { s.v.Store(nil) }

var (
	treeSlot  = slot[TreeHooks]{noop: NoopTreeHooks{}}
	cacheSlot = slot[CacheHooks]{noop: NoopCacheHooks{}}
	httpSlot  = slot[HTTPHooks]{noop: NoopHTTPHooks{}}
)

// SetTreeHooks registers h for tree events. A nil h is ignored.
func SetTreeHooks(h TreeHooks) {
	if h != nil {
		treeSlot.set(h)
	}
}

// SetCacheHooks registers h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetHTTPHooks registers h for HTTP events. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

func Tree() TreeHooks   { return treeSlot.get() }
func Cache() CacheHooks { return cacheSlot.get() }
func HTTP() HTTPHooks   { return httpSlot.get() }

// Reset restores the no-op hooks. Tests that register hooks should defer it.
func Reset() {
	treeSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
