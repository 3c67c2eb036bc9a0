package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/cmdlog/internal/document"
	"github.com/dshills/cmdlog/internal/logging"
	"github.com/dshills/cmdlog/internal/panel"
)

// Default limits for a Runtime.
const (
	DefaultTimeout   = 5 * time.Second
	DefaultCallLimit = 1_000_000
)

// Runtime is a Lua state bound to a document and its tracked history.
type Runtime struct {
	L *lua.LState

	doc     *document.Document
	tracked *panel.Tracked[document.Edit]
	log     *logging.Logger
	out     io.Writer

	timeout   time.Duration
	callLimit int64
	calls     int64

	closed bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithTimeout bounds each DoString/DoFile call. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) {
		r.timeout = d
	}
}

// WithCallLimit caps the number of history calls per run. Zero disables the limit.
func WithCallLimit(n int64) Option {
	return func(r *Runtime) {
		r.callLimit = n
	}
}

// WithOutput sets where print and history.show write. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.out = w
	}
}

// WithLogger sets the runtime logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runtime) {
		r.log = l
	}
}

// New creates a runtime operating on doc and tracked.
func New(doc *document.Document, tracked *panel.Tracked[document.Edit], opts ...Option) *Runtime {
	r := &Runtime{
		doc:       doc,
		tracked:   tracked,
		log:       logging.Null(),
		out:       os.Stdout,
		timeout:   DefaultTimeout,
		callLimit: DefaultCallLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithComponent("script")

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	removeLoaders(L)
	installPrint(L, r.out)
	r.L = L

	r.registerHistory()
	return r
}

// DoString executes a Lua chunk.
func (r *Runtime) DoString(code string) error {
	return r.run(func() error {
		return r.L.DoString(code)
	})
}

// DoFile executes a Lua file.
func (r *Runtime) DoFile(path string) error {
	return r.run(func() error {
		return r.L.DoFile(path)
	})
}

// Close releases the Lua state. Further runs return ErrClosed.
func (r *Runtime) Close() {
	if r.closed {
		return
	}
	r.L.Close()
	r.closed = true
}

// run executes fn with the call budget reset and the timeout applied.
func (r *Runtime) run(fn func() error) (err error) {
	if r.closed {
		return ErrClosed
	}
	r.calls = 0

	var ctx context.Context
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		r.L.SetContext(ctx)
		defer r.L.RemoveContext()
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
	}()

	err = fn()
	if err == nil {
		return nil
	}
	if ctx != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, r.timeout)
	}
	if r.callLimit > 0 && r.calls > r.callLimit {
		return fmt.Errorf("%w (%d)", ErrCallLimit, r.callLimit)
	}
	return err
}
