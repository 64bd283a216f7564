// Package extractortest provides a scripted extractor.Runner for tests of
// packages built on top of the gateway.
package extractortest

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/muratoffalex/ytsage/internal/extractor"
)

// Call is one recorded invocation.
type Call struct {
	Timeout time.Duration
	Name    string
	Args    []string
}

// Argv returns the name followed by the arguments.
func (c Call) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// Has reports whether arg was passed.
func (c Call) Has(arg string) bool {
	return slices.Contains(c.Args, arg)
}

// HandlerFunc answers a single invocation.
type HandlerFunc func(ctx context.Context, call Call) extractor.Result

// Runner records every call and answers with its handler. Without a
// handler every call succeeds with empty output.
type Runner struct {
	mu      sync.Mutex
	calls   []Call
	handler HandlerFunc
}

func NewRunner(handler HandlerFunc) *Runner {
	return &Runner{handler: handler}
}

func (r *Runner) Run(ctx context.Context, timeout time.Duration, name string, args []string) extractor.Result {
	call := Call{Timeout: timeout, Name: name, Args: slices.Clone(args)}

	r.mu.Lock()
	r.calls = append(r.calls, call)
	handler := r.handler
	r.mu.Unlock()

	if handler == nil {
		return extractor.Result{}
	}
	return handler(ctx, call)
}

func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Stdout answers every call with a successful result printing out.
func Stdout(out string) HandlerFunc {
	return func(context.Context, Call) extractor.Result {
		return extractor.Result{Stdout: out}
	}
}

// ByURL answers extraction calls with the document registered for their
// last argument. Unknown URLs fail the way yt-dlp does.
func ByURL(docs map[string]string) HandlerFunc {
	return func(_ context.Context, call Call) extractor.Result {
		if len(call.Args) == 0 {
			return extractor.Result{ExitCode: 2, Stderr: "Usage: yt-dlp [OPTIONS] URL [URL...]"}
		}
		doc, ok := docs[call.Args[len(call.Args)-1]]
		if !ok {
			return extractor.Result{ExitCode: 1, Stderr: "ERROR: Unsupported URL"}
		}
		return extractor.Result{Stdout: doc}
	}
}

var _ extractor.Runner = (*Runner)(nil)
