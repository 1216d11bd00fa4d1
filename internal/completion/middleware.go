package completion

import (
	"context"
	"log"
	"time"
)

// Middleware decorates a Client.
type Middleware func(Client) Client

// Chain applies middlewares left to right, so the first one is outermost.
func Chain(c Client, mws ...Middleware) Client {
	for i := len(mws) - 1; i >= 0; i-- {
		c = mws[i](c)
	}
	return c
}

// WithLogging logs provider, latency, token usage, and outcome of each call.
// There is deliberately no retry middleware: a network failure goes straight
// to the caller's fallback path.
func WithLogging() Middleware {
	return func(next Client) Client {
		return &logging{next: next}
	}
}

type logging struct {
	next Client
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) Complete(ctx context.Context, req Request) (Response, error) {
	start := time.Now()
	resp, err := l.next.Complete(ctx, req)
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		log.Printf("completion: provider=%s elapsed=%s err=%v", l.next.Name(), elapsed, err)
		return resp, err
	}
	if resp.Usage != nil {
		log.Printf("completion: provider=%s elapsed=%s tokens=%d", l.next.Name(), elapsed, resp.Usage.TotalTokens)
	} else {
		log.Printf("completion: provider=%s elapsed=%s", l.next.Name(), elapsed)
	}
	return resp, nil
}
