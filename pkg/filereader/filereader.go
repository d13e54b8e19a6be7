// Package filereader serializes access to a FileSource: a single worker
// goroutine drains a FIFO queue of read requests, guaranteeing that a
// virtual file is never decoded by more than one request at a time.
package filereader

import (
	"context"
	"sync"

	"github.com/WhileEndless/go-rangedecode/pkg/chunkmap"
	"github.com/WhileEndless/go-rangedecode/pkg/filesource"
)

type request struct {
	ctx   context.Context
	r     chunkmap.Range
	reply chan result
}

type result struct {
	data []byte
	err  error
}

// FileReader wraps a FileSource so that concurrent Read calls from
// multiple goroutines are serviced one at a time, in the order they
// were enqueued. This mirrors the single-producer-per-virtual-file rule
// random-access decoding requires: the underlying FileSource (and any
// Transformed decoder beneath it) is never driven by two Read calls at
// once.
type FileReader struct {
	source filesource.FileSource

	mu     sync.Mutex
	queue  []*request
	signal chan struct{}

	closeOnce sync.Once
	done      chan struct{}
}

// NewFileReader starts a worker goroutine servicing source and returns
// the FileReader fronting it. The worker runs until ctx is canceled.
func NewFileReader(ctx context.Context, source filesource.FileSource) *FileReader {
	fr := &FileReader{
		source: source,
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go fr.run(ctx)
	return fr
}

func (fr *FileReader) Size() uint64 {
	return fr.source.Size()
}

// Read enqueues a request for r and blocks until it has been serviced
// in FIFO order. If ctx is canceled before the request is serviced, Read
// returns ctx.Err() without disturbing the queue or any other pending
// request.
func (fr *FileReader) Read(ctx context.Context, r chunkmap.Range) ([]byte, error) {
	req := &request{ctx: ctx, r: r, reply: make(chan result, 1)}

	fr.mu.Lock()
	fr.queue = append(fr.queue, req)
	fr.mu.Unlock()

	select {
	case fr.signal <- struct{}{}:
	default:
	}

	select {
	case res := <-req.reply:
		return res.data, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-fr.done:
		return nil, context.Canceled
	}
}

func (fr *FileReader) run(ctx context.Context) {
	defer close(fr.done)
	for {
		req := fr.dequeue()
		if req == nil {
			select {
			case <-ctx.Done():
				return
			case <-fr.signal:
				continue
			}
		}

		if err := req.ctx.Err(); err != nil {
			req.reply <- result{err: err}
			continue
		}

		data, err := fr.source.Read(req.ctx, req.r)
		req.reply <- result{data: data, err: err}

		if ctx.Err() != nil {
			return
		}
	}
}

func (fr *FileReader) dequeue() *request {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	if len(fr.queue) == 0 {
		return nil
	}
	req := fr.queue[0]
	fr.queue = fr.queue[1:]
	return req
}
