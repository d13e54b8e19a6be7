package filesource

import (
	"context"
	"os"

	"github.com/WhileEndless/go-rangedecode/pkg/chunkmap"
	"github.com/WhileEndless/go-rangedecode/pkg/rangeerr"
)

// OSFile is the "host file" adapter: a FileSource backed by an
// *os.File, sized once at construction and read with ReadAt.
type OSFile struct {
	f    *os.File
	size uint64
}

// NewOSFile stats f and wraps it as a FileSource.
func NewOSFile(f *os.File) (*OSFile, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, rangeerr.Wrap("failed to stat file", "NewOSFile", err)
	}
	return &OSFile{f: f, size: uint64(info.Size())}, nil
}

func (o *OSFile) Size() uint64 {
	return o.size
}

func (o *OSFile) Read(ctx context.Context, r chunkmap.Range) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.End > o.size || r.Start > r.End {
		return nil, rangeerr.New(rangeerr.OutOfCoverage,
			"range exceeds file bounds", "OSFile.Read")
	}
	buf := make([]byte, r.Len())
	if _, err := o.f.ReadAt(buf, int64(r.Start)); err != nil {
		return nil, rangeerr.Wrap("failed to read file range", "OSFile.Read", err)
	}
	return buf, nil
}
