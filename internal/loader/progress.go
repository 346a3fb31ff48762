package loader

import (
	"context"
	"io"
)

// progressReader reports whole-percent steps of total while reading. It never reports
// 100 itself; the caller does that after the last byte, so 100 always means "all read".
type progressReader struct {
	ctx    context.Context
	r      io.Reader
	total  int64
	read   int64
	last   float32
	report ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.total > 0 && n > 0 {
		pct := float32(int64(100) * p.read / p.total)
		if pct > 99 {
			pct = 99
		}
		if pct > p.last {
			p.last = pct
			p.report(pct)
		}
	}
	return n, err
}
