package intake

import "io"

// progressReader forwards reads while reporting percent progress.
// Reported values never decrease and are capped at 100.
type progressReader struct {
	reader io.Reader
	total  int64
	read   int64
	last   int
	report func(percent int)
}

func newProgressReader(r io.Reader, total int64, report func(percent int)) *progressReader {
	return &progressReader{
		reader: r,
		total:  total,
		last:   -1,
		report: report,
	}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 {
		p.read += int64(n)
		p.emit()
	}
	return n, err
}

func (p *progressReader) emit() {
	if p.report == nil || p.total <= 0 {
		return
	}

	percent := int(p.read * 100 / p.total)
	if percent > 100 {
		percent = 100
	}
	if percent > p.last {
		p.last = percent
		p.report(percent)
	}
}

// finish forces a final 100 report if it has not been emitted yet.
func (p *progressReader) finish() {
	if p.report != nil && p.last < 100 {
		p.last = 100
		p.report(100)
	}
}
