package printer

import (
	"bytes"
	"io"
)

// DeferredWriter buffers writes until Flush so callers can guarantee
// all-or-nothing output: flush on success, discard on failure.
type DeferredWriter struct {
	buff   bytes.Buffer
	writer io.Writer
}

func NewDeferedWriter(w io.Writer) *DeferredWriter {
	return &DeferredWriter{
		writer: w,
	}
}

func (dw *DeferredWriter) Write(bytes []byte) (int, error) {
	return dw.buff.Write(bytes)
}

// Flush forwards everything buffered so far to the underlying writer.
func (dw *DeferredWriter) Flush() error {
	_, err := dw.buff.WriteTo(dw.writer)
	return err
}

// Discard drops buffered output without writing it.
func (dw *DeferredWriter) Discard() {
	dw.buff.Reset()
}
