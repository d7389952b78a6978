package columnar

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Row is one decoded table row keyed by column name. Null cells are nil.
type Row map[string]any

// DecodeError reports a corrupt or truncated columnar buffer. It is a
// distinct type so callers can tell "couldn't decode it" from "couldn't
// fetch it".
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode columnar table: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decoder decodes Arrow IPC file buffers into row-oriented records. The
// zero value is ready to use: setup happens lazily on first use, exactly
// once, and concurrent first callers all observe the completed setup.
type Decoder struct {
	initOnce sync.Once
	alloc    memory.Allocator
}

// defaultDecoder backs the package-level DecodeTable, giving the process a
// single shared initialization.
var defaultDecoder Decoder

// DecodeTable decodes buf with the process-wide decoder.
func DecodeTable(buf []byte) ([]Row, error) {
	return defaultDecoder.DecodeTable(buf)
}

func (d *Decoder) ensureInit() {
	d.initOnce.Do(func() {
		d.alloc = memory.NewGoAllocator()
	})
}

// DecodeTable materializes every row of an Arrow IPC file buffer. Row order
// matches on-disk record and row order; nothing is sorted.
func (d *Decoder) DecodeTable(buf []byte) ([]Row, error) {
	d.ensureInit()

	r, err := ipc.NewFileReader(bytes.NewReader(buf), ipc.WithAllocator(d.alloc))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	defer r.Close()

	fields := r.Schema().Fields()
	rows := make([]Row, 0)

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &DecodeError{Err: err}
		}

		for i := 0; i < int(rec.NumRows()); i++ {
			row := make(Row, len(fields))
			for j := range fields {
				row[fields[j].Name] = cellValue(rec.Column(j), i)
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func cellValue(col arrow.Array, i int) any {
	if col.IsNull(i) {
		return nil
	}
	switch c := col.(type) {
	case *array.String:
		return c.Value(i)
	case *array.LargeString:
		return c.Value(i)
	case *array.Int64:
		return c.Value(i)
	case *array.Int32:
		return c.Value(i)
	case *array.Int16:
		return c.Value(i)
	case *array.Float64:
		return c.Value(i)
	case *array.Float32:
		return c.Value(i)
	case *array.Boolean:
		return c.Value(i)
	default:
		return c.ValueStr(i)
	}
}
