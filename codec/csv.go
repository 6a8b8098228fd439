package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/simon-lentz/weft/immutable"
)

// csvCodec is a thin wrapper over encoding/csv: a document is an Array
// of Objects, one per data row, keyed by the header row's column names.
// Per spec.md §1, CSV codec internals (quoting dialects, delimiter
// sniffing) are out of scope beyond this minimal boundary.
type csvCodec struct{}

func (csvCodec) MediaTypes() []string { return []string{"text/csv", "application/csv"} }

func (csvCodec) Read(data []byte, mt MediaType) (immutable.Value, error) {
	r := csv.NewReader(bytes.NewReader(data))
	if sep, ok := mt.Param("separator"); ok && len(sep) == 1 {
		r.Comma = rune(sep[0])
	}
	records, err := r.ReadAll()
	if err != nil {
		return immutable.Value{}, fmt.Errorf("codec: invalid csv: %w", err)
	}
	if len(records) == 0 {
		return immutable.NewArr(immutable.NewArray(nil)), nil
	}
	header := records[0]
	rows := make([]immutable.Value, 0, len(records)-1)
	for _, rec := range records[1:] {
		b := immutable.NewObjectBuilder()
		for i, col := range header {
			if i < len(rec) {
				b.SetValue(col, immutable.NewStr(rec[i]))
			}
		}
		rows = append(rows, immutable.NewObj(b.Build()))
	}
	return immutable.NewArr(immutable.NewArray(rows)), nil
}

func (csvCodec) Write(v immutable.Value, mt MediaType) ([]byte, error) {
	a, ok := v.Arr()
	if !ok {
		return nil, fmt.Errorf("codec: csv.write expects an Array of Objects, got %s", v.PrettyName())
	}
	rows, err := a.Values()
	if err != nil {
		return nil, err
	}
	var header []string
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if sep, ok := mt.Param("separator"); ok && len(sep) == 1 {
		w.Comma = rune(sep[0])
	}
	for i, row := range rows {
		o, ok := row.Obj()
		if !ok {
			return nil, fmt.Errorf("codec: csv.write expects an Array of Objects, element %d is %s", i, row.PrettyName())
		}
		if i == 0 {
			header = o.VisibleKeys()
			if err := w.Write(header); err != nil {
				return nil, err
			}
		}
		rec := make([]string, len(header))
		for j, col := range header {
			val, ok, err := o.GetVisible(col)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			s, ok := val.Str()
			if !ok {
				return nil, fmt.Errorf("codec: csv.write expects string-valued columns, %q is %s", col, val.PrettyName())
			}
			rec[j] = s
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
