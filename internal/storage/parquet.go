package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"
	"github.com/zakazai/ulin-lite/internal/types"
)

// parquetRecord is one row of a parquet snapshot. The values travel as a
// JSON array so a single record schema covers every table shape.
type parquetRecord struct {
	Table   string `parquet:"name=table, type=BYTE_ARRAY, convertedtype=UTF8"`
	RowJSON string `parquet:"name=row_json, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// ExportParquet writes one parquet file per table under dir. The export is a
// read-only snapshot for analytics tooling; the JSON document remains the
// store of record.
func ExportParquet(c *Catalog, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	for _, name := range c.TableNames() {
		if err := writeParquetTable(c.Tables[name], dir); err != nil {
			return fmt.Errorf("export table %s: %w", name, err)
		}
	}
	return nil
}

func writeParquetTable(t *Table, dir string) error {
	path := filepath.Join(dir, fmt.Sprintf("%s.parquet", t.Name))
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(parquetRecord), 4)
	if err != nil {
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range t.Rows {
		data, err := json.Marshal(row)
		if err != nil {
			return err
		}
		rec := &parquetRecord{Table: t.Name, RowJSON: string(data)}
		if err := pw.Write(rec); err != nil {
			return err
		}
	}
	return pw.WriteStop()
}

// ReadParquetTable reads the rows of one exported table back. A missing file
// yields an empty row set.
func ReadParquetTable(dir, table string) ([]Row, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s.parquet", table))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return []Row{}, nil
	}

	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(parquetRecord), 4)
	if err != nil {
		return nil, fmt.Errorf("create parquet reader: %w", err)
	}
	defer pr.ReadStop()

	numRows := int(pr.GetNumRows())
	if numRows == 0 {
		return []Row{}, nil
	}

	records := make([]parquetRecord, numRows)
	if err := pr.Read(&records); err != nil {
		return nil, fmt.Errorf("read parquet rows: %w", err)
	}

	rows := make([]Row, 0, numRows)
	for _, rec := range records {
		var row Row
		if err := json.Unmarshal([]byte(rec.RowJSON), &row); err != nil {
			return nil, &types.FormatError{Path: path, Err: err}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
