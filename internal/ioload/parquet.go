package ioload

import (
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// writeParquet writes rows as one Snappy-compressed Parquet file. The
// file schema comes from T's parquet struct tags.
func writeParquet[T any](path string, rows []T) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}

	pw, err := writer.NewParquetWriter(fw, new(T), 2)
	if err != nil {
		fw.Close()
		return fmt.Errorf("cannot create parquet writer for %s: %w", path, err)
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			fw.Close()
			return fmt.Errorf("cannot write row to %s: %w", path, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("cannot finalize %s: %w", path, err)
	}
	return fw.Close()
}
