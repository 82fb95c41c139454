// Package datasets loads seed sequences for post-sample annealing from
// Parquet files, the interchange format the surrounding pipeline emits its
// candidate pools in.
package datasets

import (
	"context"

	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"
	"github.com/apache/arrow/go/v13/parquet/file"
	"github.com/apache/arrow/go/v13/parquet/pqarrow"

	"github.com/XiaoConstantine/stun-go/pkg/core"
	"github.com/XiaoConstantine/stun-go/pkg/errors"
)

// seedColumn is the expected column name: one comma-separated symbol string
// per row, e.g. "3,1,4,1,0,0".
const seedColumn = "sequence"

// LoadSeedSequences reads seed sequences from a Parquet file and pads each to
// the given capacity. Sequences longer than the capacity are rejected.
func LoadSeedSequences(ctx context.Context, path string, capacity int) ([]core.Sequence, error) {
	reader, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.ResourceNotFound, "failed to open parquet file"),
			errors.Fields{"path": path},
		)
	}
	defer reader.Close()

	arrowReader, err := pqarrow.NewFileReader(reader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "failed to create arrow reader")
	}

	schema, err := arrowReader.Schema()
	if err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "failed to read parquet schema")
	}
	indices := schema.FieldIndices(seedColumn)
	if len(indices) == 0 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "required column not found in parquet schema"),
			errors.Fields{"column": seedColumn, "path": path},
		)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "failed to read parquet table")
	}
	defer table.Release()

	column := table.Column(indices[0])
	seeds := make([]core.Sequence, 0, table.NumRows())
	for _, arr := range column.Data().Chunks() {
		chunk, ok := arr.(*array.String)
		if !ok {
			return nil, errors.WithFields(
				errors.New(errors.InvalidInput, "sequence column must be a string column"),
				errors.Fields{"column": seedColumn},
			)
		}
		for i := 0; i < chunk.Len(); i++ {
			seq, err := core.ParseSequence(chunk.Value(i), capacity)
			if err != nil {
				return nil, errors.WithFields(
					errors.Wrap(err, errors.InvalidInput, "failed to parse seed sequence"),
					errors.Fields{"row": len(seeds)},
				)
			}
			if len(seq) > capacity {
				return nil, errors.WithFields(
					errors.New(errors.InvalidInput, "seed sequence exceeds capacity"),
					errors.Fields{"row": len(seeds), "length": len(seq), "capacity": capacity},
				)
			}
			seeds = append(seeds, seq)
		}
	}

	if len(seeds) == 0 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "parquet file contains no seed sequences"),
			errors.Fields{"path": path},
		)
	}
	return seeds, nil
}
