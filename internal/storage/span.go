package storage

import "fmt"

// DefaultChunkSize is the number of rows sent per bulk write.
const DefaultChunkSize = 1000

// Span is a half-open index range [From, To) into a collection.
type Span struct {
	From int
	To   int
}

// SplitSpans splits total records into consecutive spans of at most size.
func SplitSpans(total, size int) ([]Span, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be greater than zero")
	}
	if total < 0 {
		return nil, fmt.Errorf("total must not be negative")
	}

	spans := make([]Span, 0, (total+size-1)/size)
	for start := 0; start < total; start += size {
		end := start + size
		if end > total {
			end = total
		}
		spans = append(spans, Span{From: start, To: end})
	}
	return spans, nil
}

// PutChunked calls put for every chunk of records, stopping at the first error.
func PutChunked[T any](records []T, size int, put func([]T) error) error {
	spans, err := SplitSpans(len(records), size)
	if err != nil {
		return err
	}
	for _, span := range spans {
		if err := put(records[span.From:span.To]); err != nil {
			return err
		}
	}
	return nil
}
