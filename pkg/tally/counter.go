package tally

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jdhollis/logtally/models"
)

// Extractor derives the counting key from one input line. Implementations
// must be pure: no shared state, and the same key for the same line every
// time, so that partitioning the input cannot change the result.
type Extractor func(line string) (string, error)

// Options configures a count run.
type Options struct {
	Workers int                    // extraction workers; <= 1 runs sequentially
	Policy  models.MalformedPolicy // what to do with lines that fail extraction
}

// Result is the outcome of a count run.
type Result struct {
	Table     *FrequencyTable
	Processed int // lines that produced a key
	Malformed int // lines skipped under PolicySkip
}

// Count builds a frequency table over lines using extract.
//
// With more than one worker the input is split into contiguous partitions of
// ceil(len/workers) lines. Each worker accumulates a private partial table;
// after every worker has reported, a single owner merges the partials. The
// final table is identical to a sequential run for any worker count.
func Count(lines []string, extract Extractor, opts Options) (*Result, error) {
	if extract == nil {
		return nil, errors.New("nil extractor")
	}
	if opts.Workers <= 1 || len(lines) < 2 {
		return countPartition(lines, 0, extract, opts.Policy)
	}
	return countParallel(lines, extract, opts)
}

// countPartition is the sequential core: one worker's pass over one
// partition. offset is the absolute index of the partition's first line.
func countPartition(lines []string, offset int, extract Extractor, policy models.MalformedPolicy) (*Result, error) {
	res := &Result{Table: NewFrequencyTable()}

	for i, line := range lines {
		pos := offset + i
		key, err := extract(line)
		if err != nil {
			if policy == models.PolicyAbort {
				return nil, &MalformedRecordError{Line: pos + 1, Err: err}
			}
			res.Malformed++
			continue
		}
		res.Table.Observe(key, pos)
		res.Processed++
	}

	return res, nil
}

type partitionResult struct {
	index int
	res   *Result
	err   error
}

func countParallel(lines []string, extract Extractor, opts Options) (*Result, error) {
	workers := opts.Workers
	if workers > len(lines) {
		workers = len(lines)
	}

	// Contiguous partitions of ceil(n/workers) lines; the last one may come
	// up short.
	step := (len(lines) + workers - 1) / workers

	var wg sync.WaitGroup
	results := make(chan partitionResult, workers)

	launched := 0
	for w := 0; w < workers; w++ {
		start := w * step
		if start >= len(lines) {
			break
		}
		end := start + step
		if end > len(lines) {
			end = len(lines)
		}

		wg.Add(1)
		launched++
		go func(index, start, end int) {
			defer wg.Done()
			defer func() {
				// A panicking extractor must not silently drop a partition.
				if cause := recover(); cause != nil {
					results <- partitionResult{index: index, err: &WorkerFailureError{Worker: index, Cause: cause}}
				}
			}()

			res, err := countPartition(lines[start:end], start, extract, opts.Policy)
			results <- partitionResult{index: index, res: res, err: err}
		}(w, start, end)
	}

	wg.Wait()
	close(results)

	partials := make([]*Result, launched)
	received := 0
	var runErr error
	for pr := range results {
		received++
		if pr.err != nil {
			// A worker failure outranks a malformed-record abort: it means
			// results are missing, not merely rejected.
			var failure *WorkerFailureError
			if errors.As(pr.err, &failure) || runErr == nil {
				runErr = pr.err
			}
			continue
		}
		partials[pr.index] = pr.res
	}
	if runErr != nil {
		return nil, runErr
	}
	if received != launched {
		return nil, &WorkerFailureError{Worker: -1, Cause: fmt.Sprintf("expected %d partition results, got %d", launched, received)}
	}

	// Single-owner merge, in partition order.
	final := &Result{Table: NewFrequencyTable()}
	for _, part := range partials {
		final.Table.Merge(part.Table)
		final.Processed += part.Processed
		final.Malformed += part.Malformed
	}

	return final, nil
}
