// Package parallel contains the bounded worker loops used by training and evaluation.
package parallel

import "runtime"
import "sync"
import "sync/atomic"

import "github.com/klauspost/cpuid/v2"

// Threads returns the default number of workers: the logical core count
// reported by the CPU, or runtime.NumCPU when detection fails.
func Threads() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// ForEach executes body for every integer from 0 to length-1 on at most limit
// goroutines. It returns when every body has returned.
func ForEach(length, limit int, body func(i int)) {
	_ = ForEachErr(length, limit, func(i int) error {
		body(i)
		return nil
	})
}

// ForEachErr is ForEach for bodies that can fail. After the first error no
// new iterations are started, and that error is returned.
func ForEachErr(length, limit int, body func(i int) error) error {
	if limit <= 0 {
		limit = 1 // Default to 1 if limit is zero or negative
	}
	if length <= 0 {
		return nil // No iterations to perform
	}
	if limit > length {
		limit = length
	}

	var (
		next  atomic.Int64
		once  sync.Once
		first error
		wg    sync.WaitGroup
	)
	for w := 0; w < limit; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= length {
					return
				}
				if err := body(i); err != nil {
					once.Do(func() {
						first = err
						next.Store(int64(length))
					})
					return
				}
			}
		}()
	}
	wg.Wait()
	return first
}
