package ocr

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// RecognizePages runs the engine over every page image using a fixed pool of
// workers and returns the per-page texts in page order. The first page error
// encountered is returned; remaining pages are still drained so workers exit.
func RecognizePages(ctx context.Context, engine Engine, pages [][]byte, workers int) ([]string, error) {
	if len(pages) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(pages) {
		workers = len(pages)
	}

	type job struct {
		index int
		image []byte
	}
	type pageResult struct {
		index int
		text  string
		err   error
	}

	jobs := make(chan job)
	results := make(chan pageResult, len(pages))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				text, err := engine.Recognize(ctx, j.image)
				results <- pageResult{index: j.index, text: text, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, p := range pages {
			select {
			case jobs <- job{index: i, image: p}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	texts := make([]string, len(pages))
	var firstErr error
	n := 0
	for r := range results {
		n++
		if r.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("page %d: %w", r.index+1, r.err)
		}
		texts[r.index] = r.text
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil && n < len(pages) {
		return nil, err
	}
	return texts, nil
}

// JoinPages joins per-page texts the way the upstream pipeline does: one
// newline between pages, outer whitespace trimmed.
func JoinPages(texts []string) string {
	return strings.TrimSpace(strings.Join(texts, "\n"))
}
