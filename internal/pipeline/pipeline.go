package pipeline

import (
	"context"
	"runtime"
	"sync"

	"protgroup/core/annotate"
	"protgroup/core/fasta"
	"protgroup/core/matcher"
)

// Annotate is the parallel counterpart of annotate.Annotate: one
// matcher shared read-only across workers, proteins scanned
// concurrently, matches reassembled in database order. Threads <= 0
// means all CPUs; Threads == 1 short-circuits to the serial path.
func Annotate(ctx context.Context, peptides []string, db *fasta.Database, opts annotate.Options, threads int) (*annotate.Result, error) {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if threads == 1 {
		return annotate.Annotate(peptides, db, opts)
	}

	deduped := annotate.Dedupe(peptides)
	if len(deduped) == 0 || db == nil || db.Len() == 0 {
		return &annotate.Result{}, nil
	}

	m, err := matcher.New(deduped, matcher.Options{Backend: opts.Backend, CaseSensitive: true})
	if err != nil {
		return nil, err
	}

	jobs := make(chan int, threads*2)
	perProtein := make([][]annotate.Annotation, db.Len())

	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-jobs:
					if !ok {
						return
					}
					id := db.IDs[idx]
					perProtein[idx] = annotate.ScanProtein(m, id, db.Seq[id])
				}
			}
		}()
	}

feed:
	for idx := range db.IDs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &annotate.Result{}
	for _, anns := range perProtein {
		res.Annotations = append(res.Annotations, anns...)
	}
	if opts.FilterTryptic {
		res = res.FilterTryptic(db, opts.Tryptic)
	}
	return res, nil
}
