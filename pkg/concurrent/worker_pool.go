package concurrent

import (
	"sync"
)

type JobFunc[T any, G any] func(job T) G

type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(job)
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

// Wait blocks until every worker returned, then closes the results channel. Call Close first.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

type indexedJob[T any] struct {
	idx  int
	item T
}

type indexedResult[G any] struct {
	idx int
	res G
}

// MapOrdered applies fn to every item on numWorkers goroutines and returns the results in input order.
func MapOrdered[T any, G any](items []T, numWorkers int, fn func(item T) G) []G {
	out := make([]G, len(items))
	if len(items) == 0 {
		return out
	}

	wp := NewWorkerPool[indexedJob[T], indexedResult[G]](numWorkers, len(items))
	wp.Start(func(job indexedJob[T]) indexedResult[G] {
		return indexedResult[G]{idx: job.idx, res: fn(job.item)}
	})

	for i, item := range items {
		wp.AddJob(indexedJob[T]{idx: i, item: item})
	}
	wp.Close()
	wp.Wait()

	for r := range wp.CollectResults() {
		out[r.idx] = r.res
	}
	return out
}
