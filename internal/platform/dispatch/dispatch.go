// Package dispatch corre operaciones de base de datos fuera de la goroutine
// que llama, con un límite de concurrencia tipo pool de IO.
package dispatch

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

const DefaultWorkers int64 = 64

type Dispatcher struct {
	sem *semaphore.Weighted
}

func New(workers int64) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Dispatcher{sem: semaphore.NewWeighted(workers)}
}

// Do ejecuta fn en background y espera su resultado.
// ctx solo corta la espera por un slot; una vez arrancada, fn termina
// (las queries usan el mismo ctx, así que una cancelación hace rollback).
func (d *Dispatcher) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := d.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		defer d.sem.Release(1)
		defer func() {
			if p := recover(); p != nil {
				done <- fmt.Errorf("dispatch: panic: %v", p)
			}
		}()
		done <- fn(ctx)
	}()

	return <-done
}
