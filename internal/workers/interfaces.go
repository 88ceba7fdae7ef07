// Package workers runs the application's background workers.
//
// It defines the Worker interface and a Workers aggregate that starts and
// stops every configured worker as a unit.
package workers

// Worker is the contract for a background worker.
//
// Run starts the worker and returns immediately; the worker does its
// processing in its own goroutine until Stop is called.
type Worker interface {
	Run()
	Stop()
}
