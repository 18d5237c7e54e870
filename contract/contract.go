//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
)

// Conn is the opaque capability a transport hands to the session layer:
// an addressable unicast send plus an identity usable for set membership.
// Nothing else about the underlying channel may be assumed.
type Conn interface {
	ID() string
	Send(frame string) error
}

// Backend is the persistent byte storage collaborator. Names reaching it
// have already passed validation.
type Backend interface {
	EnsureRoot() error
	Exists(name string) (bool, error)
	Read(name string) (string, error)
	Write(name, content string) error
	ListRegularEntries() ([]string, error)
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
