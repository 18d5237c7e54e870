package storage

import (
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// docPrefix namespaces document keys so the same database can carry other
// entity types later without key collisions.
const docPrefix = "doc:"

// BadgerBackend persists documents in BadgerDB. The key is formatted as
// "doc:{name}"; validated names are unique within the prefix. Values hold
// the content bytes verbatim.
type BadgerBackend struct {
	db *badger.DB
}

func NewBadgerBackend(db *badger.DB) *BadgerBackend {
	return &BadgerBackend{db: db}
}

// EnsureRoot is a no-op: the open database is the root.
func (b *BadgerBackend) EnsureRoot() error {
	return nil
}

func (b *BadgerBackend) Exists(name string) (bool, error) {
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(docPrefix + name))
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (b *BadgerBackend) Read(name string) (string, error) {
	var content []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(docPrefix + name))
		if err != nil {
			return err
		}
		content, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func (b *BadgerBackend) Write(name, content string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(docPrefix+name), []byte(content))
	})
}

// ListRegularEntries scans the "doc:" prefix and returns the names without
// it. Values are not prefetched; only keys are needed.
func (b *BadgerBackend) ListRegularEntries() ([]string, error) {
	var names []string
	err := b.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(docPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, docPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
