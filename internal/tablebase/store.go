// Package tablebase provides a persistent oware endgame tablebase. Solved
// positions are keyed by position hash in BadgerDB and surfaced to the
// search through the engine's leaves capability.
package tablebase

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Record is the stored verdict for a solved position.
type Record struct {
	Score int
	Exact bool
}

// Prober resolves position hashes to records.
type Prober interface {
	Probe(hash uint64) (Record, bool)
}

// Store is a badger-backed tablebase.
type Store struct {
	db *badger.DB
}

// Open opens or creates the tablebase at the given directory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("tablebase: open %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Probe looks up a position hash. Lookup failures degrade to a miss; a
// broken tablebase must never take the search down with it.
func (s *Store) Probe(hash uint64) (Record, bool) {
	var rec Record
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(hash))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			rec, found = decodeRecord(val)
			return nil
		})
	})
	if err != nil {
		return Record{}, false
	}
	return rec, found
}

// Put stores the record for a position hash.
func (s *Store) Put(hash uint64, rec Record) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(hash), encodeRecord(rec))
	})
}

// Len counts the stored positions.
func (s *Store) Len() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Import loads records from a text stream of "hash score exact|fuzzy"
// lines, hash in hexadecimal. Blank lines and #-comments are skipped.
// It returns the number of records stored.
func (s *Store) Import(r io.Reader) (int, error) {
	count := 0
	scanner := bufio.NewScanner(r)
	batch := s.db.NewWriteBatch()
	defer batch.Cancel()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		hash, rec, err := parseLine(line)
		if err != nil {
			return count, err
		}
		if err := batch.Set(recordKey(hash), encodeRecord(rec)); err != nil {
			return count, err
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, err
	}
	if err := batch.Flush(); err != nil {
		return count, err
	}
	return count, nil
}

func parseLine(line string) (uint64, Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, Record{}, fmt.Errorf("tablebase: invalid record %q", line)
	}

	hash, err := strconv.ParseUint(fields[0], 16, 64)
	if err != nil {
		return 0, Record{}, fmt.Errorf("tablebase: invalid hash %q: %w", fields[0], err)
	}
	score, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, Record{}, fmt.Errorf("tablebase: invalid score %q: %w", fields[1], err)
	}

	var exact bool
	switch fields[2] {
	case "exact":
		exact = true
	case "fuzzy":
		exact = false
	default:
		return 0, Record{}, fmt.Errorf("tablebase: invalid precision %q", fields[2])
	}
	return hash, Record{Score: score, Exact: exact}, nil
}

// recordKey renders the position hash as an 8-byte big-endian key.
func recordKey(hash uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, hash)
	return key
}

// encodeRecord packs a record as a little-endian int16 score followed by
// a precision byte.
func encodeRecord(rec Record) []byte {
	val := make([]byte, 3)
	binary.LittleEndian.PutUint16(val, uint16(int16(rec.Score)))
	if rec.Exact {
		val[2] = 1
	}
	return val
}

func decodeRecord(val []byte) (Record, bool) {
	if len(val) != 3 {
		return Record{}, false
	}
	return Record{
		Score: int(int16(binary.LittleEndian.Uint16(val))),
		Exact: val[2] == 1,
	}, true
}
