// Package book implements a binary opening book for oware, keyed by
// position hash.
package book

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"os"
)

// Entry is a single book move with its selection weight.
type Entry struct {
	Move   int
	Weight uint16
}

// Book maps position hashes to weighted candidate moves.
type Book struct {
	entries map[uint64][]Entry
}

// New creates an empty book.
func New() *Book {
	return &Book{entries: make(map[uint64][]Entry)}
}

// Load reads a book file.
func Load(filename string) (*Book, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadReader(file)
}

// LoadReader reads book records from a stream. Each record is 13 bytes,
// big-endian: position hash (8), move (1), weight (2), reserved (2).
func LoadReader(r io.Reader) (*Book, error) {
	b := New()

	var record [13]byte
	for {
		_, err := io.ReadFull(r, record[:])
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("book: truncated record")
		}
		if err != nil {
			return nil, err
		}

		hash := binary.BigEndian.Uint64(record[0:8])
		move := int(record[8])
		weight := binary.BigEndian.Uint16(record[9:11])
		if move > 11 {
			continue
		}

		b.entries[hash] = append(b.entries[hash], Entry{Move: move, Weight: weight})
	}
	return b, nil
}

// Len returns the number of positions in the book.
func (b *Book) Len() int {
	return len(b.entries)
}

// Probe returns the heaviest book move for the position, if any.
func (b *Book) Probe(hash uint64) (int, bool) {
	entries := b.entries[hash]
	if len(entries) == 0 {
		return -1, false
	}

	best := entries[0]
	for _, e := range entries[1:] {
		if e.Weight > best.Weight {
			best = e
		}
	}
	return best.Move, true
}

// ProbeRandom returns a book move chosen with probability proportional to
// its weight, for variety between games.
func (b *Book) ProbeRandom(hash uint64, rng *rand.Rand) (int, bool) {
	entries := b.entries[hash]
	if len(entries) == 0 {
		return -1, false
	}

	total := 0
	for _, e := range entries {
		total += int(e.Weight)
	}
	if total == 0 {
		return entries[rng.Intn(len(entries))].Move, true
	}

	pick := rng.Intn(total)
	for _, e := range entries {
		pick -= int(e.Weight)
		if pick < 0 {
			return e.Move, true
		}
	}
	return entries[len(entries)-1].Move, true
}

// Add records a book move for a position hash.
func (b *Book) Add(hash uint64, move int, weight uint16) {
	b.entries[hash] = append(b.entries[hash], Entry{Move: move, Weight: weight})
}

// Write dumps the book in the binary record format.
func (b *Book) Write(w io.Writer) error {
	var record [13]byte
	for hash, entries := range b.entries {
		for _, e := range entries {
			binary.BigEndian.PutUint64(record[0:8], hash)
			record[8] = byte(e.Move)
			binary.BigEndian.PutUint16(record[9:11], e.Weight)
			record[11], record[12] = 0, 0
			if _, err := w.Write(record[:]); err != nil {
				return err
			}
		}
	}
	return nil
}
