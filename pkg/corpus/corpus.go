// Package corpus keeps captured protocol frames on disk so they can be
// replayed through the codec as regression samples.
package corpus

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// ErrNotFound is returned for an id with no stored sample.
var ErrNotFound = errors.New("corpus: sample not found")

// Store is a pebble-backed collection of samples keyed by KSUID.
type Store struct {
	db *pebble.DB
}

// Open opens or creates a store in dir.
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	return &Store{db: db}, nil
}

// Add stores sample under a new id, which is returned and set on sample.
func (s *Store) Add(sample *Sample) (ksuid.KSUID, error) {
	id := ksuid.New()
	data, err := marshalSample(sample)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("failed to encode sample: %w", err)
	}
	if err := s.db.Set(id.Bytes(), data, pebble.Sync); err != nil {
		return ksuid.Nil, err
	}
	sample.ID = id
	return id, nil
}

// Get returns the sample stored under id.
func (s *Store) Get(id ksuid.KSUID) (*Sample, error) {
	data, closer, err := s.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return decodeSample(id, data)
}

// List returns every sample in id order, which follows capture time to the
// second.
func (s *Store) List() ([]*Sample, error) {
	it, err := s.db.NewIter(nil)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var samples []*Sample
	for it.First(); it.Valid(); it.Next() {
		id, err := ksuid.FromBytes(it.Key())
		if err != nil {
			return nil, fmt.Errorf("corrupt corpus key %x: %w", it.Key(), err)
		}
		sample, err := decodeSample(id, it.Value())
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, it.Error()
}

// Delete removes the sample stored under id.
func (s *Store) Delete(id ksuid.KSUID) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.db.Delete(id.Bytes(), pebble.Sync)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// decodeSample decodes data, which pebble owns, into a fresh sample.
func decodeSample(id ksuid.KSUID, data []byte) (*Sample, error) {
	sample := &Sample{ID: id}
	r := bytes.NewReader(data)
	if err := sample.Decode(r); err != nil {
		return nil, fmt.Errorf("failed to decode sample %s: %w", id, err)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("failed to decode sample %s: %d trailing bytes", id, r.Len())
	}
	return sample, nil
}
