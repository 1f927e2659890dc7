// Package storage provides persistent storage for the stop-evaluation
// pipeline using BoltDB. It keeps the cleaned example set alongside the
// results of completed evaluation runs, so sweeps can be re-run against the
// same data and historical results can be queried by classifier and time.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"stopeval/internal/dataset"
	"stopeval/internal/eval"
)

const (
	examplesBucket = "examples" // Cleaned example set, one JSON blob
	runsBucket     = "runs"     // Evaluation run results keyed by classifier_timestamp
)

const examplesKey = "current"

// RunRecord is one persisted evaluation run.
type RunRecord struct {
	Classifier string      `json:"classifier"`
	Ts         time.Time   `json:"ts"`
	Result     eval.Result `json:"result"`
}

// Store provides persistent storage for examples and evaluation runs.
type Store struct {
	db *bbolt.DB
}

// New opens the database under dataPath and creates the buckets.
func New(dataPath string) (*Store, error) {
	dbPath := filepath.Join(dataPath, "stopeval.db")

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(examplesBucket)); err != nil {
			return fmt.Errorf("create examples bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(runsBucket)); err != nil {
			return fmt.Errorf("create runs bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StoreExamples replaces the persisted cleaned example set.
func (s *Store) StoreExamples(examples []dataset.Example) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(examplesBucket))

		data, err := json.Marshal(examples)
		if err != nil {
			return fmt.Errorf("marshal examples: %w", err)
		}
		return b.Put([]byte(examplesKey), data)
	})
}

// GetExamples returns the persisted example set, or nil if none was stored.
func (s *Store) GetExamples() ([]dataset.Example, error) {
	var examples []dataset.Example
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(examplesBucket)).Get([]byte(examplesKey))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &examples)
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshal examples: %w", err)
	}
	return examples, nil
}

// StoreRun persists one evaluation result with the current timestamp.
// The key format "classifier_timestamp" supports time-range queries.
func (s *Store) StoreRun(result *eval.Result) error {
	record := RunRecord{
		Classifier: result.Classifier,
		Ts:         time.Now(),
		Result:     *result.Sanitized(),
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(runsBucket))

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal run: %w", err)
		}

		key := fmt.Sprintf("%s_%d", record.Classifier, record.Ts.UnixNano())
		return b.Put([]byte(key), data)
	})
}

// GetRuns retrieves the runs for one classifier within a time range,
// inclusive of both ends, ordered by timestamp.
func (s *Store) GetRuns(classifier string, start, end time.Time) ([]RunRecord, error) {
	var records []RunRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(runsBucket)).Cursor()

		prefix := []byte(classifier + "_")
		startKey := []byte(fmt.Sprintf("%s_%d", classifier, start.UnixNano()))
		endKey := []byte(fmt.Sprintf("%s_%d", classifier, end.UnixNano()))

		for k, v := c.Seek(startKey); k != nil && bytes.Compare(k, endKey) <= 0; k, v = c.Next() {
			if !bytes.HasPrefix(k, prefix) {
				continue
			}

			var record RunRecord
			if err := json.Unmarshal(v, &record); err != nil {
				continue // Skip malformed records
			}
			records = append(records, record)
		}
		return nil
	})

	return records, err
}
