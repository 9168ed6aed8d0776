// Package storage persists the task collection as one JSON blob under a
// single key of a local key-value store.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"tarefa/internal/task"
)

const (
	DefaultKey = "tasks"
	MemoryPath = ":memory:"
)

// KV is the local key-value store the blob lives in.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Close() error
}

const tasksSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "text", "completed"],
		"properties": {
			"id": {"type": "integer"},
			"text": {"type": "string"},
			"completed": {"type": "boolean"}
		}
	}
}`

var blobSchema = jsonschema.MustCompileString("tarefa-tasks.schema.json", tasksSchema)

// Open returns the SQLite backend for dbPath, or an in-memory store for
// MemoryPath.
func Open(dbPath string) (KV, error) {
	if dbPath == MemoryPath {
		return NewMemory(), nil
	}
	return OpenSQLite(dbPath)
}

// Store reads and writes the whole collection under one key.
type Store struct {
	kv     KV
	key    string
	logger *log.Logger
}

func NewStore(kv KV, key string, logger *log.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{kv: kv, key: key, logger: logger}
}

func (s *Store) Key() string { return s.key }

func (s *Store) Close() error { return s.kv.Close() }

// Load returns the persisted tasks. A missing, unreadable or malformed blob
// yields an empty collection; the cause is only logged.
func (s *Store) Load() []task.Task {
	data, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Warn("read stored tasks", "key", s.key, "err", err)
		return []task.Task{}
	}
	if !ok {
		s.logger.Debug("no stored tasks", "key", s.key)
		return []task.Task{}
	}
	tasks, err := Decode(data)
	if err != nil {
		s.logger.Warn("discarding stored tasks", "key", s.key, "err", err)
		return []task.Task{}
	}
	s.logger.Debug("loaded tasks", "key", s.key, "count", len(tasks))
	return tasks
}

// Save overwrites the stored blob with tasks.
func (s *Store) Save(tasks []task.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	s.logger.Debug("saved tasks", "key", s.key, "count", len(tasks))
	return nil
}

func Encode(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// Decode parses a stored blob, rejecting anything that is not an array of
// {id, text, completed} objects.
func Decode(data []byte) ([]task.Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty blob")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	if err := blobSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate tasks: %w", err)
	}
	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}
