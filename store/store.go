// Package store logs parse results to a sqlite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/neurlang/nlu/parser"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	content     TEXT NOT NULL,
	posted      DATETIME NOT NULL,
	intent_name TEXT NOT NULL,
	probability REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS slots (
	message_id  INTEGER NOT NULL REFERENCES messages(id) ON DELETE CASCADE,
	slot_index  INTEGER NOT NULL,
	raw_value   TEXT NOT NULL,
	value       TEXT,
	entity      TEXT NOT NULL,
	slot_name   TEXT NOT NULL,
	PRIMARY KEY (message_id, slot_index)
);`

// Store is a parse log
type Store struct {
	db *sql.DB
}

// Message is a logged parse
type Message struct {
	ID          int64
	Content     string
	Posted      time.Time
	IntentName  string
	Probability float64
	Slots       []Slot
}

// Slot is a logged slot of a message
type Slot struct {
	RawValue string
	Value    sql.NullString
	Entity   string
	SlotName string
}

// Open opens or creates the parse log at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open parse log")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create parse log schema")
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// valueString renders a resolved slot value, NULL for unknown kinds
func valueString(v parser.Value) sql.NullString {
	switch x := v.Value.(type) {
	case string:
		return sql.NullString{String: x, Valid: true}
	case float64:
		return sql.NullString{String: strconv.FormatFloat(x, 'f', -1, 64), Valid: true}
	case nil:
		return sql.NullString{}
	}
	return sql.NullString{String: fmt.Sprint(v.Value), Valid: true}
}

// LogParse stores the result and its slots in one transaction. Results without an
// intent are not logged and return id 0.
func (s *Store) LogParse(ctx context.Context, result parser.Result, posted time.Time) (id int64, err error) {
	if result.Intent == nil {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "begin")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO messages (content, posted, intent_name, probability) VALUES (?, ?, ?, ?)`,
		result.Input, posted.UTC(), result.Intent.IntentName, result.Intent.Probability)
	if err != nil {
		return 0, errors.Wrap(err, "insert message")
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, errors.Wrap(err, "message id")
	}
	for i, slot := range result.Slots {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO slots (message_id, slot_index, raw_value, value, entity, slot_name) VALUES (?, ?, ?, ?, ?, ?)`,
			id, i, slot.RawValue, valueString(slot.Value), slot.Entity, slot.SlotName)
		if err != nil {
			return 0, errors.Wrapf(err, "insert slot %d", i)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit")
	}
	return id, nil
}

// Recent returns the last limit messages with their slots, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, posted, intent_name, probability FROM messages ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query messages")
	}
	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Content, &m.Posted, &m.IntentName, &m.Probability); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "scan message")
		}
		messages = append(messages, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "query messages")
	}

	for i := range messages {
		slots, err := s.slots(ctx, messages[i].ID)
		if err != nil {
			return nil, err
		}
		messages[i].Slots = slots
	}
	return messages, nil
}

func (s *Store) slots(ctx context.Context, message int64) ([]Slot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT raw_value, value, entity, slot_name FROM slots WHERE message_id = ? ORDER BY slot_index`, message)
	if err != nil {
		return nil, errors.Wrap(err, "query slots")
	}
	defer rows.Close()
	var slots []Slot
	for rows.Next() {
		var slot Slot
		if err := rows.Scan(&slot.RawValue, &slot.Value, &slot.Entity, &slot.SlotName); err != nil {
			return nil, errors.Wrap(err, "scan slot")
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}
