package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed repository behind the feature plugins.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (or creates) the database at dbPath and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		done INTEGER DEFAULT 0,
		due_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS reminders (
		id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		remind_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS lists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE COLLATE NOCASE
	);

	CREATE TABLE IF NOT EXISTS list_items (
		id TEXT PRIMARY KEY,
		list_id TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
		content TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS contacts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT,
		email TEXT
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		starts_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes(created_at);
	CREATE INDEX IF NOT EXISTS idx_reminders_remind_at ON reminders(remind_at);
	CREATE INDEX IF NOT EXISTS idx_events_starts_at ON events(starts_at);
	CREATE INDEX IF NOT EXISTS idx_list_items_list_id ON list_items(list_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ── Notes ──────────────────────────────────────────────────────────────

// AddNote saves a note and returns it.
func (s *Store) AddNote(ctx context.Context, content string) (*Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := &Note{ID: uuid.NewString(), Content: content, CreatedAt: time.Now()}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, content, created_at) VALUES (?, ?, ?)`,
		n.ID, n.Content, n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return n, nil
}

// RecentNotes returns the newest notes first.
func (s *Store) RecentNotes(ctx context.Context, limit int) ([]Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, created_at FROM notes ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// DeleteNoteMatching removes notes whose content contains the phrase.
// Returns how many were removed.
func (s *Store) DeleteNoteMatching(ctx context.Context, phrase string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM notes WHERE content LIKE ?`, like(phrase))
	if err != nil {
		return 0, fmt.Errorf("delete notes: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// ClearNotes removes every note.
func (s *Store) ClearNotes(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM notes`)
	if err != nil {
		return 0, fmt.Errorf("clear notes: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// ── Tasks ──────────────────────────────────────────────────────────────

// AddTask saves a task, optionally with a due time (zero means none).
func (s *Store) AddTask(ctx context.Context, content string, dueAt time.Time) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Task{ID: uuid.NewString(), Content: content, DueAt: dueAt, CreatedAt: time.Now()}
	var due any
	if !dueAt.IsZero() {
		due = dueAt
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, content, done, due_at, created_at) VALUES (?, ?, 0, ?, ?)`,
		t.ID, t.Content, due, t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

// OpenTasks returns tasks not yet done, oldest first.
func (s *Store) OpenTasks(ctx context.Context, limit int) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, done, due_at, created_at FROM tasks WHERE done = 0 ORDER BY created_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var due sql.NullTime
		if err := rows.Scan(&t.ID, &t.Content, &t.Done, &due, &t.CreatedAt); err != nil {
			return nil, err
		}
		if due.Valid {
			t.DueAt = due.Time
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CompleteTaskMatching marks matching open tasks done. Returns the count.
func (s *Store) CompleteTaskMatching(ctx context.Context, phrase string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET done = 1 WHERE done = 0 AND content LIKE ?`, like(phrase))
	if err != nil {
		return 0, fmt.Errorf("complete task: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// ── Reminders ──────────────────────────────────────────────────────────

// AddReminder saves a reminder.
func (s *Store) AddReminder(ctx context.Context, content string, remindAt time.Time) (*Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &Reminder{ID: uuid.NewString(), Content: content, RemindAt: remindAt, CreatedAt: time.Now()}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reminders (id, content, remind_at, created_at) VALUES (?, ?, ?, ?)`,
		r.ID, r.Content, r.RemindAt, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert reminder: %w", err)
	}
	return r, nil
}

// ActiveReminders returns reminders that have not fired yet, soonest first.
func (s *Store) ActiveReminders(ctx context.Context, now time.Time) ([]Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, remind_at, created_at FROM reminders WHERE remind_at >= ? ORDER BY remind_at ASC`, now)
	if err != nil {
		return nil, fmt.Errorf("query reminders: %w", err)
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		var r Reminder
		if err := rows.Scan(&r.ID, &r.Content, &r.RemindAt, &r.CreatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// DeleteReminderMatching removes reminders whose content contains the phrase.
func (s *Store) DeleteReminderMatching(ctx context.Context, phrase string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM reminders WHERE content LIKE ?`, like(phrase))
	if err != nil {
		return 0, fmt.Errorf("delete reminders: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// ── Lists ──────────────────────────────────────────────────────────────

// CreateList creates a named list. Creating an existing list is not an
// error; the existing list is returned.
func (s *Store) CreateList(ctx context.Context, name string) (*List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, err := s.findList(ctx, name); err == nil && l != nil {
		return l, nil
	}
	l := &List{ID: uuid.NewString(), Name: name}
	_, err := s.db.ExecContext(ctx, `INSERT INTO lists (id, name) VALUES (?, ?)`, l.ID, l.Name)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	return l, nil
}

// FindList returns the named list with its items, or nil when absent.
func (s *Store) FindList(ctx context.Context, name string) (*List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findList(ctx, name)
}

func (s *Store) findList(ctx context.Context, name string) (*List, error) {
	var l List
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM lists WHERE name = ? COLLATE NOCASE`, name).Scan(&l.ID, &l.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query list: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, list_id, content FROM list_items WHERE list_id = ?`, l.ID)
	if err != nil {
		return nil, fmt.Errorf("query list items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it ListItem
		if err := rows.Scan(&it.ID, &it.ListID, &it.Content); err != nil {
			return nil, err
		}
		l.Items = append(l.Items, it)
	}
	return &l, rows.Err()
}

// Lists returns every list with its items.
func (s *Store) Lists(ctx context.Context) ([]List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM lists ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}
	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, err
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lists := make([]List, 0, len(names))
	for _, name := range names {
		l, err := s.findList(ctx, name)
		if err != nil {
			return nil, err
		}
		if l != nil {
			lists = append(lists, *l)
		}
	}
	return lists, nil
}

// AddListItem appends an item to the named list, creating the list if
// needed.
func (s *Store) AddListItem(ctx context.Context, listName, content string) (*ListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.findList(ctx, listName)
	if err != nil {
		return nil, err
	}
	if l == nil {
		l = &List{ID: uuid.NewString(), Name: listName}
		if _, err := s.db.ExecContext(ctx, `INSERT INTO lists (id, name) VALUES (?, ?)`, l.ID, l.Name); err != nil {
			return nil, fmt.Errorf("insert list: %w", err)
		}
	}

	it := &ListItem{ID: uuid.NewString(), ListID: l.ID, Content: content}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO list_items (id, list_id, content) VALUES (?, ?, ?)`, it.ID, it.ListID, it.Content)
	if err != nil {
		return nil, fmt.Errorf("insert list item: %w", err)
	}
	return it, nil
}

// ── Contacts ───────────────────────────────────────────────────────────

// AddContact saves a contact.
func (s *Store) AddContact(ctx context.Context, name, phone, email string) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &Contact{ID: uuid.NewString(), Name: name, Phone: phone, Email: email}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, name, phone, email) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Phone, c.Email)
	if err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	return c, nil
}

// Contacts returns all contacts ordered by name.
func (s *Store) Contacts(ctx context.Context) ([]Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, phone, email FROM contacts ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		var phone, email sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &phone, &email); err != nil {
			return nil, err
		}
		c.Phone, c.Email = phone.String, email.String
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// FindContact returns the first contact whose name matches, or nil.
func (s *Store) FindContact(ctx context.Context, name string) (*Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Contact
	var phone, email sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, email FROM contacts WHERE name = ? COLLATE NOCASE`, name).
		Scan(&c.ID, &c.Name, &phone, &email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query contact: %w", err)
	}
	c.Phone, c.Email = phone.String, email.String
	return &c, nil
}

// DeleteContactMatching removes contacts by name.
func (s *Store) DeleteContactMatching(ctx context.Context, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM contacts WHERE name LIKE ?`, like(name))
	if err != nil {
		return 0, fmt.Errorf("delete contacts: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// ── Events ─────────────────────────────────────────────────────────────

// AddEvent saves a calendar event.
func (s *Store) AddEvent(ctx context.Context, title string, startsAt time.Time) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := &Event{ID: uuid.NewString(), Title: title, StartsAt: startsAt}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, title, starts_at) VALUES (?, ?, ?)`, e.ID, e.Title, e.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return e, nil
}

// EventsBetween returns events within [from, to), soonest first.
func (s *Store) EventsBetween(ctx context.Context, from, to time.Time) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, starts_at FROM events WHERE starts_at >= ? AND starts_at < ? ORDER BY starts_at ASC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.StartsAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ── Snapshot ───────────────────────────────────────────────────────────

// Snapshot aggregates recent rows from every table for prompt context.
// Failures on individual sections leave that section empty rather than
// failing the whole snapshot. A nil store yields an empty snapshot, so
// callers without storage still get usable context.
func (s *Store) Snapshot(ctx context.Context) *Snapshot {
	snap := &Snapshot{}
	if s == nil {
		return snap
	}
	now := time.Now()

	snap.Notes, _ = s.RecentNotes(ctx, 10)
	snap.Tasks, _ = s.OpenTasks(ctx, 10)
	snap.Reminders, _ = s.ActiveReminders(ctx, now)
	snap.Lists, _ = s.Lists(ctx)
	snap.Contacts, _ = s.Contacts(ctx)
	snap.Events, _ = s.EventsBetween(ctx, now, now.AddDate(0, 0, 14))
	return snap
}

// like wraps a phrase for a case-insensitive contains match.
func like(phrase string) string {
	return "%" + strings.TrimSpace(phrase) + "%"
}
