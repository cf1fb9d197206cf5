// File: store.go
// Role: SQLite-backed fact store. Facts are kept as rendered s-expressions
//       with their head and first two arguments broken out for lookups.
// Concurrency:
//   - Safe for concurrent use; database/sql pools connections and the ULID
//     entropy source is guarded by a mutex.

package kb

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

// Sentinel errors for the knowledge store.
var (
	// ErrSyntax indicates unparsable fact source.
	ErrSyntax = errors.New("kb: syntax error")

	// ErrNotFact indicates an atom that cannot be stored (no symbol head).
	ErrNotFact = errors.New("kb: atom is not a fact")

	// ErrClosed indicates use of a closed store.
	ErrClosed = errors.New("kb: store is closed")
)

// Store is the knowledge store.
type Store struct {
	db     *sql.DB
	logger *slog.Logger

	mu      sync.Mutex // guards entropy
	entropy io.Reader
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open opens or creates the store at path. ":memory:" opens a private
// in-memory store.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" || strings.Contains(path, "mode=memory") {
		// Every connection to :memory: is a distinct database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS facts (
			id TEXT PRIMARY KEY,
			head TEXT NOT NULL,
			arg0 TEXT,
			arg1 TEXT,
			body TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS facts_lookup ON facts (head, arg0, arg1);

		CREATE TABLE IF NOT EXISTS seeded_files (
			digest TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			facts INTEGER NOT NULL,
			loaded_at TEXT NOT NULL
		);`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{
		db:      db,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Probe reports whether the store answers queries.
func (s *Store) Probe(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("probe: %w", s.classify(err))
	}
	return nil
}

// Assert stores a fact. Identical facts may be stored more than once.
func (s *Store) Assert(ctx context.Context, fact Atom) error {
	return s.insert(ctx, s.db, fact)
}

// execer is the subset of *sql.DB and *sql.Tx used by insert.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) insert(ctx context.Context, db execer, fact Atom) error {
	head := fact.Head()
	if head == "" {
		return fmt.Errorf("%w: %s", ErrNotFact, fact)
	}
	arg0, arg1 := argText(fact, 1), argText(fact, 2)

	_, err := db.ExecContext(ctx,
		`INSERT INTO facts (id, head, arg0, arg1, body, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		s.newID(), head, arg0, arg1, fact.String(), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert fact: %w", s.classify(err))
	}
	return nil
}

// argText returns the name of the i-th child, or NULL.
func argText(fact Atom, i int) sql.NullString {
	if i >= len(fact.Children) {
		return sql.NullString{}
	}
	name, ok := fact.Children[i].Name()
	return sql.NullString{String: name, Valid: ok}
}

// newID returns a lexicographically increasing ULID.
func (s *Store) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Now(), s.entropy).String()
}

// Load parses src and stores every fact in a single transaction. Queries in
// src are skipped. It returns the number of facts stored.
func (s *Store) Load(ctx context.Context, src string) (int, error) {
	facts, err := Parse(src)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", s.classify(err))
	}
	if err := s.insertAll(ctx, tx, facts); err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", s.classify(err))
	}

	s.logger.Debug("facts loaded", "count", len(facts))
	return len(facts), nil
}

func (s *Store) insertAll(ctx context.Context, tx execer, facts []Atom) error {
	for _, f := range facts {
		if err := s.insert(ctx, tx, f); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile loads the facts of the file at path.
func (s *Store) LoadFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read facts: %w", err)
	}
	n, err := s.Load(ctx, string(data))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	s.logger.Info("fact file loaded", "path", path, "count", n)
	return n, nil
}

// Seed loads the file at path unless a file with the same content was
// seeded before, so seeding a persistent store at every boot does not
// duplicate facts. It reports the facts stored and whether the file was
// skipped. Seeding is keyed by content: an edited file is loaded again.
func (s *Store) Seed(ctx context.Context, path string) (int, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false, fmt.Errorf("read facts: %w", err)
	}
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])
	facts, err := Parse(string(data))
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", path, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("begin: %w", s.classify(err))
	}
	defer func() { _ = tx.Rollback() }()

	var seen int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM seeded_files WHERE digest = ?`, digest).Scan(&seen)
	if err != nil {
		return 0, false, fmt.Errorf("check seed: %w", s.classify(err))
	}
	if seen > 0 {
		s.logger.Info("fact file already seeded", "path", path, "digest", digest[:12])
		return 0, true, nil
	}

	if err := s.insertAll(ctx, tx, facts); err != nil {
		return 0, false, fmt.Errorf("%s: %w", path, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO seeded_files (digest, path, facts, loaded_at) VALUES (?, ?, ?, ?)`,
		digest, path, len(facts), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, false, fmt.Errorf("record seed: %w", s.classify(err))
	}
	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("commit: %w", s.classify(err))
	}

	s.logger.Info("fact file seeded", "path", path, "count", len(facts))
	return len(facts), false, nil
}

// Match returns the facts with the given head whose leading arguments equal
// args (at most two are indexed), in insertion order.
func (s *Store) Match(ctx context.Context, head string, args ...string) ([]Atom, error) {
	if len(args) > 2 {
		return nil, fmt.Errorf("kb: match supports at most 2 arguments, got %d", len(args))
	}
	query := "SELECT body FROM facts WHERE head = ?"
	params := []any{head}
	for i, a := range args {
		query += fmt.Sprintf(" AND arg%d = ?", i)
		params = append(params, a)
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", head, s.classify(err))
	}
	defer rows.Close()

	var out []Atom
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan fact: %w", err)
		}
		a, err := ParseAtom(body)
		if err != nil {
			s.logger.Warn("stored fact unreadable", "body", body, "err", err)
			continue
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate facts: %w", s.classify(err))
	}

	return out, nil
}

// FlightFacts returns every flight-route fact.
func (s *Store) FlightFacts(ctx context.Context) ([]Atom, error) {
	return s.Match(ctx, FlightRoute)
}

// DirectFacts returns the flight-route facts from → to.
func (s *Store) DirectFacts(ctx context.Context, from, to string) ([]Atom, error) {
	return s.Match(ctx, FlightRoute, from, to)
}

// Count returns the number of stored facts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM facts").Scan(&n); err != nil {
		return 0, fmt.Errorf("count facts: %w", s.classify(err))
	}
	return n, nil
}

// classify maps driver errors onto package sentinels where one applies.
func (s *Store) classify(err error) error {
	if errors.Is(err, sql.ErrConnDone) || strings.Contains(err.Error(), "database is closed") {
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}
	return err
}
