package game

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const journalTable = "journal_entries"

const (
	EntryWalk  = "walk"
	EntryBump  = "bump"
	EntryDecay = "decay"
)

type JournalEntry struct {
	ID        int64
	RunID     string
	Kind      string
	Col       int
	Row       int
	Symbol    string
	Direction string
	CreatedAt time.Time
}

type RunSummary struct {
	RunID   string
	Entries int
}

type journalOp struct {
	entry   *JournalEntry
	flushed chan struct{}
}

// Journal appends walks, bumps and decays of one run to sqlite. It is a log
// for later inspection and is never read back into a running game.
//
// Writes are queued to a single writer goroutine so the simulation loop
// never waits on disk.
type Journal struct {
	RunID string

	db        *sql.DB
	ops       chan journalOp
	done      chan struct{}
	closeOnce sync.Once
	logger    *log.Logger
}

func OpenJournal(path string, logger *log.Logger) (*Journal, error) {
	if logger == nil {
		logger = log.Default()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", path, err)
	}
	// sqlite allows one writer; a single connection also keeps :memory: shared.
	db.SetMaxOpenConns(1)

	j := &Journal{
		RunID:  uuid.NewString(),
		db:     db,
		ops:    make(chan journalOp, journalQueueDepth),
		done:   make(chan struct{}),
		logger: logger,
	}
	if err := j.createTable(); err != nil {
		db.Close()
		return nil, err
	}

	go j.writer()
	return j, nil
}

func (j *Journal) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + journalTable + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		col INTEGER NOT NULL,
		row INTEGER NOT NULL,
		symbol TEXT NOT NULL DEFAULT '',
		direction TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);`

	if _, err := j.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	j.logger.Debug("Journal table ensured.")
	return nil
}

func (j *Journal) writer() {
	defer close(j.done)
	for op := range j.ops {
		if op.entry != nil {
			if err := j.insert(op.entry); err != nil {
				j.logger.Error("journal write failed", "kind", op.entry.Kind, "error", err)
			}
		}
		if op.flushed != nil {
			close(op.flushed)
		}
	}
}

func (j *Journal) insert(e *JournalEntry) error {
	const insertSQL = `
	INSERT INTO ` + journalTable + ` (run_id, kind, col, row, symbol, direction, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);`

	_, err := j.db.Exec(insertSQL, e.RunID, e.Kind, e.Col, e.Row, e.Symbol, e.Direction, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert %s entry: %w", e.Kind, err)
	}
	return nil
}

func (j *Journal) enqueue(e JournalEntry) {
	e.RunID = j.RunID
	e.CreatedAt = time.Now().UTC()
	select {
	case j.ops <- journalOp{entry: &e}:
	default:
		j.logger.Warn("journal queue full, dropping entry", "kind", e.Kind)
	}
}

// RecordWalk can be registered directly with GameManager.OnWalked.
func (j *Journal) RecordWalk(ev WalkEvent) {
	kind := EntryWalk
	if ev.Blocked {
		kind = EntryBump
	}
	j.enqueue(JournalEntry{Kind: kind, Col: ev.From.Col, Row: ev.From.Row, Direction: ev.Dir.String()})
}

func (j *Journal) OnGridChanged(col, row int, symbol Symbol) {
	j.enqueue(JournalEntry{Kind: EntryDecay, Col: col, Row: row, Symbol: symbol.String()})
}

func (j *Journal) OnEntityMoved(float64, float64) {}

func (j *Journal) OnAnimationChanged(string) {}

// Flush blocks until every entry queued so far is written.
func (j *Journal) Flush() {
	flushed := make(chan struct{})
	j.ops <- journalOp{flushed: flushed}
	<-flushed
}

// Close drains the queue and closes the database.
func (j *Journal) Close() error {
	var err error
	j.closeOnce.Do(func() {
		close(j.ops)
		<-j.done
		err = j.db.Close()
	})
	return err
}

// Entries returns a page of entries, newest first. An empty runID matches
// every run.
func (j *Journal) Entries(runID string, limit, offset int) ([]JournalEntry, error) {
	const selectSQL = `
	SELECT id, run_id, kind, col, row, symbol, direction, created_at
	FROM ` + journalTable + `
	WHERE (? = '' OR run_id = ?)
	ORDER BY id DESC
	LIMIT ? OFFSET ?;`

	rows, err := j.db.Query(selectSQL, runID, runID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.RunID, &e.Kind, &e.Col, &e.Row, &e.Symbol, &e.Direction, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return entries, nil
}

// Runs lists recorded runs, most recent first.
func (j *Journal) Runs(limit int) ([]RunSummary, error) {
	const runsSQL = `
	SELECT run_id, COUNT(*)
	FROM ` + journalTable + `
	GROUP BY run_id
	ORDER BY MAX(id) DESC
	LIMIT ?;`

	rows, err := j.db.Query(runsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.Entries); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
