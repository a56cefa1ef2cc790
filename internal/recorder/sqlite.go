package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance while scans write.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_snapshots (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol           TEXT NOT NULL,
			timestamp        INTEGER NOT NULL,
			price            REAL,
			ma50             REAL,
			ma200            REAL,
			rsi              REAL,
			vwap             REAL,
			golden_cross     INTEGER,
			overbought       INTEGER,
			oversold         INTEGER,
			price_above_vwap INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol_ts ON analysis_snapshots(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSnapshot(snap *AnalysisSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO analysis_snapshots
		(symbol, timestamp, price, ma50, ma200, rsi, vwap,
		 golden_cross, overbought, oversold, price_above_vwap)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		snap.Symbol, ts.Unix(), snap.Price, snap.MA50, snap.MA200, snap.RSI, snap.VWAP,
		boolToInt(snap.GoldenCross), boolToInt(snap.Overbought),
		boolToInt(snap.Oversold), boolToInt(snap.PriceAboveVWAP),
	)
	return err
}

// RecentSnapshots returns up to `limit` snapshots for the symbol, newest first.
func (r *SQLiteRecorder) RecentSnapshots(symbol string, limit int) ([]AnalysisSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT symbol, timestamp, price, ma50, ma200, rsi, vwap,
			golden_cross, overbought, oversold, price_above_vwap
		FROM analysis_snapshots
		WHERE symbol = ?
		ORDER BY timestamp DESC
		LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []AnalysisSnapshot
	for rows.Next() {
		var s AnalysisSnapshot
		var ts int64
		var golden, overbought, oversold, aboveVWAP int
		if err := rows.Scan(&s.Symbol, &ts, &s.Price, &s.MA50, &s.MA200, &s.RSI, &s.VWAP,
			&golden, &overbought, &oversold, &aboveVWAP); err != nil {
			return nil, err
		}
		s.Timestamp = time.Unix(ts, 0)
		s.GoldenCross = golden != 0
		s.Overbought = overbought != 0
		s.Oversold = oversold != 0
		s.PriceAboveVWAP = aboveVWAP != 0
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
