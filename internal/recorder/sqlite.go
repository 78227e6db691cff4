package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"SignalSentinel/internal/model"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (Grafana reads while bot writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signals (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			signal_id      TEXT NOT NULL,
			symbol         TEXT NOT NULL,
			class          TEXT,
			direction      TEXT,
			pattern        TEXT,
			score          INTEGER,
			regime         TEXT,
			session        TEXT,
			entry          REAL,
			stop_loss      REAL,
			tp1            REAL,
			tp2            REAL,
			tp3            REAL,
			lot_size       REAL,
			risk_amount    REAL,
			risk_percent   REAL,
			sl_distance    REAL,
			was_capped     INTEGER,
			atr            REAL,
			rsi            REAL,
			adx            REAL,
			vol_ratio      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ts ON signals(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals(symbol)`,

		`CREATE TABLE IF NOT EXISTS status_changes (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			signal_id   TEXT NOT NULL,
			symbol      TEXT,
			from_status TEXT,
			to_status   TEXT,
			price       REAL,
			pnl         REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_changes_ts ON status_changes(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_changes_signal ON status_changes(signal_id)`,

		`CREATE TABLE IF NOT EXISTS run_summaries (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			checked      INTEGER,
			tp1_hits     INTEGER,
			tp2_hits     INTEGER,
			sl_hits      INTEGER,
			expired      INTEGER,
			still_active INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON run_summaries(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSignal(sig *model.TrackedSignal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	capped := 0
	if sig.WasCapped {
		capped = 1
	}

	_, err := r.db.Exec(`INSERT INTO signals
		(timestamp, signal_id, symbol, class, direction, pattern, score, regime, session,
		 entry, stop_loss, tp1, tp2, tp3,
		 lot_size, risk_amount, risk_percent, sl_distance, was_capped,
		 atr, rsi, adx, vol_ratio)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		sig.CreatedAt.Unix(), sig.ID, sig.Symbol, string(sig.Class),
		string(sig.Direction), sig.Pattern, sig.Score, string(sig.Regime), string(sig.Session),
		sig.Entry, sig.StopLoss, sig.TP1, sig.TP2, sig.TP3,
		sig.LotSize, sig.RiskAmount, sig.RiskPercent, sig.SLDistance, capped,
		sig.ATR, sig.RSI, sig.ADX, sig.VolRatio,
	)
	return err
}

func (r *SQLiteRecorder) RecordStatusChange(evt *StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO status_changes
		(timestamp, signal_id, symbol, from_status, to_status, price, pnl)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.SignalID, evt.Symbol,
		string(evt.From), string(evt.To), evt.Price, evt.PnL,
	)
	return err
}

func (r *SQLiteRecorder) RecordRunSummary(sum *model.RunSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO run_summaries
		(timestamp, checked, tp1_hits, tp2_hits, sl_hits, expired, still_active)
		VALUES (?,?,?,?,?,?,?)`,
		sum.RanAt.Unix(), sum.Checked, sum.TP1Hits, sum.TP2Hits,
		sum.SLHits, sum.Expired, sum.StillActive,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
