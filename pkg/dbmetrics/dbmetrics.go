// Package dbmetrics оборачивает *sql.DB для сбора метрик запросов
// и предоставляет механизм передачи executor-а через context:
// активная транзакция либо база конкретного тенанта.
package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/barbersched/BarberSched-BookingService/pkg/metrics"
)

// DBExecutor минимальный интерфейс исполнителя запросов (*sql.DB, *sql.Tx, *DB)
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor исполнитель запросов внутри транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type ctxKey int

const (
	txKey ctxKey = iota
	dbKey
)

// WithTx кладет активную транзакцию в context
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// TxFromContext достает транзакцию из context, если она там есть
func TxFromContext(ctx context.Context) (TxExecutor, bool) {
	tx, ok := ctx.Value(txKey).(TxExecutor)
	return tx, ok
}

// IsInTransaction сообщает, выполняется ли запрос внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := TxFromContext(ctx)
	return ok
}

// WithDB кладет базу тенанта в context (tenant-routing middleware)
func WithDB(ctx context.Context, db DBExecutor) context.Context {
	return context.WithValue(ctx, dbKey, db)
}

// DBFromContext достает базу тенанта из context
func DBFromContext(ctx context.Context) (DBExecutor, bool) {
	db, ok := ctx.Value(dbKey).(DBExecutor)
	return db, ok
}

// GetExecutor выбирает executor для запроса.
// Приоритет: активная транзакция > база тенанта из context > executor по умолчанию.
func GetExecutor(ctx context.Context, def DBExecutor) DBExecutor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	if db, ok := DBFromContext(ctx); ok {
		return db
	}
	return def
}

// SqlTxWrapper адаптер *sql.Tx под интерфейс TxExecutor
type SqlTxWrapper struct {
	*sql.Tx
}

// DB обертка над *sql.DB, снимающая метрики времени выполнения запросов
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
	name    string
}

// Wrap оборачивает db без фонового сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics, name string) *DB {
	return &DB{db: db, metrics: m, name: name}
}

// WrapWithDefault оборачивает db и запускает фоновый сбор статистики
// connection pool до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, name string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m, name)
	go wrapped.collectPoolStats(stopCh)
	return wrapped
}

func (d *DB) collectPoolStats(stopCh <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.SetDBPoolStats(d.name, stats.OpenConnections, stats.InUse, stats.Idle)
		}
	}
}

// ExecContext выполняет запрос с замером длительности
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("exec", time.Since(start), err)
	return res, err
}

// QueryContext выполняет запрос с замером длительности
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("query", time.Since(start), err)
	return rows, err
}

// QueryRowContext выполняет запрос одной строки с замером длительности
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("query_row", time.Since(start), nil)
	return row
}

// BeginTx начинает транзакцию; запросы внутри нее метрик не снимают
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	start := time.Now()
	tx, err := d.db.BeginTx(ctx, opts)
	d.metrics.ObserveDBQuery("begin_tx", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &SqlTxWrapper{Tx: tx}, nil
}
