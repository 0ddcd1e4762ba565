// Package txmanager управляет транзакциями поверх dbmetrics.DB.
// Контекст с активной транзакцией пробрасывается в функцию-колбэк,
// репозитории достают executor через dbmetrics.GetExecutor.
package txmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/barbersched/BarberSched-BookingService/pkg/dbmetrics"
)

// TxBeginner интерфейс для начала транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager менеджер транзакций
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции.
// Используется на пути создания бронирования для защиты от гонки
// двух клиентов за один слот.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	beginner := m.beginnerFor(ctx)

	tx, err := beginner.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin: %w", err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("txmanager: rollback after %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit: %w", err)
	}

	return nil
}

// beginnerFor выбирает, на какой базе начинать транзакцию.
// Если в context лежит база тенанта и она умеет начинать транзакции,
// транзакция открывается на ней, а не на базе по умолчанию.
func (m *TransactionManager) beginnerFor(ctx context.Context) TxBeginner {
	if db, ok := dbmetrics.DBFromContext(ctx); ok {
		if beginner, ok := db.(TxBeginner); ok {
			return beginner
		}
	}
	return m.db
}
