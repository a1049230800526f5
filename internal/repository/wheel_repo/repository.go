package wheel_repo

import (
	"context"
	"errors"
	"fortune_wheel/internal/repository"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table       = "wheel_state"
	colUserID   = "user_id"
	colRotation = "rotation"
	colUpdated  = "updated_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewWheelRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.WheelRepository {
	if getter == nil {
		getter = trmpgx.DefaultCtxGetter
	}
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// GetRotation - получение базового угла колеса пользователя.
// Возвращает 0, если пользователь еще не крутил
func (r *repo) GetRotation(ctx context.Context, userID int) (float64, error) {
	sqlStr, args, err := getRotationQuery(userID).ToSql()
	if err != nil {
		return 0, err
	}

	var rotation float64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&rotation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}

	return rotation, nil
}

// SaveRotation - сохранение базового угла после завершения спина.
// Если записи нет, создается новая
func (r *repo) SaveRotation(ctx context.Context, userID int, rotation float64) error {
	tr := r.getter.DefaultTrOrDB(ctx, r.dbc)
	now := time.Now()

	sqlStr, args, err := updateRotationQuery(userID, rotation, now).ToSql()
	if err != nil {
		return err
	}

	res, err := tr.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	// Если rowsAffected = 0 - то записи не существует и делаем вставку
	if res.RowsAffected() == 0 {
		sqlStr, args, err = insertRotationQuery(userID, rotation, now).ToSql()
		if err != nil {
			return err
		}

		_, err = tr.Exec(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
	}
	return nil
}

func getRotationQuery(userID int) sq.SelectBuilder {
	return sq.Select(colRotation).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)
}

func updateRotationQuery(userID int, rotation float64, now time.Time) sq.UpdateBuilder {
	return sq.Update(table).
		Set(colRotation, rotation).
		Set(colUpdated, now).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)
}

func insertRotationQuery(userID int, rotation float64, now time.Time) sq.InsertBuilder {
	return sq.Insert(table).
		Columns(colUserID, colRotation, colUpdated).
		Values(userID, rotation, now).
		PlaceholderFormat(sq.Dollar)
}
