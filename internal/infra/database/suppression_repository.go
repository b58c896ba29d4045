package database

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jpher/readiness-funnel/internal/entity"
)

type SuppressionRepository struct {
	DB *sql.DB
	sb sq.StatementBuilderType
}

func NewSuppressionRepository(db *sql.DB, driver string) *SuppressionRepository {
	return &SuppressionRepository{DB: db, sb: builderFor(driver)}
}

// Add é idempotente: o conflito em email é ignorado, a segunda chamada
// é um sucesso inofensivo.
func (r *SuppressionRepository) Add(ctx context.Context, email string) error {
	query := r.sb.Insert("suppressions").
		Columns("email", "created_at").
		Values(entity.NormalizeEmail(email), time.Now()).
		Suffix("ON CONFLICT (email) DO NOTHING")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *SuppressionRepository) Exists(ctx context.Context, email string) (bool, error) {
	query := r.sb.Select("1").
		From("suppressions").
		Where(sq.Eq{"email": entity.NormalizeEmail(email)})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
