package database

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jpher/readiness-funnel/internal/entity"
)

var leadColumns = []string{
	"id", "email", "name", "company", "phone",
	"data_score", "process_score", "team_score", "strategic_score", "change_score",
	"total_score", "percentage", "readiness_level",
	"email_sequence_step", "last_email_sent_at", "unsubscribed",
	"created_at", "updated_at",
}

type LeadRepository struct {
	DB *sql.DB
	sb sq.StatementBuilderType
}

// NewLeadRepository monta as queries com o placeholder do driver
// ($1 no postgres, ? no sqlite) — é o que permite trocar de backend
// sem duplicar o repositório.
func NewLeadRepository(db *sql.DB, driver string) *LeadRepository {
	return &LeadRepository{DB: db, sb: builderFor(driver)}
}

func builderFor(driver string) sq.StatementBuilderType {
	if driver == "postgres" {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// Upsert grava o lead preservando o estado da sequência em conflito de
// email: identidade e scores são sobrescritos, email_sequence_step,
// last_email_sent_at e unsubscribed ficam como estão. Devolve no próprio
// lead os valores persistidos e informa se o registro já existia.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) (bool, error) {
	query := r.sb.Insert("leads").
		Columns(leadColumns...).
		Values(
			lead.ID, lead.Email, lead.Name, lead.Company, lead.Phone,
			lead.Scores.Data, lead.Scores.Process, lead.Scores.Team,
			lead.Scores.Strategic, lead.Scores.Change,
			lead.TotalScore, lead.Percentage, lead.ReadinessLevel,
			lead.SequenceStep, lead.LastEmailSentAt, lead.Unsubscribed,
			lead.CreatedAt, lead.UpdatedAt,
		).
		Suffix(`ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			company = COALESCE(NULLIF(EXCLUDED.company, ''), leads.company),
			phone = COALESCE(NULLIF(EXCLUDED.phone, ''), leads.phone),
			data_score = EXCLUDED.data_score,
			process_score = EXCLUDED.process_score,
			team_score = EXCLUDED.team_score,
			strategic_score = EXCLUDED.strategic_score,
			change_score = EXCLUDED.change_score,
			total_score = EXCLUDED.total_score,
			percentage = EXCLUDED.percentage,
			readiness_level = EXCLUDED.readiness_level,
			updated_at = EXCLUDED.updated_at`)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return false, err
	}

	persisted, err := r.FindByEmail(ctx, lead.Email)
	if err != nil {
		return false, err
	}
	if persisted == nil {
		return false, sql.ErrNoRows
	}

	// O id nunca é atualizado no conflito: se o id persistido não é o que
	// acabamos de gerar, o registro já existia. Diferente de um SELECT
	// prévio, vale também quando dois primeiros envios correm em paralelo
	// — só o vencedor do INSERT vê o próprio id.
	existed := persisted.ID != lead.ID
	*lead = *persisted

	return existed, nil
}

// FindByEmail retorna (nil, nil) quando o lead não existe.
func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	query := r.sb.Select(leadColumns...).
		From("leads").
		Where(sq.Eq{"email": entity.NormalizeEmail(email)})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	lead, err := scanLead(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// FindEligible seleciona os leads prontos para o próximo passo: no passo
// fromStep, sem opt-out (flag ou supressão avulsa) e com o último envio
// em sentBefore ou antes. Limitado para manter cada execução finita.
func (r *LeadRepository) FindEligible(ctx context.Context, fromStep int, sentBefore time.Time, limit int) ([]*entity.Lead, error) {
	query := r.sb.Select(leadColumns...).
		From("leads").
		Where(sq.Eq{"email_sequence_step": fromStep, "unsubscribed": false}).
		Where(sq.LtOrEq{"last_email_sent_at": sentBefore}).
		Where("NOT EXISTS (SELECT 1 FROM suppressions s WHERE s.email = leads.email)").
		OrderBy("last_email_sent_at ASC").
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// AdvanceStep atualiza passo e last_email_sent_at em um único UPDATE
// condicional: só avança se o lead ainda estiver em toStep-1. Execuções
// concorrentes do scheduler não conseguem avançar o mesmo lead duas
// vezes — a segunda vê zero linhas afetadas.
func (r *LeadRepository) AdvanceStep(ctx context.Context, email string, toStep int, sentAt time.Time) (bool, error) {
	query := r.sb.Update("leads").
		Set("email_sequence_step", toStep).
		Set("last_email_sent_at", sentAt).
		Set("updated_at", sentAt).
		Where(sq.Eq{
			"email":               entity.NormalizeEmail(email),
			"email_sequence_step": toStep - 1,
			"unsubscribed":        false,
		})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// MarkUnsubscribed é um no-op silencioso quando não há lead com o email.
func (r *LeadRepository) MarkUnsubscribed(ctx context.Context, email string) error {
	now := time.Now()
	query := r.sb.Update("leads").
		Set("unsubscribed", true).
		Set("updated_at", now).
		Where(sq.Eq{"email": entity.NormalizeEmail(email)})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	err := row.Scan(
		&lead.ID, &lead.Email, &lead.Name, &lead.Company, &lead.Phone,
		&lead.Scores.Data, &lead.Scores.Process, &lead.Scores.Team,
		&lead.Scores.Strategic, &lead.Scores.Change,
		&lead.TotalScore, &lead.Percentage, &lead.ReadinessLevel,
		&lead.SequenceStep, &lead.LastEmailSentAt, &lead.Unsubscribed,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}
