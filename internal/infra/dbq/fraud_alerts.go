package dbq

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createFraudAlert = `
INSERT INTO fraud_alerts (alert_type, email, user_id, risk_score, reason, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

type CreateFraudAlertParams struct {
	AlertType string
	Email     pgtype.Text
	UserID    pgtype.UUID
	RiskScore int32
	Reason    string
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) CreateFraudAlert(ctx context.Context, db DBTX, arg CreateFraudAlertParams) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, createFraudAlert,
		arg.AlertType,
		arg.Email,
		arg.UserID,
		arg.RiskScore,
		arg.Reason,
		arg.CreatedAt,
	).Scan(&id)
	return id, err
}
