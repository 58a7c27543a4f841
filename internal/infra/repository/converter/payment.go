package converter

import (
	"rentcar-backend/internal/domain/payment"
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/pkg/pgconv"
)

func PaymentToInfra(p *payment.Payment) dbq.CreatePaymentParams {
	return dbq.CreatePaymentParams{
		ReservationID: p.ReservationID(),
		Amount:        p.Amount(),
		PaymentType:   string(p.Type()),
		PaymentMethod: string(p.Method()),
		Status:        string(p.Status()),
		TransactionID: p.TransactionID(),
		IsSuccessful:  p.IsSuccessful(),
		FailureReason: pgconv.TextOrNull(p.FailureReason()),
		PaidAt:        pgconv.TimePtrToPgtype(p.PaidAt()),
		CreatedAt:     pgconv.TimeToPgtype(p.CreatedAt()),
	}
}

func PaymentToDomain(row dbq.Payments) *payment.Payment {
	reason := ""
	if row.FailureReason.Valid {
		reason = row.FailureReason.String
	}
	return payment.ReconstructPayment(
		row.ID,
		row.ReservationID,
		row.Amount,
		payment.Type(row.PaymentType),
		payment.Method(row.PaymentMethod),
		payment.Status(row.Status),
		row.TransactionID,
		row.IsSuccessful,
		reason,
		pgconv.TimePtrFromPgtype(row.PaidAt),
		row.CreatedAt.Time,
	)
}
