package components

import (
	"rentcar-backend/internal/infra/dbq"
	"rentcar-backend/internal/infra/readstore"
	"rentcar-backend/internal/infra/repository"
	"rentcar-backend/internal/infra/uow"
	"rentcar-backend/internal/usecase/idempotency"
	"rentcar-backend/internal/usecase/queries"
	"rentcar-backend/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// User
		fx.Annotate(
			NewQueries,
			fx.As(new(readstore.UserReadQueries)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		// Reservation
		fx.Annotate(
			NewQueries,
			fx.As(new(readstore.ReservationViewQueries)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
		// Payment
		fx.Annotate(
			NewQueries,
			fx.As(new(readstore.PaymentViewQueries)),
		),
		fx.Annotate(
			readstore.NewPaymentReadStore,
			fx.As(new(queries.PaymentViewRepo)),
		),
	),
)

// Write repositories are created per transaction by the unit of work.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Idempotency ledger, durable tier
		fx.Annotate(
			NewQueries,
			fx.As(new(repository.PaymentRequestQueries)),
		),
		fx.Annotate(
			repository.NewPaymentRequestStore,
			fx.As(new(idempotency.DurableStore)),
		),
	),
)

func NewQueries(_ *pgxpool.Pool) *dbq.Queries {
	return dbq.New()
}

func NewDBTX(pool *pgxpool.Pool) dbq.DBTX {
	return pool
}
