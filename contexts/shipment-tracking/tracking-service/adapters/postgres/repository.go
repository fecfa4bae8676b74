package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"parceltrack/contexts/shipment-tracking/tracking-service/domain/entities"
	domainerrors "parceltrack/contexts/shipment-tracking/tracking-service/domain/errors"
	"parceltrack/contexts/shipment-tracking/tracking-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	trackingNumberPrefix = "TRK-"
	counterRowID         = "tracking_number"
)

// Repository adapter for PostgreSQL. Shipment mutations and their outbox rows
// commit in one transaction; the tracking counter row is locked FOR UPDATE so
// number generation is serialized with the uniqueness check.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// AutoMigrate creates the tracking tables and seeds the counter row.
func (r *Repository) AutoMigrate() error {
	if err := r.db.AutoMigrate(
		&shipmentModel{},
		&trackingEventModel{},
		&counterModel{},
		&outboxModel{},
	); err != nil {
		return err
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&counterModel{CounterID: counterRowID, Value: 0}).
		Error
}

func (r *Repository) CreateShipment(ctx context.Context, shipment entities.Shipment, outbox ports.OutboxMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shipmentModelFromEntity(shipment)).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrTrackingNumberConflict
			}
			return err
		}
		return tx.Create(outboxModelFromMessage(outbox)).Error
	})
}

func (r *Repository) AppendEvent(ctx context.Context, trackingNumber string, event entities.TrackingEvent, outbox ports.OutboxMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shipment shipmentModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tracking_number = ?", strings.TrimSpace(trackingNumber)).
			First(&shipment).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrShipmentNotFound
			}
			return err
		}

		// Next per-shipment sequence value preserves append order for reads.
		var maxSeq int64
		if err := tx.Model(&trackingEventModel{}).
			Where("tracking_number = ?", shipment.TrackingNumber).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).
			Error; err != nil {
			return err
		}

		row := trackingEventModelFromEntity(shipment.TrackingNumber, maxSeq+1, event)
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return tx.Create(outboxModelFromMessage(outbox)).Error
	})
}

func (r *Repository) GetShipment(ctx context.Context, trackingNumber string) (entities.Shipment, error) {
	var row shipmentModel
	err := r.db.WithContext(ctx).
		Where("tracking_number = ?", strings.TrimSpace(trackingNumber)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Shipment{}, domainerrors.ErrShipmentNotFound
		}
		return entities.Shipment{}, err
	}

	events, err := r.eventsFor(ctx, row.TrackingNumber)
	if err != nil {
		return entities.Shipment{}, err
	}
	return row.toEntity(events), nil
}

func (r *Repository) ListShipments(ctx context.Context) ([]entities.Shipment, error) {
	var rows []shipmentModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Shipment, 0, len(rows))
	for _, row := range rows {
		events, err := r.eventsFor(ctx, row.TrackingNumber)
		if err != nil {
			return nil, err
		}
		items = append(items, row.toEntity(events))
	}
	return items, nil
}

func (r *Repository) NextTrackingNumber(ctx context.Context) (string, error) {
	var number string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counter counterModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("counter_id = ?", counterRowID).
			First(&counter).
			Error
		if err != nil {
			return err
		}

		for {
			counter.Value++
			candidate := formatTrackingNumber(counter.Value)
			var count int64
			if err := tx.Model(&shipmentModel{}).
				Where("tracking_number = ?", candidate).
				Count(&count).
				Error; err != nil {
				return err
			}
			if count == 0 {
				number = candidate
				break
			}
		}

		return tx.Model(&counterModel{}).
			Where("counter_id = ?", counterRowID).
			Update("value", counter.Value).
			Error
	})
	if err != nil {
		return "", err
	}
	return number, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toMessage())
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt,
		}).
		Error
}

func (r *Repository) eventsFor(ctx context.Context, trackingNumber string) ([]entities.TrackingEvent, error) {
	var rows []trackingEventModel
	if err := r.db.WithContext(ctx).
		Where("tracking_number = ?", trackingNumber).
		Order("seq ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	events := make([]entities.TrackingEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEntity())
	}
	return events, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
