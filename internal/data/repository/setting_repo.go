package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"onnrides/internal/data/entity"
	"onnrides/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (*entity.Setting, error)
	GetNumeric(ctx context.Context, key string, fallback float64) (float64, error)
	Upsert(ctx context.Context, key, value string) error
}

type settingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSettingRepository(db database.PgxIface, log *zap.Logger) SettingRepository {
	return &settingRepository{
		db:  db,
		log: log.With(zap.String("repository", "setting")),
	}
}

func (r *settingRepository) Get(ctx context.Context, key string) (*entity.Setting, error) {
	query := `SELECT id, key, value, created_at, updated_at FROM settings WHERE key = $1`

	var setting entity.Setting
	err := r.db.QueryRow(ctx, query, key).Scan(
		&setting.ID,
		&setting.Key,
		&setting.Value,
		&setting.CreatedAt,
		&setting.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find setting",
			zap.Error(err),
			zap.String("key", key),
		)
		return nil, fmt.Errorf("find setting %s: %w", key, err)
	}

	return &setting, nil
}

// GetNumeric reads a numeric setting, falling back to the given value
// when the row is absent or not a number. DB errors still propagate so
// a failing store is not silently read as defaults.
func (r *settingRepository) GetNumeric(ctx context.Context, key string, fallback float64) (float64, error) {
	setting, err := r.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if setting == nil {
		return fallback, nil
	}

	value, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		r.log.Warn("Setting is not numeric, using fallback",
			zap.String("key", key),
			zap.String("value", setting.Value),
		)
		return fallback, nil
	}

	return value, nil
}

func (r *settingRepository) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (id, key, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query, uuid.New(), key, value, time.Now())
	if err != nil {
		r.log.Error("Failed to upsert setting",
			zap.Error(err),
			zap.String("key", key),
		)
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}

	return nil
}
