package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/mylife-client/internal/logger"
)

// sqlSettingsRepository is the SQLite-backed [SettingsRepository] over the
// "settings" table created by the goose migrations.
type sqlSettingsRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSQLSettingsRepository constructs a [SettingsRepository] on an already
// migrated database.
func NewSQLSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	logger.Debug().Msg("creating sql settings repository")
	return &sqlSettingsRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (r *sqlSettingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := buildSelectSettingQuery(key)
	if err != nil {
		r.logger.Err(err).Str("func", "*sqlSettingsRepository.Get").Msg("error building query")
		return "", false, err
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		r.logger.Err(err).Str("func", "*sqlSettingsRepository.Get").Str("key", key).Msg("error reading setting")
		return "", false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, true, nil
}

func (r *sqlSettingsRepository) Set(ctx context.Context, key, value string) error {
	query, args, err := buildUpsertSettingQuery(key, value, r.now())
	if err != nil {
		r.logger.Err(err).Str("func", "*sqlSettingsRepository.Set").Msg("error building query")
		return err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "*sqlSettingsRepository.Set").Str("key", key).Msg("error writing setting")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sqlSettingsRepository) Delete(ctx context.Context, key string) error {
	query, args, err := buildDeleteSettingQuery(key)
	if err != nil {
		r.logger.Err(err).Str("func", "*sqlSettingsRepository.Delete").Msg("error building query")
		return err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "*sqlSettingsRepository.Delete").Str("key", key).Msg("error deleting setting")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sqlSettingsRepository) Close() error {
	return r.db.Close()
}
