package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const settingsTable = "settings"

func buildSelectSettingQuery(key string) (string, []any, error) {
	query, args, err := sq.
		Select("value").
		From(settingsTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpsertSettingQuery(key, value string, now time.Time) (string, []any, error) {
	query, args, err := sq.
		Insert(settingsTable).
		Columns("key", "value", "updated_at").
		Values(key, value, now.UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteSettingQuery(key string) (string, []any, error) {
	query, args, err := sq.
		Delete(settingsTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
