package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const sessionKVTable = "session_kv"

// sqlite uses "?" placeholders.
var sqliteBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildGetValueQuery(key string) (string, []any, error) {
	return sqliteBuilder.
		Select("value").
		From(sessionKVTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}

func buildSetValueQuery(key, value string, now time.Time) (string, []any, error) {
	return sqliteBuilder.
		Insert(sessionKVTable).
		Columns("key", "value", "updated_at").
		Values(key, value, now).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}

func buildRemoveValueQuery(key string) (string, []any, error) {
	return sqliteBuilder.
		Delete(sessionKVTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}
