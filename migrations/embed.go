package migrations

import "embed"

// FS SQL-миграции журнала бронирований
//
//go:embed *.sql
var FS embed.FS
