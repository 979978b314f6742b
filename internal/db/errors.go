// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db contains shared database errors and helpers.
package db

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors shared across the package.
var (
	// ErrDuplicate is returned when an insert collides with an existing row.
	ErrDuplicate = errors.New("duplicate record")
	// ErrNotInitialized is returned by read helpers before InitDB has run.
	ErrNotInitialized = errors.New("database not initialized")
)

// MapDBError maps driver-specific constraint violations onto the package
// sentinels so callers can use errors.Is instead of parsing driver messages.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	// modernc.org/sqlite reports constraint failures as plain text, and some
	// paths re-wrap driver errors into strings. Match those by message.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
		return ErrDuplicate
	}
	return err
}
