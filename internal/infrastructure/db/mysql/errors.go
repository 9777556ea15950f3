package mysql

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/municipio/registro-eventos/internal/core/domain"
)

// MySQL server error numbers the repositories translate.
const (
	errDupEntry          = 1062
	errRowIsReferenced   = 1451
	errNoReferencedRow   = 1452
	errRowIsReferencedV1 = 1217
	errNoReferencedRowV1 = 1216
)

// translate maps constraint violations onto domain errors. dup is returned
// for unique-key violations; other errors pass through unchanged.
func translate(err error, dup error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case errDupEntry:
		if dup != nil {
			return dup
		}
	case errRowIsReferenced, errRowIsReferencedV1:
		return domain.ErrInUse
	case errNoReferencedRow, errNoReferencedRowV1:
		return domain.ErrInvalidReference
	}
	return err
}

// notFound maps sql.ErrNoRows to nf.
func notFound(err, nf error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nf
	}
	return err
}

// checkAffected returns nf when res touched no rows.
func checkAffected(res sql.Result, nf error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return nf
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive LIKE pattern matching q anywhere,
// with LIKE metacharacters in q taken literally.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}
