package repository

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
)

var ErrProductNotFound = errors.New("product not found")

func NumericToFloat64(n pgtype.Numeric) (float64, error) {
	val, err := n.Value()
	if err != nil {
		return 0, err
	}
	switch v := val.(type) {
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("unexpected numeric driver type: %T", v)
	}
}

func Float64ToNumeric(f float64) (pgtype.Numeric, error) {
	// Plain decimal form: pgtype.Numeric.Scan rejects exponent notation,
	// which 'g' emits for very small or very large values.
	s := strconv.FormatFloat(f, 'f', -1, 64)

	n := pgtype.Numeric{}
	err := n.Scan(s)
	if err != nil {
		return pgtype.Numeric{}, fmt.Errorf("scan error: %w", err)
	}
	return n, nil
}
