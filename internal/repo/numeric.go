package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// numeric converts d into a pgx NUMERIC argument without going through float64.
func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// nullNumeric is numeric for a nullable column; an invalid d becomes NULL.
func nullNumeric(d decimal.NullDecimal) pgtype.Numeric {
	if !d.Valid {
		return pgtype.Numeric{}
	}
	return numeric(d.Decimal)
}

var errNonFinite = errors.New("non-finite numeric value")

// toDecimal converts a scanned NOT NULL NUMERIC.
func toDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	d, err := toNullDecimal(n)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !d.Valid {
		return decimal.Decimal{}, errors.New("unexpected NULL numeric")
	}
	return d.Decimal, nil
}

// toNullDecimal converts a scanned nullable NUMERIC.
func toNullDecimal(n pgtype.Numeric) (decimal.NullDecimal, error) {
	if !n.Valid {
		return decimal.NullDecimal{}, nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return decimal.NullDecimal{}, errNonFinite
	}
	return decimal.NewNullDecimal(decimal.NewFromBigInt(n.Int, n.Exp)), nil
}
