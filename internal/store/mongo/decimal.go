package mongo

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money values live as Decimal128 in mongo and as decimal.Decimal in the
// domain. Round-tripping through the string form keeps them exact; at no
// point does a price pass through a binary float.

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert decimal %q: %w", d.String(), err)
	}
	return d128, nil
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	dec, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse stored decimal %q: %w", d.String(), err)
	}
	return dec, nil
}
