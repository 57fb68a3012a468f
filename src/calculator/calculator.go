// Package calculator models the three mutually-derivable numeric fields of a
// position entry form: unit price, asset amount, and quote currency spent.
// Editing any one field recomputes a second while the third stays fixed
// (last-edited-field wins). Quote values round to 2 decimal places, asset
// amounts to 8.
package calculator

import "github.com/username/tradefolio/backend/src/utils"

const (
	quotePrecision  = 2
	amountPrecision = 8
)

// Position holds the current values of the three fields. A zero value means
// the field has not been filled in yet.
type Position struct {
	Price  float64
	Amount float64
	Quote  float64
}

// EditPrice sets the unit price. With an amount present the quote is
// recomputed from it; otherwise, with a quote present, the amount is.
func (p *Position) EditPrice(price float64) {
	p.Price = price
	if p.Amount != 0 {
		p.Quote = utils.RoundFloat(p.Amount*price, quotePrecision)
	} else if p.Quote != 0 {
		p.Amount = utils.RoundFloat(p.Quote/price, amountPrecision)
	}
}

// EditAmount sets the asset amount and recomputes the quote against the
// current price.
func (p *Position) EditAmount(amount float64) {
	p.Amount = amount
	if p.Price != 0 {
		p.Quote = utils.RoundFloat(amount*p.Price, quotePrecision)
	}
}

// EditQuote sets the quote spent and recomputes the amount against the
// current price.
func (p *Position) EditQuote(quote float64) {
	p.Quote = quote
	if p.Price != 0 {
		p.Amount = utils.RoundFloat(quote/p.Price, amountPrecision)
	}
}

// Complete fills in whichever of amount and quote was omitted, given a unit
// price and at least one of the two. Provided values are kept as-is.
func Complete(price, amount, quote float64) (float64, float64) {
	if amount == 0 && price != 0 {
		amount = utils.RoundFloat(quote/price, amountPrecision)
	}
	if quote == 0 {
		quote = utils.RoundFloat(amount*price, quotePrecision)
	}
	return amount, quote
}
