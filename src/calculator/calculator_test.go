package calculator_test

import (
	"testing"

	"github.com/username/tradefolio/backend/src/calculator"
)

func TestEditPriceRecomputesQuoteFromAmount(t *testing.T) {
	p := calculator.Position{Amount: 3}
	p.EditPrice(1.333)

	if p.Quote != 4.0 {
		t.Errorf("expected quote rounded to 4.00, got %f", p.Quote)
	}
	if p.Amount != 3 {
		t.Errorf("amount must stay fixed, got %f", p.Amount)
	}
}

func TestEditPriceRecomputesAmountFromQuote(t *testing.T) {
	p := calculator.Position{Quote: 100}
	p.EditPrice(3)

	if p.Amount != 33.33333333 {
		t.Errorf("expected amount rounded to 8 places, got %.10f", p.Amount)
	}
	if p.Quote != 100 {
		t.Errorf("quote must stay fixed, got %f", p.Quote)
	}
}

func TestEditPriceWithNoOtherFieldSet(t *testing.T) {
	p := calculator.Position{}
	p.EditPrice(5)

	if p.Price != 5 || p.Amount != 0 || p.Quote != 0 {
		t.Errorf("only price should change, got %+v", p)
	}
}

func TestEditAmount(t *testing.T) {
	p := calculator.Position{Price: 2.5}
	p.EditAmount(4.001)

	if p.Quote != 10.0 {
		t.Errorf("expected quote 10.00, got %f", p.Quote)
	}

	// Without a price the quote is left alone.
	q := calculator.Position{Quote: 7}
	q.EditAmount(2)
	if q.Quote != 7 {
		t.Errorf("expected quote untouched without a price, got %f", q.Quote)
	}
}

func TestEditQuote(t *testing.T) {
	p := calculator.Position{Price: 3}
	p.EditQuote(10)

	if p.Amount != 3.33333333 {
		t.Errorf("expected amount rounded to 8 places, got %.10f", p.Amount)
	}
}

func TestLastEditedFieldWins(t *testing.T) {
	var p calculator.Position
	p.EditPrice(2)
	p.EditAmount(10) // quote becomes 20
	p.EditQuote(30)  // amount becomes 15

	if p.Price != 2 || p.Amount != 15 || p.Quote != 30 {
		t.Errorf("unexpected state after edit sequence: %+v", p)
	}
}

func TestComplete(t *testing.T) {
	amount, quote := calculator.Complete(2, 4, 0)
	if amount != 4 || quote != 8 {
		t.Errorf("expected quote filled in as 8, got amount=%f quote=%f", amount, quote)
	}

	amount, quote = calculator.Complete(3, 0, 10)
	if amount != 3.33333333 || quote != 10 {
		t.Errorf("expected amount filled in as 3.33333333, got amount=%f quote=%f", amount, quote)
	}

	// Both present: keep as given even when inconsistent.
	amount, quote = calculator.Complete(2, 4, 9)
	if amount != 4 || quote != 9 {
		t.Errorf("expected provided values kept, got amount=%f quote=%f", amount, quote)
	}

	// Zero price cannot derive an amount; the quote still derives as 0.
	amount, quote = calculator.Complete(0, 0, 10)
	if amount != 0 || quote != 10 {
		t.Errorf("expected amount left at 0, got amount=%f quote=%f", amount, quote)
	}
}
