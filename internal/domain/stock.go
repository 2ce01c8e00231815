package domain

import (
	"fmt"
	"time"
)

// StockChangeMode selects how a direct stock write is interpreted
type StockChangeMode string

const (
	StockChangeSet StockChangeMode = "set"
	StockChangeAdd StockChangeMode = "add"
)

// ParseStockChangeMode validates s
func ParseStockChangeMode(s string) (StockChangeMode, error) {
	switch m := StockChangeMode(s); m {
	case StockChangeSet, StockChangeAdd:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidQuantity, s)
}

// ApplyStockChange writes stock directly, outside any operation. Audited
// writes refuse to leave stock negative. Unaudited writes are applied as
// given. Returns the stock before the write.
func ApplyStockChange(p *Product, mode StockChangeMode, quantity int, audited bool, now time.Time) (int, error) {
	previous := p.Stock

	next := quantity
	if mode == StockChangeAdd {
		next = previous + quantity
	}

	if audited && next < 0 {
		return previous, fmt.Errorf("%w: %s would go to %d", ErrNegativeStock, p.ID, next)
	}

	p.Stock = next
	p.UpdatedAt = now
	return previous, nil
}

// LoggedQuantity is the quantity recorded on the adjustment log entry: the
// size of the change for an overwrite, the input for an add.
func LoggedQuantity(mode StockChangeMode, previous, quantity int) int {
	if mode == StockChangeSet {
		d := quantity - previous
		if d < 0 {
			d = -d
		}
		return d
	}
	return quantity
}
