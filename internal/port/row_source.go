package port

import "ordersvc/internal/domain"

// RowSource defines the contract for readers that turn an order file into an
// ordered sequence of raw lines. Implementations must verify the required
// columns before producing any row (domain.StructuralError) and must reject
// unparsable numeric fields (domain.ValidationError); a row sequence is
// either fully valid or the whole file fails.
type RowSource interface {
	ReadLines(path string) ([]domain.RawLine, error)
}
