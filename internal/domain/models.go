package domain

import "time"

// RawLine is one spreadsheet row as produced by an ingestion reader.
// All required fields are guaranteed present by the reader; numeric fields
// are already parsed.
type RawLine struct {
	OrderID     string  `json:"order_id" bson:"order_id"`
	Product     string  `json:"product" bson:"product"`
	Category    string  `json:"category" bson:"category"`
	Quantity    int64   `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price"`
	Origin      string  `json:"origin" bson:"origin"`
	Destination string  `json:"destination" bson:"destination"`
}

// EnrichedLine is a RawLine with computed monetary values and the tax
// resolution outcome. Monetary fields are rounded to 2 decimal places at
// computation time and never re-rounded afterwards.
type EnrichedLine struct {
	RawLine `bson:",inline"`

	Gross        float64    `json:"gross" bson:"gross"`
	IBSAmount    float64    `json:"ibs_amount" bson:"ibs_amount"`
	CBSAmount    float64    `json:"cbs_amount" bson:"cbs_amount"`
	LineTotal    float64    `json:"line_total" bson:"line_total"`
	RateResolved bool       `json:"rate_resolved" bson:"rate_resolved"`
	Status       LineStatus `json:"status" bson:"status"`
}

// AggregatedOrder is the batch-scoped accumulation of one order's lines.
// Origin and destination come from the first line seen for the order id;
// totals are plain sums of the already-rounded per-line amounts.
type AggregatedOrder struct {
	OrderID     string
	Items       []EnrichedLine
	Total       float64
	IBSTotal    float64
	CBSTotal    float64
	Origin      string
	Destination string
	Status      OrderStatus
}

// TaxBreakdown carries the summed tax components of an order.
type TaxBreakdown struct {
	IBS float64 `json:"ibs" bson:"ibs"`
	CBS float64 `json:"cbs" bson:"cbs"`
}

// OrderDocument is the persisted projection of an AggregatedOrder. It is the
// only entity with a lifecycle beyond a single file-processing run.
type OrderDocument struct {
	OrderID     string         `json:"order_id" bson:"order_id"`
	BatchID     string         `json:"batch_id" bson:"batch_id"`
	ProcessedAt time.Time      `json:"processed_at" bson:"processed_at"`
	Items       []EnrichedLine `json:"items" bson:"items"`
	Total       float64        `json:"total" bson:"total"`
	Taxes       TaxBreakdown   `json:"taxes" bson:"taxes"`
	Origin      string         `json:"origin" bson:"origin"`
	Destination string         `json:"destination" bson:"destination"`
	Status      OrderStatus    `json:"status" bson:"status"`
}
