package compose

import "math"

// DefaultUnitPrice is the per-segment carrier price used when none is configured.
const DefaultUnitPrice = 0.35

// CostQuote is the estimated price of sending a message once.
type CostQuote struct {
	Segments  int     `json:"segments" yaml:"segments"`
	UnitPrice float64 `json:"unitPrice" yaml:"unitPrice"`
	Total     float64 `json:"cost" yaml:"cost"`
}

// Quote prices text at unitPrice per segment. Negative and NaN prices are
// treated as zero.
func Quote(text string, unitPrice float64) CostQuote {
	return quoteSegments(Segments(text), unitPrice)
}

// Cost returns Segments(text) * unitPrice.
func Cost(text string, unitPrice float64) float64 {
	return Quote(text, unitPrice).Total
}

func quoteSegments(segments int, unitPrice float64) CostQuote {
	if math.IsNaN(unitPrice) || unitPrice < 0 {
		unitPrice = 0
	}
	return CostQuote{
		Segments:  segments,
		UnitPrice: unitPrice,
		Total:     float64(segments) * unitPrice,
	}
}
