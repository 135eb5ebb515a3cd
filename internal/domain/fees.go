package domain

// Fee is one fee-table leaf: the currency and amount charged for a
// (category, region) selection.
// swagger:model Fee
type Fee struct {
	Currency string `json:"currency"`
	Amount   int    `json:"amount"`
}

// feeTable is the static registration fee schedule, category then region.
// Each record freezes its fee at creation time, so later edits here never
// change already-created registrations.
var feeTable = map[string]map[string]Fee{
	"Academia": {
		"ASIA":   {Currency: "USD", Amount: 150},
		"AFRICA": {Currency: "USD", Amount: 120},
		"EUROPE": {Currency: "EUR", Amount: 140},
	},
	"Industry": {
		"ASIA":   {Currency: "USD", Amount: 250},
		"AFRICA": {Currency: "USD", Amount: 200},
		"EUROPE": {Currency: "EUR", Amount: 230},
	},
	"Student": {
		"ASIA":   {Currency: "USD", Amount: 80},
		"AFRICA": {Currency: "USD", Amount: 60},
		"EUROPE": {Currency: "EUR", Amount: 75},
	},
	"Listener": {
		"ASIA":   {Currency: "USD", Amount: 50},
		"AFRICA": {Currency: "USD", Amount: 40},
		"EUROPE": {Currency: "EUR", Amount: 45},
	},
}

// LookupFee resolves the fee for a category/region selection.
// Returns ErrInvalidSelection when either key is unknown.
func LookupFee(category, region string) (Fee, error) {
	regions, ok := feeTable[category]
	if !ok {
		return Fee{}, ErrInvalidSelection
	}
	fee, ok := regions[region]
	if !ok {
		return Fee{}, ErrInvalidSelection
	}
	return fee, nil
}

// FeeTable returns the full fee schedule keyed by category then region.
// The result is a copy so callers cannot mutate the schedule.
func FeeTable() map[string]map[string]Fee {
	out := make(map[string]map[string]Fee, len(feeTable))
	for category, regions := range feeTable {
		m := make(map[string]Fee, len(regions))
		for region, fee := range regions {
			m[region] = fee
		}
		out[category] = m
	}
	return out
}
