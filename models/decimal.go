package models

import "github.com/shopspring/decimal"

func init() {
	// Provider and client-site payloads carry amounts as JSON numbers,
	// not strings.
	decimal.MarshalJSONWithoutQuotes = true
}
