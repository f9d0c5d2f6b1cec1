package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"ponewine/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("betamount", validateBetAmount)
	return v
}

// validateBetAmount rejects negative bet amounts; validator's min tag
// cannot see into decimal.Decimal.
func validateBetAmount(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return !d.IsNegative()
}

// ParseSettlePayload normalizes the provider payload into an ordered
// list of settlement batches. The body may be a single batch object,
// an array of them, or either form wrapped under a "req" key.
func ParseSettlePayload(body []byte) ([]models.PoneWineSettleRequest, error) {
	var envelope struct {
		Req json.RawMessage `json:"req"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Req) > 0 {
		body = envelope.Req
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty request body")
	}

	var batches []models.PoneWineSettleRequest
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &batches); err != nil {
			return nil, fmt.Errorf("invalid settlement payload: %w", err)
		}
	} else {
		var single models.PoneWineSettleRequest
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("invalid settlement payload: %w", err)
		}
		batches = []models.PoneWineSettleRequest{single}
	}

	if len(batches) == 0 {
		return nil, fmt.Errorf("no settlement batches provided")
	}

	for i := range batches {
		if err := validate.Struct(&batches[i]); err != nil {
			return nil, fmt.Errorf("batch %d: %w", i, err)
		}
	}

	return batches, nil
}
