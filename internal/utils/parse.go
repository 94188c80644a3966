package utils

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// DecodeLoose unmarshals a JSON payload into T, repairing the payload with
// jsonrepair and retrying once when the first attempt fails. Streaming
// backends occasionally emit records with minor defects (truncated
// trailing fields, unquoted keys from proxies); the repair pass recovers
// those instead of dropping the whole record.
func DecodeLoose[T any](payload string) (*T, error) {
	var result T

	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(payload)
		if repairErr != nil {
			return nil, fmt.Errorf("failed to decode payload as %T: %w (repair also failed: %v)", result, err, repairErr)
		}
		if retryErr := json.Unmarshal([]byte(repaired), &result); retryErr != nil {
			return nil, fmt.Errorf("failed to decode repaired payload as %T: %w", result, retryErr)
		}
	}

	return &result, nil
}
