package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDataUnavailable reports that the dataset could not be fetched or decoded.
// Callers abort rendering when they see it.
var ErrDataUnavailable = errors.New("data unavailable")

// RawRecord is one entry of monthlyVariance as published upstream.
type RawRecord struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"` // 1-based
	Variance float64 `json:"variance"`
}

// RawDataset is the upstream document. Pointer fields distinguish a missing
// key from a zero value.
type RawDataset struct {
	BaseTemperature *float64     `json:"baseTemperature"`
	MonthlyVariance *[]RawRecord `json:"monthlyVariance"`
}

// Unavailable wraps err so that it matches ErrDataUnavailable.
func Unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDataUnavailable, fmt.Sprintf(format, args...))
}

// ParseDataset decodes an upstream payload into a normalized Dataset: months
// become 0-based and each observation carries its absolute temperature.
func ParseDataset(payload []byte) (Dataset, error) {
	var raw RawDataset
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Dataset{}, Unavailable("decode dataset: %v", err)
	}
	if raw.BaseTemperature == nil {
		return Dataset{}, Unavailable("missing baseTemperature")
	}
	if raw.MonthlyVariance == nil {
		return Dataset{}, Unavailable("missing monthlyVariance")
	}
	if len(*raw.MonthlyVariance) == 0 {
		return Dataset{}, Unavailable("monthlyVariance is empty")
	}

	return NormalizeDataset(*raw.BaseTemperature, *raw.MonthlyVariance), nil
}

// NormalizeDataset builds a Dataset from already-decoded records.
func NormalizeDataset(base float64, records []RawRecord) Dataset {
	obs := make([]Observation, len(records))
	for i, r := range records {
		obs[i] = normalizeRecord(base, r)
	}
	return Dataset{
		BaseTemperature: base,
		Observations:    obs,
		LoadedAt:        clock.Now(),
	}
}

func normalizeRecord(base float64, r RawRecord) Observation {
	return Observation{
		Year:        r.Year,
		Month:       r.Month - 1,
		Variance:    r.Variance,
		Temperature: base + r.Variance,
	}
}
