package models

import (
	"fmt"
	"time"
)

type ApplyInterestRequest struct {
	AccountIDs []string `json:"accountIds"`
	StartDate  string   `json:"startDate,omitempty"`
	EndDate    string   `json:"endDate,omitempty"`
}

func (r ApplyInterestRequest) Validate() error {
	if len(r.AccountIDs) == 0 {
		return fmt.Errorf("accountIds is required")
	}
	if _, _, err := r.Period(); err != nil {
		return err
	}
	return nil
}

// Period parses the optional period bounds; zero times mean the service
// defaults to the previous calendar month.
func (r ApplyInterestRequest) Period() (time.Time, time.Time, error) {
	var start, end time.Time
	var err error
	if r.StartDate != "" {
		if start, err = time.Parse(time.RFC3339, r.StartDate); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("startDate must be RFC3339")
		}
	}
	if r.EndDate != "" {
		if end, err = time.Parse(time.RFC3339, r.EndDate); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("endDate must be RFC3339")
		}
	}
	return start, end, nil
}

type ApplyInterestResponse struct {
	Applied map[string]string `json:"applied"`
	Failed  map[string]string `json:"failed,omitempty"`
}
