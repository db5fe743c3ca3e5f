package upstream

import (
	"context"
)

type guardianEnvelope struct {
	Success bool             `json:"success"`
	Data    []GuardianRecord `json:"data"`
}

// GuardianUpsert carries the guardian fields for a JSON upsert keyed by
// personal_id.
type GuardianUpsert struct {
	PersonalID int64 `json:"personal_id"`

	Name         string `json:"gname"`
	Relationship string `json:"relationship"`
	Address      string `json:"gaddress"`
	Mobile       string `json:"gmobile"`
	Occupation   string `json:"goccupation"`
	Email        string `json:"gemail"`

	EmergencyName         string `json:"ename"`
	EmergencyRelationship string `json:"erelationship"`
	EmergencyAddress      string `json:"eaddress"`
	EmergencyMobile       string `json:"emobile"`
}

// GetGuardian reads the guardian record keyed by personal_id. Absence is
// (nil, nil); the backend wraps rows in an array even though at most one
// exists per personal record.
func (c *Client) GetGuardian(ctx context.Context, personalID int64) (*GuardianRecord, error) {
	c.log(ctx, "request", "get_guardian", map[string]any{"personal_id": personalID})

	var envelope guardianEnvelope
	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParam("personalID", formatPersonalID(personalID)).
		SetResult(&envelope).
		Get(pathGetGuardian)
	if err != nil {
		c.log(ctx, "error", "get_guardian", map[string]any{"error": err.Error()})
		return nil, fetchError(err, "get guardian")
	}
	if isAbsent(resp.StatusCode()) {
		return nil, nil
	}
	if !resp.IsSuccess() {
		err := statusError(resp.StatusCode())
		c.log(ctx, "error", "get_guardian", map[string]any{"error": err.Error()})
		return nil, fetchError(err, "get guardian")
	}
	if !envelope.Success || len(envelope.Data) == 0 {
		return nil, nil
	}

	record := envelope.Data[0]
	c.log(ctx, "response", "get_guardian", map[string]any{"found": true})
	return &record, nil
}

// UpsertGuardian posts the guardian record as JSON keyed by personal_id.
func (c *Client) UpsertGuardian(ctx context.Context, input GuardianUpsert) error {
	c.log(ctx, "request", "upsert_guardian", map[string]any{"personal_id": input.PersonalID})

	var envelope successEnvelope
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(input).
		SetResult(&envelope).
		Post(pathUpsertGuardian)
	if err != nil {
		c.log(ctx, "error", "upsert_guardian", map[string]any{"error": err.Error()})
		return submitError(err, "upsert guardian")
	}
	if !resp.IsSuccess() {
		err := statusError(resp.StatusCode())
		c.log(ctx, "error", "upsert_guardian", map[string]any{"error": err.Error()})
		return submitError(err, "upsert guardian")
	}
	if !envelope.Success {
		err := backendRejection(envelope.Message)
		c.log(ctx, "error", "upsert_guardian", map[string]any{"error": err.Error()})
		return submitError(err, "upsert guardian")
	}

	c.log(ctx, "response", "upsert_guardian", map[string]any{"success": true})
	return nil
}
