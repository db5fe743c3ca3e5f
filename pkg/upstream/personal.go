package upstream

import (
	"context"
	"strconv"
)

type personalEnvelope struct {
	Success bool            `json:"success"`
	Data    *PersonalRecord `json:"data"`
}

type lookupEnvelope struct {
	Status     string `json:"status"`
	PersonalID int64  `json:"p_id"`
}

// GetPersonal reads the personal record keyed by user_id. A missing record is
// (nil, nil): the backend signals absence with success:false or an empty data
// object rather than an error.
func (c *Client) GetPersonal(ctx context.Context, userID string) (*PersonalRecord, error) {
	c.log(ctx, "request", "get_personal", map[string]any{"user_id": userID})

	var envelope personalEnvelope
	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParam("userID", userID).
		SetResult(&envelope).
		Get(pathGetPersonal)
	if err != nil {
		c.log(ctx, "error", "get_personal", map[string]any{"error": err.Error()})
		return nil, fetchError(err, "get personal")
	}
	if isAbsent(resp.StatusCode()) {
		c.log(ctx, "response", "get_personal", map[string]any{"found": false})
		return nil, nil
	}
	if !resp.IsSuccess() {
		err := statusError(resp.StatusCode())
		c.log(ctx, "error", "get_personal", map[string]any{"error": err.Error()})
		return nil, fetchError(err, "get personal")
	}
	if !envelope.Success || envelope.Data == nil || envelope.Data.ID == 0 {
		c.log(ctx, "response", "get_personal", map[string]any{"found": false})
		return nil, nil
	}

	c.log(ctx, "response", "get_personal", map[string]any{
		"found":       true,
		"personal_id": envelope.Data.ID,
	})
	return envelope.Data, nil
}

// LookupPersonalID consults the lightweight id-lookup endpoint. Returns zero
// when no record exists.
func (c *Client) LookupPersonalID(ctx context.Context, userID string) (int64, error) {
	c.log(ctx, "request", "lookup_personal_id", map[string]any{"user_id": userID})

	var envelope lookupEnvelope
	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParam("userID", userID).
		SetResult(&envelope).
		Get(pathLookupPersonalID)
	if err != nil {
		c.log(ctx, "error", "lookup_personal_id", map[string]any{"error": err.Error()})
		return 0, fetchError(err, "lookup personal id")
	}
	if isAbsent(resp.StatusCode()) {
		return 0, nil
	}
	if !resp.IsSuccess() {
		err := statusError(resp.StatusCode())
		c.log(ctx, "error", "lookup_personal_id", map[string]any{"error": err.Error()})
		return 0, fetchError(err, "lookup personal id")
	}
	if envelope.Status != "success" || envelope.PersonalID == 0 {
		return 0, nil
	}

	c.log(ctx, "response", "lookup_personal_id", map[string]any{"personal_id": envelope.PersonalID})
	return envelope.PersonalID, nil
}

// UpsertPersonal posts scalar fields and an optional profile image against the
// shared personal/employment/hostel resource, keyed by user_id. The response
// carries only a success flag; it is not trusted to echo the record id.
func (c *Client) UpsertPersonal(ctx context.Context, userID string, fields map[string]string, profile *FileUpload) error {
	c.log(ctx, "request", "upsert_personal", map[string]any{
		"user_id":     userID,
		"field_count": len(fields),
		"has_profile": profile != nil,
	})

	form := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		form[k] = v
	}
	form["user_id"] = userID

	req := c.rest.R().
		SetContext(ctx).
		SetMultipartFormData(form)
	if profile != nil {
		req.SetMultipartField("profile", profile.Name, profile.ContentType, profile.Reader)
	}

	var envelope successEnvelope
	resp, err := req.SetResult(&envelope).Post(pathUpsertPersonal)
	if err != nil {
		c.log(ctx, "error", "upsert_personal", map[string]any{"error": err.Error()})
		return submitError(err, "upsert personal")
	}
	if !resp.IsSuccess() {
		err := statusError(resp.StatusCode())
		c.log(ctx, "error", "upsert_personal", map[string]any{"error": err.Error()})
		return submitError(err, "upsert personal")
	}
	if !envelope.Success {
		err := backendRejection(envelope.Message)
		c.log(ctx, "error", "upsert_personal", map[string]any{"error": err.Error()})
		return submitError(err, "upsert personal")
	}

	c.log(ctx, "response", "upsert_personal", map[string]any{"success": true})
	return nil
}

func formatPersonalID(personalID int64) string {
	return strconv.FormatInt(personalID, 10)
}
