package upstream

import (
	"context"
)

type declarationEnvelope struct {
	Success bool                `json:"success"`
	Data    []DeclarationRecord `json:"data"`
}

// GetDeclaration reads the declaration record keyed by personal_id. Absence
// is (nil, nil).
func (c *Client) GetDeclaration(ctx context.Context, personalID int64) (*DeclarationRecord, error) {
	c.log(ctx, "request", "get_declaration", map[string]any{"personal_id": personalID})

	var envelope declarationEnvelope
	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParam("personalID", formatPersonalID(personalID)).
		SetResult(&envelope).
		Get(pathGetDeclaration)
	if err != nil {
		c.log(ctx, "error", "get_declaration", map[string]any{"error": err.Error()})
		return nil, fetchError(err, "get declaration")
	}
	if isAbsent(resp.StatusCode()) {
		return nil, nil
	}
	if !resp.IsSuccess() {
		err := statusError(resp.StatusCode())
		c.log(ctx, "error", "get_declaration", map[string]any{"error": err.Error()})
		return nil, fetchError(err, "get declaration")
	}
	if !envelope.Success || len(envelope.Data) == 0 {
		return nil, nil
	}

	record := envelope.Data[0]
	c.log(ctx, "response", "get_declaration", map[string]any{"found": true})
	return &record, nil
}

// UpsertDeclaration posts the declaration image keyed by personal_id.
func (c *Client) UpsertDeclaration(ctx context.Context, personalID int64, file FileUpload) error {
	c.log(ctx, "request", "upsert_declaration", map[string]any{"personal_id": personalID})

	var envelope successEnvelope
	resp, err := c.rest.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{"personal_id": formatPersonalID(personalID)}).
		SetMultipartField("declaration", file.Name, file.ContentType, file.Reader).
		SetResult(&envelope).
		Post(pathUpsertDecl)
	if err != nil {
		c.log(ctx, "error", "upsert_declaration", map[string]any{"error": err.Error()})
		return submitError(err, "upsert declaration")
	}
	if !resp.IsSuccess() {
		err := statusError(resp.StatusCode())
		c.log(ctx, "error", "upsert_declaration", map[string]any{"error": err.Error()})
		return submitError(err, "upsert declaration")
	}
	if !envelope.Success {
		err := backendRejection(envelope.Message)
		c.log(ctx, "error", "upsert_declaration", map[string]any{"error": err.Error()})
		return submitError(err, "upsert declaration")
	}

	c.log(ctx, "response", "upsert_declaration", map[string]any{"success": true})
	return nil
}
