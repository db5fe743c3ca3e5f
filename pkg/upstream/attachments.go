package upstream

import (
	"context"
)

type attachmentsEnvelope struct {
	Data []AttachmentRecord `json:"data"`
}

// GetAttachments reads the attachment set keyed by personal_id. Absence is
// (nil, nil); unlike the other reads, this endpoint has no success flag.
func (c *Client) GetAttachments(ctx context.Context, personalID int64) (*AttachmentRecord, error) {
	c.log(ctx, "request", "get_attachments", map[string]any{"personal_id": personalID})

	var envelope attachmentsEnvelope
	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParam("personalID", formatPersonalID(personalID)).
		SetResult(&envelope).
		Get(pathGetAttachments)
	if err != nil {
		c.log(ctx, "error", "get_attachments", map[string]any{"error": err.Error()})
		return nil, fetchError(err, "get attachments")
	}
	if isAbsent(resp.StatusCode()) {
		return nil, nil
	}
	if !resp.IsSuccess() {
		err := statusError(resp.StatusCode())
		c.log(ctx, "error", "get_attachments", map[string]any{"error": err.Error()})
		return nil, fetchError(err, "get attachments")
	}
	if len(envelope.Data) == 0 {
		return nil, nil
	}

	record := envelope.Data[0]
	c.log(ctx, "response", "get_attachments", map[string]any{"found": true})
	return &record, nil
}

// UploadAttachment posts one document into the named slot, keyed by
// personal_id. The slot name doubles as the multipart field name.
func (c *Client) UploadAttachment(ctx context.Context, personalID int64, slot string, file FileUpload) error {
	c.log(ctx, "request", "upload_attachment", map[string]any{
		"personal_id": personalID,
		"slot":        slot,
	})

	var envelope successEnvelope
	resp, err := c.rest.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{"personal_id": formatPersonalID(personalID)}).
		SetMultipartField(slot, file.Name, file.ContentType, file.Reader).
		SetResult(&envelope).
		Post(pathUploadAttachment)
	if err != nil {
		c.log(ctx, "error", "upload_attachment", map[string]any{"error": err.Error()})
		return submitError(err, "upload attachment")
	}
	if !resp.IsSuccess() {
		err := statusError(resp.StatusCode())
		c.log(ctx, "error", "upload_attachment", map[string]any{"error": err.Error()})
		return submitError(err, "upload attachment")
	}
	if !envelope.Success {
		err := backendRejection(envelope.Message)
		c.log(ctx, "error", "upload_attachment", map[string]any{"error": err.Error()})
		return submitError(err, "upload attachment")
	}

	c.log(ctx, "response", "upload_attachment", map[string]any{"success": true, "slot": slot})
	return nil
}
