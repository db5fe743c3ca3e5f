package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/pitb-dev/wwh-gateway/pkg/config"
	pkgerrors "github.com/pitb-dev/wwh-gateway/pkg/errors"
	"github.com/pitb-dev/wwh-gateway/pkg/logger"
)

const (
	pathGetPersonal      = "/api/getPersonal/{userID}"
	pathLookupPersonalID = "/api/personal-id/{userID}"
	pathUpsertPersonal   = "/api/personal"
	pathGetGuardian      = "/api/guardian/{personalID}"
	pathUpsertGuardian   = "/api/guardian"
	pathGetDeclaration   = "/api/declaration/{personalID}"
	pathUpsertDecl       = "/api/declaration"
	pathGetAttachments   = "/api/attachments/{personalID}"
	pathUploadAttachment = "/api/attachments"
)

var errLoggerRequired = errors.New("upstream logger is required")

// FileUpload describes a binary field attached to a multipart upsert.
type FileUpload struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// Client wraps the remote registration backend with centralized logging,
// redaction, and error mapping. The backend treats every POST as an upsert
// keyed by the field named in the request; create responses do not echo the
// assigned id, so callers needing an id must re-read (see internal/identity).
type Client struct {
	rest    *resty.Client
	baseURL string
	logger  *logger.Logger
}

// NewClient initializes the upstream wrapper and validates the configuration.
func NewClient(cfg config.UpstreamConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("upstream base url is required")
	}

	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &Client{
		rest:    rest,
		baseURL: baseURL,
		logger:  logg,
	}, nil
}

// BaseURL reports the configured upstream root.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL
}

// Ping probes the upstream root for readiness checks. Any response at all
// counts; only a transport failure is an error.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.rest.R().SetContext(ctx).Get("/")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upstream unreachable")
	}
	return nil
}

type successEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = redact(k, v)
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("upstream %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("upstream %s", phase))
	}
}

func redact(key string, value any) any {
	lower := strings.ToLower(key)
	for _, sensitive := range []string{"cnic", "phone", "mobile", "email", "name", "address", "dob"} {
		if strings.Contains(lower, sensitive) {
			return "[REDACTED]"
		}
	}
	return value
}

// fetchError maps a read failure into the shared taxonomy. Progress callers
// absorb these; pre-fill callers surface them.
func fetchError(err error, op string) error {
	return pkgerrors.Wrap(pkgerrors.CodeFetch, err, fmt.Sprintf("upstream %s failed", op))
}

func submitError(err error, op string) error {
	return pkgerrors.Wrap(pkgerrors.CodeSubmission, err, fmt.Sprintf("upstream %s failed", op))
}

func statusError(status int) error {
	return fmt.Errorf("unexpected status %d", status)
}

func backendRejection(message string) error {
	if strings.TrimSpace(message) == "" {
		message = "backend reported failure"
	}
	return errors.New(message)
}

func isAbsent(status int) bool {
	return status == http.StatusNotFound
}
