package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pitb-dev/wwh-gateway/pkg/config"
	pkgerrors "github.com/pitb-dev/wwh-gateway/pkg/errors"
	"github.com/pitb-dev/wwh-gateway/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	client, err := NewClient(config.UpstreamConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, logg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestGetPersonalFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/getPersonal/user-1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		writeJSON(t, w, map[string]any{
			"success": true,
			"data":    map[string]any{"id": 42, "name": "Ayesha", "job_type": "government"},
		})
	}))

	record, err := client.GetPersonal(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get personal: %v", err)
	}
	if record == nil || record.ID != 42 {
		t.Fatalf("unexpected record %+v", record)
	}
	if record.JobType == nil || *record.JobType != "government" {
		t.Fatalf("sentinel field not decoded: %+v", record)
	}
}

func TestGetPersonalAbsent(t *testing.T) {
	tests := map[string]http.HandlerFunc{
		"404": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
		"success false": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{"success": false})
		},
		"no id": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{"success": true, "data": map[string]any{}})
		},
	}
	for name, handler := range tests {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, handler)
			record, err := client.GetPersonal(context.Background(), "user-1")
			if err != nil {
				t.Fatalf("absence must not be an error: %v", err)
			}
			if record != nil {
				t.Fatalf("expected nil record, got %+v", record)
			}
		})
	}
}

func TestGetPersonalServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.GetPersonal(context.Background(), "user-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeFetch {
		t.Fatalf("expected fetch code, got %v", err)
	}
}

func TestLookupPersonalID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/personal-id/user-1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		writeJSON(t, w, map[string]any{"status": "success", "p_id": 7})
	}))

	id, err := client.LookupPersonalID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected 7, got %d", id)
	}
}

func TestLookupPersonalIDMiss(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"status": "error"})
	}))

	id, err := client.LookupPersonalID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if id != 0 {
		t.Fatalf("expected 0, got %d", id)
	}
}

func TestUpsertPersonalMultipart(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/personal" || r.Method != http.MethodPost {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("user_id"); got != "user-1" {
			t.Fatalf("expected user_id user-1, got %q", got)
		}
		if got := r.FormValue("cnic"); got != "3520212345678" {
			t.Fatalf("cnic field missing, got %q", got)
		}
		file, header, err := r.FormFile("profile")
		if err != nil {
			t.Fatalf("profile part missing: %v", err)
		}
		defer file.Close()
		if header.Filename != "photo.jpg" {
			t.Fatalf("unexpected filename %q", header.Filename)
		}
		writeJSON(t, w, map[string]any{"success": true})
	}))

	profile := &FileUpload{Name: "photo.jpg", ContentType: "image/jpeg", Reader: strings.NewReader("img-bytes")}
	err := client.UpsertPersonal(context.Background(), "user-1", map[string]string{"cnic": "3520212345678"}, profile)
	if err != nil {
		t.Fatalf("upsert personal: %v", err)
	}
}

func TestUpsertPersonalBackendRejection(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"success": false, "message": "duplicate cnic"})
	}))

	err := client.UpsertPersonal(context.Background(), "user-1", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeSubmission {
		t.Fatalf("expected submission code, got %v", err)
	}
	if !strings.Contains(err.Error(), "upsert personal") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestGetGuardianFirstRow(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/guardian/42" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		writeJSON(t, w, map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": 9, "personal_id": 42, "gname": "Akbar"},
			},
		})
	}))

	record, err := client.GetGuardian(context.Background(), 42)
	if err != nil {
		t.Fatalf("get guardian: %v", err)
	}
	if record == nil || record.Name != "Akbar" || record.PersonalID != 42 {
		t.Fatalf("unexpected record %+v", record)
	}
}

func TestUpsertGuardianJSON(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
			t.Fatalf("expected json body, got %q", ct)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["personal_id"] != float64(42) || body["gname"] != "Akbar" {
			t.Fatalf("unexpected body %v", body)
		}
		writeJSON(t, w, map[string]any{"success": true})
	}))

	err := client.UpsertGuardian(context.Background(), GuardianUpsert{PersonalID: 42, Name: "Akbar"})
	if err != nil {
		t.Fatalf("upsert guardian: %v", err)
	}
}

func TestGetAttachmentsNoSuccessFlag(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/attachments/42" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		writeJSON(t, w, map[string]any{
			"data": []map[string]any{
				{"id": 4, "personal_id": 42, "medical": "medical.pdf"},
			},
		})
	}))

	record, err := client.GetAttachments(context.Background(), 42)
	if err != nil {
		t.Fatalf("get attachments: %v", err)
	}
	if record == nil || record.Medical == nil || *record.Medical != "medical.pdf" {
		t.Fatalf("unexpected record %+v", record)
	}
	if !record.HasAny() {
		t.Fatal("expected HasAny true")
	}
}

func TestGetAttachmentsEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"data": []any{}})
	}))

	record, err := client.GetAttachments(context.Background(), 42)
	if err != nil {
		t.Fatalf("get attachments: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %+v", record)
	}
}

func TestUploadAttachmentSlotFieldName(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("personal_id"); got != "42" {
			t.Fatalf("expected personal_id 42, got %q", got)
		}
		file, _, err := r.FormFile("domicile")
		if err != nil {
			t.Fatalf("slot-named part missing: %v", err)
		}
		file.Close()
		writeJSON(t, w, map[string]any{"success": true})
	}))

	file := FileUpload{Name: "domicile.pdf", ContentType: "application/pdf", Reader: strings.NewReader("pdf")}
	if err := client.UploadAttachment(context.Background(), 42, "domicile", file); err != nil {
		t.Fatalf("upload attachment: %v", err)
	}
}

func TestUpsertDeclarationMultipart(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("personal_id"); got != "42" {
			t.Fatalf("expected personal_id 42, got %q", got)
		}
		file, _, err := r.FormFile("declaration")
		if err != nil {
			t.Fatalf("declaration part missing: %v", err)
		}
		file.Close()
		writeJSON(t, w, map[string]any{"success": true})
	}))

	file := FileUpload{Name: "decl.jpg", ContentType: "image/jpeg", Reader: strings.NewReader("jpg")}
	if err := client.UpsertDeclaration(context.Background(), 42, file); err != nil {
		t.Fatalf("upsert declaration: %v", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	if _, err := NewClient(config.UpstreamConfig{BaseURL: ""}, logg); err == nil {
		t.Fatal("expected missing base url error")
	}
	if _, err := NewClient(config.UpstreamConfig{BaseURL: "http://x"}, nil); err == nil {
		t.Fatal("expected missing logger error")
	}
}

// fakeBackend is a stateful upstream: POST /api/personal stores the multipart
// fields and profile filename, GET /api/getPersonal echoes them back.
type fakeBackend struct {
	t       *testing.T
	fields  map[string]string
	profile string
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/personal":
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			f.t.Fatalf("parse multipart: %v", err)
		}
		for key, values := range r.MultipartForm.Value {
			f.fields[key] = values[0]
		}
		if _, header, err := r.FormFile("profile"); err == nil {
			f.profile = header.Filename
		}
		writeJSON(f.t, w, map[string]any{"success": true})
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/getPersonal/"):
		data := map[string]any{"id": 42, "cnic": f.fields["cnic"]}
		if f.profile != "" {
			data["profile"] = f.profile
		}
		writeJSON(f.t, w, map[string]any{"success": true, "data": data})
	default:
		f.t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
	}
}

func TestUpsertPersonalLastWriteWins(t *testing.T) {
	backend := &fakeBackend{t: t, fields: map[string]string{}}
	client := newTestClient(t, backend)
	ctx := context.Background()

	first := &FileUpload{Name: "photo-old.jpg", ContentType: "image/jpeg", Reader: strings.NewReader("old")}
	if err := client.UpsertPersonal(ctx, "user-1", map[string]string{"cnic": "3520212345678"}, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &FileUpload{Name: "photo-new.jpg", ContentType: "image/jpeg", Reader: strings.NewReader("new")}
	if err := client.UpsertPersonal(ctx, "user-1", map[string]string{"cnic": "3520298765432"}, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	record, err := client.GetPersonal(ctx, "user-1")
	if err != nil {
		t.Fatalf("get personal: %v", err)
	}
	if record == nil {
		t.Fatal("expected record after upserts")
	}
	if record.CNIC != "3520298765432" {
		t.Fatalf("expected second cnic to win, got %q", record.CNIC)
	}
	if record.Profile == nil || *record.Profile != "photo-new.jpg" {
		t.Fatalf("expected second profile to win, got %v", record.Profile)
	}
}
