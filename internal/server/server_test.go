package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/auth/password"
	authservice "github.com/mrigajana-makstark/makstarkrepo2/internal/auth/service"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/clock"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/config"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/assets"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/batch"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/render"
	entryservice "github.com/mrigajana-makstark/makstarkrepo2/internal/entry/service"
	pricingservice "github.com/mrigajana-makstark/makstarkrepo2/internal/pricing/service"
	rateservice "github.com/mrigajana-makstark/makstarkrepo2/internal/rate/service"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/token"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubPDFEngine struct {
	err error
}

func (s *stubPDFEngine) Render(ctx context.Context, html string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-stub"), nil
}

type nopAudit struct{}

func (nopAudit) Record(ctx context.Context, actor *string, action, targetType string, targetID *string, metadata map[string]any) {
}

func setupServerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	statements := []string{
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'employee',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE event_rates (
			id INTEGER PRIMARY KEY,
			deliverable TEXT NOT NULL UNIQUE,
			amount NUMERIC NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE day_rates (
			id INTEGER PRIMARY KEY,
			deliverable TEXT NOT NULL UNIQUE,
			amount NUMERIC NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE event_codes (
			id INTEGER PRIMARY KEY,
			event_type TEXT NOT NULL UNIQUE,
			code TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, email, plain, role string) {
	t.Helper()
	hashed, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	err = db.Exec(
		`INSERT INTO users (id, username, email, password_hash, role) VALUES (1, ?, ?, ?, ?)`,
		username, email, hashed, role,
	).Error
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
}

func newTestServer(t *testing.T, db *gorm.DB, engineStub *stubPDFEngine) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	clk := clock.SystemClock{}
	cfg := config.Config{
		Environment:     "test",
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		DemoTokenPrefix: "demo_token_",
		Assets:          config.AssetConfig{FontFamily: "DejaVu Sans"},
	}

	issuer, err := token.NewIssuer(token.IssuerParam{Config: cfg, Clock: clk})
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	renderer := render.NewRenderer(&assets.Assets{FontFamily: cfg.Assets.FontFamily})
	srv := &Server{
		cfg:      cfg,
		log:      log,
		engine:   gin.New(),
		auth:     authservice.NewService(authservice.ServiceParam{DB: db, Log: log}),
		issuer:   issuer,
		rates:    rateservice.NewService(rateservice.ServiceParam{DB: db, Log: log}),
		pricing:  pricingservice.NewService(pricingservice.ServiceParam{Log: log}),
		entries:  entryservice.NewService(entryservice.ServiceParam{Log: log, Clock: clk}),
		renderer: renderer,
		pdf:      engineStub,
		packager: batch.NewPackager(batch.PackagerParam{Renderer: renderer, Engine: engineStub, Log: log}),
		audit:    nopAudit{},
		limiter:  newLoginLimiter(clk, loginRateLimit, loginRateWindow),
	}
	srv.RegisterRoutes()
	return srv
}

func doJSON(srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return out
}

func TestLoginIssuesTokenAndMeResolvesIt(t *testing.T) {
	db := setupServerTestDB(t)
	seedUser(t, db, "admin", "admin@makstark.com", "secret123", "admin")
	srv := newTestServer(t, db, &stubPDFEngine{})

	rec := doJSON(srv, http.MethodPost, "/auth/login", map[string]any{
		"email":    "admin@makstark.com",
		"password": "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	access, _ := body["access_token"].(string)
	if access == "" {
		t.Fatal("expected a non-empty access token")
	}
	if body["token_type"] != "bearer" {
		t.Fatalf("expected bearer token type, got %v", body["token_type"])
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	meRec := httptest.NewRecorder()
	srv.engine.ServeHTTP(meRec, req)
	if meRec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /me, got %d", meRec.Code)
	}
	me := decodeBody(t, meRec)
	if me["username"] != "admin" || me["role"] != "admin" {
		t.Fatalf("unexpected identity: %v", me)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	db := setupServerTestDB(t)
	seedUser(t, db, "admin", "admin@makstark.com", "secret123", "admin")
	srv := newTestServer(t, db, &stubPDFEngine{})

	rec := doJSON(srv, http.MethodPost, "/auth/login", map[string]any{
		"email":    "admin@makstark.com",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["detail"] != "Invalid email or password" {
		t.Fatalf("unexpected detail: %v", body["detail"])
	}
}

func TestTokenLoginReportsBadCredentialsAs400(t *testing.T) {
	db := setupServerTestDB(t)
	srv := newTestServer(t, db, &stubPDFEngine{})

	form := url.Values{"username": {"ghost"}, "password": {"nope"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["detail"] != "Incorrect username or password" {
		t.Fatalf("unexpected detail: %v", body["detail"])
	}
}

func TestMeAcceptsDemoToken(t *testing.T) {
	db := setupServerTestDB(t)
	srv := newTestServer(t, db, &stubPDFEngine{})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer demo_token_anything")
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["username"] != "admin" || body["role"] != "admin" || body["mode"] != "demo" {
		t.Fatalf("unexpected demo identity: %v", body)
	}
}

func TestMeRequiresToken(t *testing.T) {
	db := setupServerTestDB(t)
	srv := newTestServer(t, db, &stubPDFEngine{})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCalculateAmountAppliesRatesAndDiscount(t *testing.T) {
	db := setupServerTestDB(t)
	if err := db.Exec(
		`INSERT INTO event_rates (id, deliverable, amount) VALUES (1, 'Photography (Basic)', 5000)`,
	).Error; err != nil {
		t.Fatalf("insert event rate: %v", err)
	}
	if err := db.Exec(
		`INSERT INTO event_codes (id, event_type, code) VALUES (1, 'Wedding Photography', 'WD')`,
	).Error; err != nil {
		t.Fatalf("insert event code: %v", err)
	}
	srv := newTestServer(t, db, &stubPDFEngine{})

	rec := doJSON(srv, http.MethodPost, "/calculate-amount", map[string]any{
		"eventType":    "Wedding Photography",
		"deliverables": []string{"Photography (Basic)"},
		"discount":     10,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if amount := body["amount"].(float64); amount != 4500 {
		t.Fatalf("expected amount 4500, got %v", amount)
	}
	if body["event_code"] != "MSS2501WD" {
		t.Fatalf("expected event code MSS2501WD, got %v", body["event_code"])
	}
}

func TestCalculateAmountRequiresDeliverables(t *testing.T) {
	db := setupServerTestDB(t)
	srv := newTestServer(t, db, &stubPDFEngine{})

	rec := doJSON(srv, http.MethodPost, "/calculate-amount", map[string]any{
		"eventType":    "Wedding Photography",
		"deliverables": []string{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["detail"] != "No deliverables provided" {
		t.Fatalf("unexpected detail: %v", body["detail"])
	}
}

func TestGenerateOfferPreviewsSalary(t *testing.T) {
	db := setupServerTestDB(t)
	srv := newTestServer(t, db, &stubPDFEngine{})

	cases := []struct {
		name   string
		salary any
		want   float64
		isNull bool
	}{
		{name: "number", salary: 50000, want: 55000},
		// The dashboard's salary field is a text input, so real
		// requests arrive as numeric strings.
		{name: "numeric string", salary: "45000", want: 49500},
		{name: "padded string", salary: " 45000 ", want: 49500},
		{name: "garbage string", salary: "a lot", isNull: true},
		{name: "absent", salary: nil, isNull: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := map[string]any{"name": "Jane Doe"}
			if tc.salary != nil {
				payload["salary"] = tc.salary
			}
			rec := doJSON(srv, http.MethodPost, "/generate-offer", payload)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			body := decodeBody(t, rec)
			if tc.isNull {
				if body["calculated_salary"] != nil {
					t.Fatalf("expected null calculated salary, got %v", body["calculated_salary"])
				}
				return
			}
			calc, ok := body["calculated_salary"].(float64)
			if !ok {
				t.Fatalf("expected numeric calculated salary, got %v", body["calculated_salary"])
			}
			if math.Abs(calc-tc.want) > 0.01 {
				t.Fatalf("expected %v, got %v", tc.want, calc)
			}
		})
	}

	rec := doJSON(srv, http.MethodPost, "/generate-offer", map[string]any{"name": "Jane Doe"})
	if body := decodeBody(t, rec); !strings.Contains(body["message"].(string), "Jane Doe") {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestGenerateOfferPDFDisposition(t *testing.T) {
	db := setupServerTestDB(t)
	srv := newTestServer(t, db, &stubPDFEngine{})

	rec := doJSON(srv, http.MethodPost, "/generate-offer-pdf", map[string]any{
		"name":     "Jane Doe",
		"position": "Editor",
		"salary":   "45000",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=Offer_Letter_Jane_Doe.pdf" {
		t.Fatalf("unexpected disposition: %q", got)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type: %q", ct)
	}

	preview := doJSON(srv, http.MethodPost, "/generate-offer-pdf?preview=true", map[string]any{
		"name": "Jane Doe",
	})
	if got := preview.Header().Get("Content-Disposition"); !strings.HasPrefix(got, "inline;") {
		t.Fatalf("expected inline disposition, got %q", got)
	}
}

func TestProcessEntryDerivesInvoiceMetadata(t *testing.T) {
	db := setupServerTestDB(t)
	srv := newTestServer(t, db, &stubPDFEngine{})

	rec := doJSON(srv, http.MethodPost, "/process-entry", map[string]any{
		"clientName":   "Acme Events",
		"eventName":    "Annual Gala",
		"amount":       "10000",
		"discount":     "10",
		"eventEndDate": "2024-03-12",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["totalAmount"] != "9000.00" {
		t.Fatalf("expected totalAmount 9000.00, got %v", body["totalAmount"])
	}
	if body["taxAmount"] != "1620.00" {
		t.Fatalf("expected taxAmount 1620.00, got %v", body["taxAmount"])
	}
	if body["finalAmount"] != "10620.00" {
		t.Fatalf("expected finalAmount 10620.00, got %v", body["finalAmount"])
	}
	if body["estimatedCompletion"] != "2024-04-11" {
		t.Fatalf("expected completion 2024-04-11, got %v", body["estimatedCompletion"])
	}
	if invoice := body["generatedInvoiceNumber"].(string); !strings.HasPrefix(invoice, "INV-") {
		t.Fatalf("unexpected invoice number: %v", invoice)
	}
}

func TestProcessEntryRequiresClientName(t *testing.T) {
	db := setupServerTestDB(t)
	srv := newTestServer(t, db, &stubPDFEngine{})

	rec := doJSON(srv, http.MethodPost, "/process-entry", map[string]any{
		"eventName": "Annual Gala",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["detail"] != "clientName is required" {
		t.Fatalf("unexpected detail: %v", body["detail"])
	}
}

func TestGenerateEntryPDFStreamsAttachment(t *testing.T) {
	db := setupServerTestDB(t)
	srv := newTestServer(t, db, &stubPDFEngine{})

	rec := doJSON(srv, http.MethodPost, "/generate-entry-pdf", map[string]any{
		"clientName":   "Acme Events",
		"eventName":    "Annual Gala",
		"amount":       "10000",
		"deliverables": []string{"Photography (Basic)"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(disposition, "attachment; filename=ProjectDetails_Acme_Events_INV-") {
		t.Fatalf("unexpected disposition: %q", disposition)
	}
}

func TestBatchZipContainsEveryItem(t *testing.T) {
	db := setupServerTestDB(t)
	srv := newTestServer(t, db, &stubPDFEngine{})

	rec := doJSON(srv, http.MethodPost, "/generate-offer-batch-zip", map[string]any{
		"items": []map[string]any{
			{"name": "Jane Doe"},
			{"name": "John Smith"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=offer_letters.zip" {
		t.Fatalf("unexpected disposition: %q", got)
	}

	reader, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	if len(reader.File) != 2 {
		t.Fatalf("expected 2 archive entries, got %d", len(reader.File))
	}
	if reader.File[0].Name != "Jane_Doe.pdf" || reader.File[1].Name != "John_Smith.pdf" {
		t.Fatalf("unexpected entry names: %s, %s", reader.File[0].Name, reader.File[1].Name)
	}
}

func TestBatchZipRequiresItems(t *testing.T) {
	db := setupServerTestDB(t)
	srv := newTestServer(t, db, &stubPDFEngine{})

	rec := doJSON(srv, http.MethodPost, "/generate-offer-batch-zip", map[string]any{
		"items": []map[string]any{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGeneratePlaceholderPDFRequiresToken(t *testing.T) {
	db := setupServerTestDB(t)
	srv := newTestServer(t, db, &stubPDFEngine{})

	req := httptest.NewRequest(http.MethodGet, "/generate-pdf", nil)
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/generate-pdf", nil)
	req.Header.Set("Authorization", "Bearer demo_token_ok")
	rec = httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("expected a PDF payload")
	}
}

func TestLoginRateLimiting(t *testing.T) {
	db := setupServerTestDB(t)
	srv := newTestServer(t, db, &stubPDFEngine{})
	srv.limiter = newLoginLimiter(clock.SystemClock{}, 2, time.Minute)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = doJSON(srv, http.MethodPost, "/auth/login", map[string]any{
			"email":    "ghost@makstark.com",
			"password": "nope",
		})
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on third attempt, got %d", last.Code)
	}
}
