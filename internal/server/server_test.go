package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	auditdomain "github.com/roomledger/roomledger/internal/audit/domain"
	"github.com/roomledger/roomledger/internal/config"
	metricdomain "github.com/roomledger/roomledger/internal/metric/domain"
	"github.com/roomledger/roomledger/internal/observability"
	"github.com/roomledger/roomledger/internal/observability/metrics"
	summarydomain "github.com/roomledger/roomledger/internal/summary/domain"
	"github.com/roomledger/roomledger/pkg/db/pagination"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubMetricService struct {
	submitRecord *metricdomain.Record
	submitErr    error
	updateErr    error
	getRecord    *metricdomain.Record
	getErr       error
	listResp     *metricdomain.ListResponse

	gotActorID snowflake.ID
}

func (s *stubMetricService) Submit(_ context.Context, actorID snowflake.ID, _ metricdomain.CreateRequest) (*metricdomain.Record, error) {
	s.gotActorID = actorID
	return s.submitRecord, s.submitErr
}

func (s *stubMetricService) Update(_ context.Context, _ snowflake.ID, _ metricdomain.UpdateRequest) (*metricdomain.Record, error) {
	return s.getRecord, s.updateErr
}

func (s *stubMetricService) Get(_ context.Context, _ snowflake.ID) (*metricdomain.Record, error) {
	return s.getRecord, s.getErr
}

func (s *stubMetricService) List(_ context.Context, _ metricdomain.ListRequest) (*metricdomain.ListResponse, error) {
	if s.listResp != nil {
		return s.listResp, nil
	}
	return &metricdomain.ListResponse{
		Data:     []metricdomain.Record{},
		PageInfo: pagination.PageInfo{Page: 1, PageSize: 50},
	}, nil
}

type stubSummaryService struct{}

func (stubSummaryService) Monthly(context.Context, summarydomain.Request) (*summarydomain.Response, error) {
	return &summarydomain.Response{Data: []summarydomain.MonthlySummary{}}, nil
}

type stubAuditService struct{}

func (stubAuditService) Record(context.Context, *gorm.DB, *auditdomain.Entry) error { return nil }

func (stubAuditService) List(context.Context, auditdomain.ListRequest) (*auditdomain.ListResponse, error) {
	return &auditdomain.ListResponse{
		Data:     []auditdomain.Entry{},
		PageInfo: pagination.PageInfo{Page: 1, PageSize: 50},
	}, nil
}

func newTestServer(t *testing.T, svc metricdomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stats, err := metrics.NewHTTPMetrics(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}

	return New(Params{
		Cfg:        config.Config{HTTPPort: "0"},
		ObsCfg:     observability.Config{},
		Log:        zap.NewNop(),
		HTTPStats:  stats,
		MetricSvc:  svc,
		SummarySvc: stubSummaryService{},
		AuditSvc:   stubAuditService{},
	})
}

func do(s *Server, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, rec.Body.String())
	}
	return resp.Error
}

func TestSubmitRequiresActorHeader(t *testing.T) {
	s := newTestServer(t, &stubMetricService{})

	rec := do(s, http.MethodPost, "/api/v1/metrics", `{}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want 401", rec.Code)
	}
	if body := decodeError(t, rec); body.Type != "unauthorized" {
		t.Fatalf("error type: %q", body.Type)
	}
}

func TestSubmitRejectsMalformedActorHeader(t *testing.T) {
	s := newTestServer(t, &stubMetricService{})

	rec := do(s, http.MethodPost, "/api/v1/metrics", `{}`, map[string]string{"X-Actor-Id": "not-a-number"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want 401", rec.Code)
	}
}

func TestSubmitReturnsFieldErrors(t *testing.T) {
	svc := &stubMetricService{
		submitErr: &metricdomain.ValidationFailedError{Errors: []metricdomain.FieldError{
			{Field: "rooms_sold", Code: "capacity_exceeded", Message: "rooms_sold (150) cannot exceed total_room_inventory (100)"},
			{Field: "occupancy_percentage", Code: "occupancy_mismatch", Message: "occupancy_percentage mismatch: expected 150.00, got 90.00"},
		}},
	}
	s := newTestServer(t, svc)

	rec := do(s, http.MethodPost, "/api/v1/metrics", `{"rooms_sold": 150}`, map[string]string{"X-Actor-Id": "12345"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", rec.Code)
	}

	body := decodeError(t, rec)
	if body.Type != "validation_error" || len(body.Errors) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Errors[0].Field != "rooms_sold" {
		t.Fatalf("first error: %+v", body.Errors[0])
	}
}

func TestSubmitCreated(t *testing.T) {
	svc := &stubMetricService{submitRecord: &metricdomain.Record{ID: 42, RoomsSold: 45}}
	s := newTestServer(t, svc)

	rec := do(s, http.MethodPost, "/api/v1/metrics", `{"rooms_sold": 45}`, map[string]string{"X-Actor-Id": "12345"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d want 201 (%s)", rec.Code, rec.Body.String())
	}
	if svc.gotActorID != snowflake.ID(12345) {
		t.Fatalf("actor id not propagated: %v", svc.gotActorID)
	}
}

func TestSubmitDuplicateConflict(t *testing.T) {
	s := newTestServer(t, &stubMetricService{submitErr: metricdomain.ErrDuplicateRecord})

	rec := do(s, http.MethodPost, "/api/v1/metrics", `{}`, map[string]string{"X-Actor-Id": "12345"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d want 409", rec.Code)
	}
	if body := decodeError(t, rec); body.Type != "conflict" {
		t.Fatalf("error type: %q", body.Type)
	}
}

func TestGetRecordNotFound(t *testing.T) {
	s := newTestServer(t, &stubMetricService{getErr: metricdomain.ErrRecordNotFound})

	rec := do(s, http.MethodGet, "/api/v1/metrics/12345", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d want 404", rec.Code)
	}
}

func TestGetRecordRejectsBadID(t *testing.T) {
	s := newTestServer(t, &stubMetricService{})

	rec := do(s, http.MethodGet, "/api/v1/metrics/abc", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", rec.Code)
	}
}

func TestListRejectsBadDate(t *testing.T) {
	s := newTestServer(t, &stubMetricService{})

	rec := do(s, http.MethodGet, "/api/v1/metrics?start_date=20260801", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", rec.Code)
	}
	if body := decodeError(t, rec); !strings.Contains(body.Message, "start_date") {
		t.Fatalf("message: %q", body.Message)
	}
}

func TestListOpenToAnonymousReads(t *testing.T) {
	s := newTestServer(t, &stubMetricService{})

	rec := do(s, http.MethodGet, "/api/v1/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200 (%s)", rec.Code, rec.Body.String())
	}
}

func TestSummaryRejectsBadMonth(t *testing.T) {
	s := newTestServer(t, &stubMetricService{})

	rec := do(s, http.MethodGet, "/api/v1/metrics/summary?start_month=2026-8", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &stubMetricService{})

	rec := do(s, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200", rec.Code)
	}
}
