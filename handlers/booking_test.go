package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"mistriconnect/middleware"
	"mistriconnect/models"
	"mistriconnect/services/booking"
)

// stubBookingService lets each test script the service outcome.
type stubBookingService struct {
	createFn func(ctx context.Context, input booking.CreateInput) (*models.JobRequest, error)
	acceptFn func(ctx context.Context, jobID, providerID string) (*models.JobRequest, error)
	reviewFn func(ctx context.Context, input booking.ReviewInput) error
	cancelFn func(ctx context.Context, jobID, customerID string) error
}

func (s *stubBookingService) Create(ctx context.Context, input booking.CreateInput) (*models.JobRequest, error) {
	return s.createFn(ctx, input)
}

func (s *stubBookingService) Accept(ctx context.Context, jobID, providerID string) (*models.JobRequest, error) {
	return s.acceptFn(ctx, jobID, providerID)
}

func (s *stubBookingService) Reject(ctx context.Context, jobID, providerID string) (*models.JobRequest, error) {
	return nil, fmt.Errorf("not scripted")
}

func (s *stubBookingService) Cancel(ctx context.Context, jobID, customerID string) error {
	return s.cancelFn(ctx, jobID, customerID)
}

func (s *stubBookingService) Review(ctx context.Context, input booking.ReviewInput) error {
	return s.reviewFn(ctx, input)
}

func (s *stubBookingService) ListForCustomer(ctx context.Context, customerID string) ([]models.JobRequest, error) {
	return nil, nil
}

func (s *stubBookingService) ListForProvider(ctx context.Context, providerID string) ([]models.JobRequest, error) {
	return nil, nil
}

// newBookingTestRouter wires the handler behind middleware that injects the
// caller identity, standing in for the JWT middleware.
func newBookingTestRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBookingHandler(svc)

	identified := r.Group("/api/bookings")
	identified.Use(func(c *gin.Context) {
		c.Set(middleware.CtxCustomerID, "cust-1")
		c.Set(middleware.CtxProviderID, "prov-1")
		c.Next()
	})
	identified.POST("", h.CreateJobRequest)
	identified.DELETE("/:jobId", h.CancelJobRequest)
	identified.POST("/:jobId/review", h.ReviewJobRequest)
	identified.PUT("/:jobId/accept", h.AcceptJobRequest)
	return r
}

func TestCreateJobRequestEndpoint(t *testing.T) {
	t.Parallel()

	var captured booking.CreateInput
	svc := &stubBookingService{
		createFn: func(ctx context.Context, input booking.CreateInput) (*models.JobRequest, error) {
			captured = input
			return &models.JobRequest{
				ID:         "job-1",
				CustomerID: input.CustomerID,
				ProviderID: input.ProviderID,
				Status:     models.StatusPending,
			}, nil
		},
	}
	router := newBookingTestRouter(svc)

	body := `{"providerId":"prov-1","description":"Fix sink","date":"2025-03-10","slot":"forenoon","price":500}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if captured.CustomerID != "cust-1" {
		t.Fatalf("expected customer id from identity context, got %q", captured.CustomerID)
	}
	if captured.ProviderID != "prov-1" || captured.Slot != models.SlotForenoon {
		t.Fatalf("unexpected input forwarded to service: %+v", captured)
	}

	var resp struct {
		JobRequest models.JobRequest `json:"jobRequest"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.JobRequest.ID != "job-1" || resp.JobRequest.Status != models.StatusPending {
		t.Fatalf("unexpected job in response: %+v", resp.JobRequest)
	}
}

func TestCreateJobRequestRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	svc := &stubBookingService{
		createFn: func(ctx context.Context, input booking.CreateInput) (*models.JobRequest, error) {
			t.Fatal("service should not be reached for malformed JSON")
			return nil, nil
		},
	}
	router := newBookingTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAcceptJobRequestStatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"slot conflict", booking.ErrSlotConflict, http.StatusConflict},
		{"already decided", booking.ErrInvalidTransition, http.StatusConflict},
		{"someone else's job", booking.ErrUnauthorized, http.StatusForbidden},
		{"unknown job", booking.ErrNotFound, http.StatusNotFound},
		{"storage failure", fmt.Errorf("mongo: connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &stubBookingService{
				acceptFn: func(ctx context.Context, jobID, providerID string) (*models.JobRequest, error) {
					return nil, tc.err
				},
			}
			router := newBookingTestRouter(svc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/api/bookings/job-1/accept", nil)
			router.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tc.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestReviewJobRequestUsesIdentityNotBody(t *testing.T) {
	t.Parallel()

	var captured booking.ReviewInput
	svc := &stubBookingService{
		reviewFn: func(ctx context.Context, input booking.ReviewInput) error {
			captured = input
			return nil
		},
	}
	router := newBookingTestRouter(svc)

	// The body tries to review on behalf of another customer; the handler
	// must take the identity from the auth context instead.
	body := `{"rating":4,"comment":"Great work","customerId":"cust-999"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/job-1/review", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if captured.CustomerID != "cust-1" {
		t.Fatalf("expected identity customer id, got %q", captured.CustomerID)
	}
	if captured.JobID != "job-1" || captured.Rating != 4 {
		t.Fatalf("unexpected review input: %+v", captured)
	}
}

func TestCancelJobRequestEndpoint(t *testing.T) {
	t.Parallel()

	svc := &stubBookingService{
		cancelFn: func(ctx context.Context, jobID, customerID string) error {
			if jobID != "job-1" || customerID != "cust-1" {
				t.Fatalf("unexpected cancel args: %s %s", jobID, customerID)
			}
			return nil
		},
	}
	router := newBookingTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/job-1", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
