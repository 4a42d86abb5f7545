package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/saferide/kids-api/internal/api/middleware"
	"github.com/saferide/kids-api/internal/core/domain"
	"github.com/saferide/kids-api/internal/core/ports"
)

type stubChildService struct {
	createFn func(ctx context.Context, guardianID string, in ports.CreateChildInput) (*ports.ChildView, error)
	listFn   func(ctx context.Context, guardianID string) ([]*ports.ChildView, error)
	getFn    func(ctx context.Context, id, guardianID string) (*ports.ChildView, error)
	updateFn func(ctx context.Context, id, guardianID string, changes ports.ChildUpdate) (*ports.ChildView, error)
	deleteFn func(ctx context.Context, id, guardianID string) error
}

func (s *stubChildService) CreateChild(ctx context.Context, guardianID string, in ports.CreateChildInput) (*ports.ChildView, error) {
	return s.createFn(ctx, guardianID, in)
}

func (s *stubChildService) ListMyChildren(ctx context.Context, guardianID string) ([]*ports.ChildView, error) {
	return s.listFn(ctx, guardianID)
}

func (s *stubChildService) GetChild(ctx context.Context, id, guardianID string) (*ports.ChildView, error) {
	return s.getFn(ctx, id, guardianID)
}

func (s *stubChildService) UpdateChild(ctx context.Context, id, guardianID string, changes ports.ChildUpdate) (*ports.ChildView, error) {
	return s.updateFn(ctx, id, guardianID, changes)
}

func (s *stubChildService) DeleteChild(ctx context.Context, id, guardianID string) error {
	return s.deleteFn(ctx, id, guardianID)
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, guardianID string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, guardianID)
	c.Set(middleware.CtxEmail, "guardian@example.com")
	c.Set(middleware.CtxRole, domain.RoleGuardian)
	return c
}

func sampleView(id, guardianID string) *ports.ChildView {
	dob := time.Date(2016, 4, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	return &ports.ChildView{
		ID:                id,
		GuardianID:        guardianID,
		Name:              "Emma",
		DateOfBirth:       dob,
		Age:               7,
		HomeAddress:       "12 Oak Street",
		HomeCoordinates:   domain.GeoPoint{Lng: -99.1332, Lat: 19.4326},
		SchoolName:        "Riverside Elementary",
		SchoolAddress:     "44 River Road",
		SchoolCoordinates: domain.GeoPoint{Lng: -99.1400, Lat: 19.4400},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

const createBody = `{
	"name": "Emma",
	"date_of_birth": "2016-04-10",
	"home_address": "12 Oak Street",
	"home_coordinates": [-99.1332, 19.4326],
	"school_name": "Riverside Elementary",
	"school_address": "44 River Road",
	"school_coordinates": [-99.1400, 19.4400]
}`

func TestChildHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	handler := NewChildHandler(&stubChildService{
		createFn: func(ctx context.Context, guardianID string, in ports.CreateChildInput) (*ports.ChildView, error) {
			if guardianID != "guardian_1" {
				t.Fatalf("guardian id not taken from context: %q", guardianID)
			}
			if in.Name != "Emma" || !in.DateOfBirth.Equal(time.Date(2016, 4, 10, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.HomeCoordinates.Lng != -99.1332 || in.HomeCoordinates.Lat != 19.4326 {
				t.Fatalf("coordinates not decoded as [lng, lat]: %+v", in.HomeCoordinates)
			}
			return sampleView("child_1", guardianID), nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/children", strings.NewReader(createBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "guardian_1")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp childResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "child_1" || resp.Age != 7 || resp.DateOfBirth != "2016-04-10" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.HomeCoordinates) != 2 || resp.HomeCoordinates[0] != -99.1332 {
		t.Fatalf("coordinates not encoded as [lng, lat]: %v", resp.HomeCoordinates)
	}
}

func TestChildHandler_Create_GuardianFromContextNotPayload(t *testing.T) {
	e := newTestEcho()
	handler := NewChildHandler(&stubChildService{
		createFn: func(ctx context.Context, guardianID string, in ports.CreateChildInput) (*ports.ChildView, error) {
			if guardianID != "guardian_real" {
				t.Fatalf("payload guardian id must be ignored, got %q", guardianID)
			}
			return sampleView("child_1", guardianID), nil
		},
	})

	body := strings.Replace(createBody, `"name": "Emma",`, `"name": "Emma", "guardian_id": "guardian_spoofed",`, 1)
	req := httptest.NewRequest(http.MethodPost, "/children", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "guardian_real")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestChildHandler_Create_NoIdentity(t *testing.T) {
	e := newTestEcho()
	handler := NewChildHandler(&stubChildService{
		createFn: func(ctx context.Context, guardianID string, in ports.CreateChildInput) (*ports.ChildView, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/children", strings.NewReader(createBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestChildHandler_Create_MalformedDate(t *testing.T) {
	e := newTestEcho()
	handler := NewChildHandler(&stubChildService{
		createFn: func(ctx context.Context, guardianID string, in ports.CreateChildInput) (*ports.ChildView, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	})

	body := strings.Replace(createBody, "2016-04-10", "10/04/2016", 1)
	req := httptest.NewRequest(http.MethodPost, "/children", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "guardian_1")

	err := handler.Create(c)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestChildHandler_Create_WrongCoordinateArity(t *testing.T) {
	e := newTestEcho()
	handler := NewChildHandler(&stubChildService{
		createFn: func(ctx context.Context, guardianID string, in ports.CreateChildInput) (*ports.ChildView, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	})

	body := strings.Replace(createBody, "[-99.1332, 19.4326]", "[-99.1332]", 1)
	req := httptest.NewRequest(http.MethodPost, "/children", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "guardian_1")

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestChildHandler_ListMine(t *testing.T) {
	e := newTestEcho()
	handler := NewChildHandler(&stubChildService{
		listFn: func(ctx context.Context, guardianID string) ([]*ports.ChildView, error) {
			return []*ports.ChildView{sampleView("child_2", guardianID), sampleView("child_1", guardianID)}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/children/me", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "guardian_1")

	if err := handler.ListMine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []childResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0].ID != "child_2" {
		t.Fatalf("unexpected list: %+v", resp)
	}
}

func TestChildHandler_ListMine_Empty(t *testing.T) {
	e := newTestEcho()
	handler := NewChildHandler(&stubChildService{
		listFn: func(ctx context.Context, guardianID string) ([]*ports.ChildView, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/children/me", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "guardian_1")

	if err := handler.ListMine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty json array, got %q", got)
	}
}

func TestChildHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	handler := NewChildHandler(&stubChildService{
		getFn: func(ctx context.Context, id, guardianID string) (*ports.ChildView, error) {
			return nil, domain.ErrChildNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/children/child_9", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "guardian_1")
	c.SetParamNames("id")
	c.SetParamValues("child_9")

	if err := handler.Get(c); err != domain.ErrChildNotFound {
		t.Fatalf("expected ErrChildNotFound to pass through, got %v", err)
	}
}

func TestChildHandler_Update_PartialFields(t *testing.T) {
	e := newTestEcho()
	handler := NewChildHandler(&stubChildService{
		updateFn: func(ctx context.Context, id, guardianID string, changes ports.ChildUpdate) (*ports.ChildView, error) {
			if id != "child_1" || guardianID != "guardian_1" {
				t.Fatalf("unexpected scope: %s %s", id, guardianID)
			}
			if changes.Name == nil || *changes.Name != "Emma Rose" {
				t.Fatalf("name change missing: %+v", changes)
			}
			if changes.HomeAddress != nil || changes.DateOfBirth != nil || changes.HomeCoordinates != nil {
				t.Fatalf("absent fields must stay nil: %+v", changes)
			}
			v := sampleView(id, guardianID)
			v.Name = "Emma Rose"
			return v, nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/children/child_1", strings.NewReader(`{"name":"Emma Rose"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "guardian_1")
	c.SetParamNames("id")
	c.SetParamValues("child_1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp childResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Name != "Emma Rose" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestChildHandler_Update_CoordinatePair(t *testing.T) {
	e := newTestEcho()
	handler := NewChildHandler(&stubChildService{
		updateFn: func(ctx context.Context, id, guardianID string, changes ports.ChildUpdate) (*ports.ChildView, error) {
			if changes.SchoolCoordinates == nil || changes.SchoolCoordinates.Lng != -98.0 || changes.SchoolCoordinates.Lat != 20.0 {
				t.Fatalf("school coordinates not decoded: %+v", changes.SchoolCoordinates)
			}
			return sampleView(id, guardianID), nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/children/child_1", strings.NewReader(`{"school_coordinates":[-98.0,20.0]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "guardian_1")
	c.SetParamNames("id")
	c.SetParamValues("child_1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestChildHandler_Delete(t *testing.T) {
	e := newTestEcho()
	called := false
	handler := NewChildHandler(&stubChildService{
		deleteFn: func(ctx context.Context, id, guardianID string) error {
			called = true
			if id != "child_1" || guardianID != "guardian_1" {
				t.Fatalf("unexpected scope: %s %s", id, guardianID)
			}
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/children/child_1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "guardian_1")
	c.SetParamNames("id")
	c.SetParamValues("child_1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
