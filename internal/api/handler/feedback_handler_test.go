package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/stroyservice/intake-system/internal/core/domain"
	"github.com/stroyservice/intake-system/internal/core/ports"
)

type stubIntakeService struct {
	input  ports.CreateOrderInput
	calls  int
	result *ports.CreateOrderResult
	err    error
}

func (s *stubIntakeService) CreateOrder(_ context.Context, in ports.CreateOrderInput) (*ports.CreateOrderResult, error) {
	s.calls++
	s.input = in
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &ports.CreateOrderResult{Order: domain.Order{ID: "abc123def456"}}, nil
}

func submit(t *testing.T, svc ports.IntakeService, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := NewFeedbackHandler(svc).Submit(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	return rec
}

func TestSubmit(t *testing.T) {
	svc := &stubIntakeService{}
	rec := submit(t, svc, `{"name":"Иван","telephone":"+7 (916) 123-45-67","email":"ivan@example.com","subject":"Вентиляция","message":"Нужен расчёт"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"success"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
	if svc.calls != 1 {
		t.Fatalf("service called %d times, want 1", svc.calls)
	}
	if svc.input.Telephone != "+79161234567" {
		t.Errorf("telephone = %q, want the normalized form", svc.input.Telephone)
	}
	if svc.input.Name != "Иван" {
		t.Errorf("name = %q", svc.input.Name)
	}
}

func TestSubmit_PhoneValidation(t *testing.T) {
	cases := []struct {
		phone string
		want  int
	}{
		{"+79161234567", http.StatusOK},
		{"89161234567", http.StatusOK},
		{"8 (916) 123-45-67", http.StatusOK},
		{"123", http.StatusBadRequest},
		{"+1234567890123", http.StatusBadRequest},
		{"79161234567", http.StatusBadRequest},
		{"", http.StatusBadRequest},
	}

	for _, tc := range cases {
		svc := &stubIntakeService{}
		rec := submit(t, svc, `{"telephone":"`+tc.phone+`"}`)
		if rec.Code != tc.want {
			t.Errorf("phone %q: status = %d, want %d", tc.phone, rec.Code, tc.want)
		}
		if tc.want != http.StatusOK && svc.calls != 0 {
			t.Errorf("phone %q: service must not be called on rejection", tc.phone)
		}
	}
}

func TestSubmit_BadJSON(t *testing.T) {
	svc := &stubIntakeService{}
	rec := submit(t, svc, `{"telephone": not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Некорректный JSON") {
		t.Errorf("body = %s", rec.Body.String())
	}
	if svc.calls != 0 {
		t.Error("service must not be called on a malformed payload")
	}
}

func TestSubmit_PersistFailure(t *testing.T) {
	svc := &stubIntakeService{err: errors.New("disk full")}
	rec := submit(t, svc, `{"telephone":"+79161234567"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Не удалось сохранить заявку") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestSubmit_DuplicateStillSucceeds(t *testing.T) {
	svc := &stubIntakeService{result: &ports.CreateOrderResult{Duplicate: true}}
	rec := submit(t, svc, `{"telephone":"+79161234567"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"success"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct{ in, want string }{
		{"+7 (916) 123-45-67", "+79161234567"},
		{"8-916-123-45-67", "89161234567"},
		{"  +79161234567  ", "+79161234567"},
		{"tel:+79161234567", "+79161234567"},
	}
	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
