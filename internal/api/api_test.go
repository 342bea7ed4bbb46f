package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
)

func init() {
	gin.SetMode(gin.TestMode)
	SetupValidation()
}

type lineInput struct {
	BeerID        *int `json:"beerId" binding:"required"`
	OrderQuantity *int `json:"orderQuantity" binding:"required,gt=0"`
}

type sampleInput struct {
	Name  string           `json:"name" binding:"notblank"`
	Email string           `json:"email" binding:"notblank,email"`
	Price *decimal.Decimal `json:"price" binding:"required,gt=0"`
	Lines []lineInput      `json:"lines" binding:"required,min=1,dive"`
}

func bind(t *testing.T, body string) error {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var in sampleInput
	return BindJSON(c, &in)
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	return verr.Fields
}

func TestBindJSON_Valid(t *testing.T) {
	err := bind(t, `{"name":"Mango","email":"a@b.io","price":12.99,"lines":[{"beerId":1,"orderQuantity":2}]}`)

	assert.NoError(t, err)
}

func TestBindJSON_FieldMessages(t *testing.T) {
	err := bind(t, `{"name":"   ","email":"nope","price":-1,"lines":[{"orderQuantity":0}]}`)

	fields := fieldsOf(t, err)
	assert.Equal(t, "name is required", fields["name"])
	assert.Equal(t, "email must be valid", fields["email"])
	assert.Equal(t, "price must be positive", fields["price"])
	assert.Equal(t, "beerId is required", fields["lines[0].beerId"])
	assert.Equal(t, "orderQuantity must be positive", fields["lines[0].orderQuantity"])
}

func TestBindJSON_EmptyList(t *testing.T) {
	err := bind(t, `{"name":"x","email":"a@b.io","price":1,"lines":[]}`)

	assert.Equal(t, "lines must have at least one entry", fieldsOf(t, err)["lines"])
}

func TestBindJSON_MalformedAndEmptyBody(t *testing.T) {
	assert.Contains(t, fieldsOf(t, bind(t, `{"name":`)), "body")
	assert.Equal(t, "request body is required", fieldsOf(t, bind(t, ``))["body"])
}

func TestPathID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Params = gin.Params{{Key: "id", Value: "17"}}
	id, err := PathID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, 17, id)

	for _, raw := range []string{"abc", "0", "-3"} {
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, err := PathID(c, "id")
		assert.Contains(t, fieldsOf(t, err), "id", raw)
	}
}

func TestNewProblem(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"not found", fmt.Errorf("wrapped: %w", apperr.NotFound("Customer", 3)), http.StatusNotFound, problemTypeBase + "not-found"},
		{"validation", apperr.Validation("upc", "upc is required"), http.StatusBadRequest, problemTypeBase + "validation"},
		{"conflict", apperr.Conflict("Beer is still referenced", nil), http.StatusConflict, problemTypeBase + "conflict"},
		{"internal", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, problemTypeBase + "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProblem(tt.err)
			assert.Equal(t, tt.wantStatus, p.Status)
			assert.Equal(t, tt.wantType, p.Type)
			assert.False(t, p.Timestamp.IsZero())
		})
	}
}

func TestNewProblem_InternalHidesDetail(t *testing.T) {
	p := NewProblem(fmt.Errorf("query beers: %w", errors.New("password authentication failed")))

	assert.Equal(t, "An unexpected error occurred", p.Detail)
	assert.Equal(t, "errorString", p.Exception)
	assert.NotContains(t, p.Detail, "password")
}

func newTestRouter(h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware(), ErrorHandler())
	r.GET("/widgets", h)
	return r
}

func TestErrorHandler_RendersProblem(t *testing.T) {
	r := newTestRouter(func(c *gin.Context) {
		_ = c.Error(apperr.NotFound("Beer", 99))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, problemContentType, w.Header().Get("Content-Type"))

	var p Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Beer not found with ID: 99", p.Detail)
	assert.Equal(t, "Entity Not Found", p.Title)
	assert.True(t, strings.HasPrefix(p.Instance, "/widgets#"))
}

func TestRecovery_RendersInternalProblem(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(), RequestIDMiddleware(), ErrorHandler())
	r.GET("/widgets", func(c *gin.Context) {
		panic("secret connection string")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, problemContentType, w.Header().Get("Content-Type"))

	var p Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Internal Server Error", p.Title)
	assert.Equal(t, "An unexpected error occurred", p.Detail)
	assert.Equal(t, "PanicError", p.Exception)
	assert.True(t, strings.HasPrefix(p.Instance, "/widgets#"))
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestErrorHandler_LeavesSuccessAlone(t *testing.T) {
	r := newTestRouter(func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newTestRouter(func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})

	known := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/widgets", nil)
	req.Header.Set(RequestIDHeader, known)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, known, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/widgets", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}
