package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
)

const (
	problemContentType = "application/problem+json"
	problemTypeBase    = "https://api.juniemvc.com/errors/"
)

// Problem is the uniform error body.
type Problem struct {
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Status    int               `json:"status"`
	Detail    string            `json:"detail"`
	Instance  string            `json:"instance,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Errors    map[string]string `json:"errors,omitempty"`
	Exception string            `json:"exception,omitempty"`
}

// NewProblem translates err by category.
func NewProblem(err error) Problem {
	p := Problem{Timestamp: time.Now().UTC()}

	var (
		notFound   *apperr.NotFoundError
		validation *apperr.ValidationError
		conflict   *apperr.ConflictError
	)

	switch {
	case errors.As(err, &notFound):
		p.Status = http.StatusNotFound
		p.Title = "Entity Not Found"
		p.Type = problemTypeBase + "not-found"
		p.Detail = notFound.Error()
	case errors.As(err, &validation):
		p.Status = http.StatusBadRequest
		p.Title = "Validation Error"
		p.Type = problemTypeBase + "validation"
		p.Detail = validation.Detail
		p.Errors = validation.Fields
	case errors.As(err, &conflict):
		p.Status = http.StatusConflict
		p.Title = "Conflict"
		p.Type = problemTypeBase + "conflict"
		p.Detail = conflict.Detail
	default:
		p.Status = http.StatusInternalServerError
		p.Title = "Internal Server Error"
		p.Type = problemTypeBase + "internal"
		p.Detail = "An unexpected error occurred"
		p.Exception = errorCategory(err)
	}

	return p
}

// errorCategory names the innermost error type, never its message.
func errorCategory(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	if err == nil {
		return ""
	}

	t := reflect.TypeOf(err)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return fmt.Sprintf("%T", err)
	}
	return t.Name()
}

// ErrorHandler renders the last error a handler attached with c.Error.
// Handlers never write error bodies themselves.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		writeProblem(c, c.Errors.Last().Err)
	}
}

// PanicError carries the value a handler panicked with.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Recovery turns a handler panic into an internal-error problem body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		writeProblem(c, &PanicError{Value: rec})
		c.Abort()
	})
}

func writeProblem(c *gin.Context, err error) {
	p := NewProblem(err)
	p.Instance = c.Request.URL.Path
	if id := RequestID(c); id != "" {
		p.Instance = p.Instance + "#" + id
	}

	if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
		span.RecordError(err)
	}

	if p.Status >= http.StatusInternalServerError {
		zap.S().Errorf("❌ %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		zap.S().Infof("ℹ️ %s %s -> %d: %v", c.Request.Method, c.Request.URL.Path, p.Status, err)
	}

	c.Header("Content-Type", problemContentType)
	c.JSON(p.Status, p)
}
