package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(h gin.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, "/items/:id", h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/items/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorResponse(t *testing.T) {
	w := serve(func(c *gin.Context) {
		ErrorResponse(c, errno.ErrProjectClosed)
	}, http.MethodGet, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, errno.ErrProjectClosed.Code, resp.Code)
	assert.Equal(t, errno.ErrProjectClosed.Message, resp.Message)
}

func TestBindErrorMessages(t *testing.T) {
	bind := func(c *gin.Context) {
		var req ProjectCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			ErrorResponse(c, bindError(err))
			return
		}
		SuccessResponse(c, http.StatusOK, "", req)
	}

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantMsg  string
	}{
		{"valid", `{"name":"cats","description":"food","full_amount":10}`, http.StatusOK, ""},
		{"missing name", `{"description":"food","full_amount":10}`, http.StatusUnprocessableEntity, "Name is required"},
		{"long name", `{"name":"` + strings.Repeat("x", 101) + `","description":"food","full_amount":10}`, http.StatusUnprocessableEntity, "Name must be at most 100 characters"},
		{"negative amount", `{"name":"cats","description":"food","full_amount":-5}`, http.StatusUnprocessableEntity, "FullAmount must be greater than 0"},
		{"bad json", `{"name":`, http.StatusUnprocessableEntity, errno.ErrBind.Message},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(bind, http.MethodPost, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, decode(t, w).Message, tt.wantMsg)
		})
	}
}

func TestPathId(t *testing.T) {
	r := gin.New()
	r.GET("/items/:id", func(c *gin.Context) {
		id, err := pathId(c)
		if err != nil {
			ErrorResponse(c, err)
			return
		}
		SuccessResponse(c, http.StatusOK, "", id)
	})

	for path, want := range map[string]int{
		"/items/7":   http.StatusOK,
		"/items/abc": http.StatusUnprocessableEntity,
		"/items/0":   http.StatusUnprocessableEntity,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}
