package caelum_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caelo/caelum"
)

func TestNewResponse_defaults(t *testing.T) {
	t.Parallel()

	res := caelum.NewResponse()

	assert.Equal(t, http.StatusOK, res.Status)
	assert.NotNil(t, res.Headers)
	assert.Empty(t, res.Body)
}

func TestRespond(t *testing.T) {
	t.Parallel()

	res := caelum.Respond(http.StatusCreated, caelum.Header{"Location": "/users/1"}, []byte("made"))
	assert.Equal(t, http.StatusCreated, res.Status)
	assert.Equal(t, "/users/1", res.Headers.Get("Location"))
	assert.Equal(t, "made", string(res.Body))

	// Nil headers come back usable.
	res = caelum.Respond(http.StatusOK, nil, nil)
	assert.NotNil(t, res.Headers)
}

func TestResponse_JSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Items []string `json:"items"`
		Total int      `json:"total"`
	}

	res := caelum.NewResponse()
	res.JSON(payload{Items: []string{"a", "b"}, Total: 2})

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "application/json", res.Headers.Get("Content-Type"))
	assert.JSONEq(t, `{"items":["a","b"],"total":2}`, string(res.Body))
}

func TestResponse_JSON_unmarshalableValuePanics(t *testing.T) {
	t.Parallel()

	res := caelum.NewResponse()
	assert.Panics(t, func() {
		res.JSON(make(chan int))
	})
}

func TestResponse_Text(t *testing.T) {
	t.Parallel()

	res := caelum.NewResponse()
	res.Text("salve")

	assert.Equal(t, "text/plain; charset=utf-8", res.Headers.Get("Content-Type"))
	assert.Equal(t, "salve", string(res.Body))
}

func TestResponse_NoContent(t *testing.T) {
	t.Parallel()

	res := caelum.NewResponse()
	res.Text("stale body")
	res.NoContent()

	assert.Equal(t, http.StatusNoContent, res.Status)
	assert.Empty(t, res.Body)
}

func TestResponse_Error(t *testing.T) {
	t.Parallel()

	res := caelum.NewResponse()
	res.Error(http.StatusBadRequest, "Invalid ID")

	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "application/json", res.Headers.Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Invalid ID"}`, string(res.Body))
}

func TestResponse_zeroValueUsable(t *testing.T) {
	t.Parallel()

	// Handlers may receive a zero-value Response from custom dispatchers.
	var res caelum.Response
	res.JSON(map[string]int{"n": 1})

	assert.Equal(t, "application/json", res.Headers.Get("Content-Type"))
}
