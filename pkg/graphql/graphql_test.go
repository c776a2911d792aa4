package graphql

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helloSchema(t *testing.T) graphql.Schema {
	t.Helper()
	schema, err := NewSchema(graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{"name": &graphql.ArgumentConfig{Type: graphql.String}},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					name, _ := p.Args["name"].(string)
					return "hello " + name, nil
				},
			},
		},
	}))
	require.NoError(t, err)
	return schema
}

func TestHandlerPost(t *testing.T) {
	h := Handler(helloSchema(t))
	body := `{"query":"query($n:String){ hello(name:$n) }","variables":{"n":"world"}}`

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"hello":"hello world"}}`, w.Body.String())
}

func TestHandlerGet(t *testing.T) {
	h := Handler(helloSchema(t))

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/graphql?query=%7Bhello%7D", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"hello":"hello "}}`, w.Body.String())
}

func TestHandlerRejectsBadRequests(t *testing.T) {
	h := Handler(helloSchema(t))

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":""}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodDelete, "/graphql", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandlerReportsQueryErrorsInBody(t *testing.T) {
	h := Handler(helloSchema(t))

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ nope }"}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"errors"`)
}
