package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type creds struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestJSON(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantErrs bool
		wantErr  bool
	}{
		{"valid", `{"email":"a@b.co","password":"x"}`, false, false},
		{"validation", `{"email":"nope"}`, true, false},
		{"malformed", `{"email":`, false, true},
		{"unknown field", `{"email":"a@b.co","password":"x","admin":true}`, false, true},
		{"too large", `{"email":"` + strings.Repeat("a", defaultMaxBody) + `"}`, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tc.body))
			var dest creds
			errs, err := JSON(httptest.NewRecorder(), req, &dest)

			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrBadRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantErrs, len(errs) > 0)
		})
	}
}
