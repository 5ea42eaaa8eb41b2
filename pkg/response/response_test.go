package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordernest/pkg/errors"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestErrorMapsAppErrorStatusAndCode(t *testing.T) {
	c, rec := newContext()

	err := Error(c, errors.InvalidTransition("delivered", "pending"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TRANSITION")
}

func TestErrorHidesUnknownErrorDetails(t *testing.T) {
	c, rec := newContext()

	err := Error(c, assert.AnError)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestValidationFailedCarriesFieldErrors(t *testing.T) {
	c, rec := newContext()

	err := ValidationFailed(c, map[string]string{
		"quantity": "Quantity must be at most 5",
		"_form":    "This form is not accepting submissions",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.False(t, body.Success)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "Quantity must be at most 5", body.Error.Details["quantity"])
	assert.Contains(t, body.Error.Details, "_form")
}
