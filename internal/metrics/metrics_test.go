package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRegistration(t *testing.T) {
	before := testutil.ToFloat64(RegistrationsTotal.WithLabelValues("donor"))
	RecordRegistration("donor")
	assert.Equal(t, before+1, testutil.ToFloat64(RegistrationsTotal.WithLabelValues("donor")))
}

func TestRecordMealOperation(t *testing.T) {
	before := testutil.ToFloat64(MealOperationsTotal.WithLabelValues("create"))
	RecordMealOperation("create")
	RecordMealOperation("create")
	assert.Equal(t, before+2, testutil.ToFloat64(MealOperationsTotal.WithLabelValues("create")))
}

func TestHandlerExposesCounters(t *testing.T) {
	RecordLogin()
	RecordAuthError("invalid_credentials")

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "mow_logins_total")
	assert.Contains(t, body, `mow_auth_errors_total{reason="invalid_credentials"}`)
}
