package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	RecordSignup()

	handler := Handler()
	require.NotNil(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "warbler_signups_total")
}

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/signup", "302"))
	RecordRequest("POST", "/signup", http.StatusFound, 10*time.Millisecond)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/signup", "302"))
	assert.Equal(t, before+1, after)
}

func TestRecordAuthentication(t *testing.T) {
	okBefore := testutil.ToFloat64(AuthenticationsTotal.WithLabelValues("success"))
	failBefore := testutil.ToFloat64(AuthenticationsTotal.WithLabelValues("failure"))

	RecordAuthentication(true)
	RecordAuthentication(false)
	RecordAuthentication(false)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(AuthenticationsTotal.WithLabelValues("success")))
	assert.Equal(t, failBefore+2, testutil.ToFloat64(AuthenticationsTotal.WithLabelValues("failure")))
}

func TestRecordFollowChangeAndCache(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordFollowChange("follow")
		RecordFollowChange("unfollow")
		RecordCacheHit()
		RecordCacheMiss()
	})
}
