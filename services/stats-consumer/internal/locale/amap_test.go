package locale

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amapServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestAmapResolver_ResolvesProvinceAndCity(t *testing.T) {
	srv := amapServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "1.2.3.4", r.URL.Query().Get("ip"))
		w.Write([]byte(`{"infocode":"10000","province":"Beijing","city":"Beijing","adcode":"110000"}`))
	})

	r := NewAmapResolver("test-key", srv.URL, time.Second)
	loc, err := r.Resolve(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, Locale{Country: "CN", Province: "Beijing", City: "Beijing", Adcode: "110000"}, loc)
	assert.Equal(t, "CN-Beijing-Beijing", loc.String())
}

func TestAmapResolver_EmptyArrayFieldsDegradeToUnknown(t *testing.T) {
	srv := amapServer(t, func(w http.ResponseWriter, r *http.Request) {
		// The API answers "[]" for every field it cannot place, e.g. for
		// foreign or private-range IPs.
		w.Write([]byte(`{"infocode":"10000","province":"[]","city":"[]","adcode":"[]"}`))
	})

	r := NewAmapResolver("test-key", srv.URL, time.Second)
	loc, err := r.Resolve(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, Unknown, loc)
}

func TestAmapResolver_PartialAnswerFillsUnknown(t *testing.T) {
	srv := amapServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"infocode":"10000","province":"Hebei","city":"[]","adcode":""}`))
	})

	r := NewAmapResolver("test-key", srv.URL, time.Second)
	loc, err := r.Resolve(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, "Hebei", loc.Province)
	assert.Equal(t, UnknownValue, loc.City)
	assert.Equal(t, UnknownValue, loc.Adcode)
}

func TestAmapResolver_BadInfoCodeIsAnError(t *testing.T) {
	srv := amapServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"infocode":"10003","province":"","city":""}`))
	})

	r := NewAmapResolver("test-key", srv.URL, time.Second)
	loc, err := r.Resolve(context.Background(), "1.2.3.4")
	require.Error(t, err)
	assert.Equal(t, Unknown, loc)
}

func TestAmapResolver_MalformedBodyIsAnError(t *testing.T) {
	srv := amapServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	})

	r := NewAmapResolver("test-key", srv.URL, time.Second)
	_, err := r.Resolve(context.Background(), "1.2.3.4")
	require.Error(t, err)
}

func TestAmapResolver_HonorsContextDeadline(t *testing.T) {
	started := make(chan struct{})
	srv := amapServer(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})

	r := NewAmapResolver("test-key", srv.URL, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	loc, err := r.Resolve(ctx, "1.2.3.4")
	require.Error(t, err)
	assert.Equal(t, Unknown, loc)
	<-started
}

func TestNoopResolver_AlwaysUnknown(t *testing.T) {
	loc, err := NoopResolver{}.Resolve(context.Background(), "8.8.8.8")
	require.NoError(t, err)
	assert.Equal(t, Unknown, loc)
}
