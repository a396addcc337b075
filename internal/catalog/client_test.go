package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(Config{
		BaseURL:        baseURL,
		MaxRetries:     2,
		RetryBaseDelay: time.Millisecond,
		HTTPTimeout:    5 * time.Second,
	}, zerolog.Nop())
}

func pageJSON(t *testing.T, items []PriceRecord, nextLink string) []byte {
	t.Helper()
	out, err := json.Marshal(pricePage{Items: items, NextPageLink: nextLink, Count: len(items)})
	require.NoError(t, err)
	return out
}

func records(names ...string) []PriceRecord {
	rs := make([]PriceRecord, 0, len(names))
	for _, name := range names {
		rs = append(rs, PriceRecord{SkuName: name, RetailPrice: 1, UnitOfMeasure: "1 Hour"})
	}
	return rs
}

// The client must follow NextPageLink continuations and aggregate all
// pages into one ordered result.
func TestFetchFollowsPagination(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/retail/prices":
			assert.Equal(t, "USD", r.URL.Query().Get("currencyCode"))
			assert.Equal(t, "serviceName eq 'Storage'", r.URL.Query().Get("$filter"))
			w.Write(pageJSON(t, records("A", "B"), srv.URL+"/page2"))
		case "/page2":
			w.Write(pageJSON(t, records("C"), ""))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	result, err := testClient(t, srv.URL).Fetch(context.Background(), "serviceName eq 'Storage'", "USD", 10)
	require.NoError(t, err)
	assert.False(t, result.Truncated)
	require.Len(t, result.Records, 3)
	assert.Equal(t, "A", result.Records[0].SkuName)
	assert.Equal(t, "C", result.Records[2].SkuName)
}

// Hitting the item cap with pages still remaining must truncate the
// result and say so.
func TestFetchTruncatesAtMaxItems(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pageJSON(t, records("A", "B", "C"), srv.URL+"/more"))
	}))
	defer srv.Close()

	result, err := testClient(t, srv.URL).Fetch(context.Background(), "f", "USD", 2)
	require.NoError(t, err)
	assert.True(t, result.Truncated)
	assert.Len(t, result.Records, 2)
}

// A full final page with no next link is complete, not truncated.
func TestFetchExactCapNotTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pageJSON(t, records("A", "B"), ""))
	}))
	defer srv.Close()

	result, err := testClient(t, srv.URL).Fetch(context.Background(), "f", "USD", 2)
	require.NoError(t, err)
	assert.False(t, result.Truncated)
	assert.Len(t, result.Records, 2)
}

// Small requests pass the cap to the server via $top.
func TestFetchSendsTopForSmallRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("$top"))
		w.Write(pageJSON(t, records("A"), ""))
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).Fetch(context.Background(), "f", "USD", 5)
	require.NoError(t, err)
}

// Server errors are retried with backoff until the budget runs out;
// a success within the budget recovers.
func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write(pageJSON(t, records("A"), ""))
	}))
	defer srv.Close()

	result, err := testClient(t, srv.URL).Fetch(context.Background(), "f", "USD", 10)
	require.NoError(t, err)
	assert.Len(t, result.Records, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchExhaustedRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).Fetch(context.Background(), "f", "USD", 10)
	require.Error(t, err)

	var transient *TransientError
	require.ErrorAs(t, err, &transient)
	// MaxRetries=2 means 3 attempts total.
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 3, transient.Attempts)
}

// 4xx means the filter was rejected; retrying cannot help.
func TestFetchBadFilterNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"Error":{"Code":"BadRequest"}}`)
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).Fetch(context.Background(), "bogus", "USD", 10)
	require.Error(t, err)

	var badFilter *BadFilterError
	require.ErrorAs(t, err, &badFilter)
	assert.Equal(t, http.StatusBadRequest, badFilter.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

// A malformed page discards everything collected so far: the caller
// gets an error, never a partial view.
func TestFetchMalformedPage(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/retail/prices" {
			w.Write(pageJSON(t, records("A"), srv.URL+"/page2"))
			return
		}
		fmt.Fprint(w, `{"Items": [not json`)
	}))
	defer srv.Close()

	result, err := testClient(t, srv.URL).Fetch(context.Background(), "f", "USD", 10)
	require.Error(t, err)
	assert.Nil(t, result)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestFetchContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := testClient(t, srv.URL).Fetch(ctx, "f", "USD", 10)
	require.Error(t, err)
}
