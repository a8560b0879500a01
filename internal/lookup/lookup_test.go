package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/mcp-starter/internal/cache"
	"github.com/usestring/mcp-starter/internal/userschema"
	"github.com/usestring/mcp-starter/pkg/client"
	"github.com/usestring/mcp-starter/pkg/types"
)

func sampleUser(id int) types.User {
	return types.User{
		ID:       id,
		Name:     "Leanne Graham",
		Username: "Bret",
		Email:    "Sincere@april.biz",
		Address: types.Address{
			Street:  "Kulas Light",
			Suite:   "Apt. 556",
			City:    "Gwenborough",
			Zipcode: "92998-3874",
			Geo:     types.Geo{Lat: "-37.3159", Lng: "81.1496"},
		},
		Phone:   "1-770-736-8031 x56442",
		Website: "hildegard.org",
		Company: types.Company{
			Name:        "Romaguera-Crona",
			CatchPhrase: "Multi-layered client-server neural-net",
			BS:          "harness real-time e-markets",
		},
	}
}

func userJSON(t *testing.T, u types.User) string {
	t.Helper()
	b, err := json.Marshal(u)
	require.NoError(t, err)
	return string(b)
}

// withoutField returns the JSON of u with a top-level field removed.
func withoutField(t *testing.T, u types.User, field string) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(userJSON(t, u)), &m))
	delete(m, field)
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return string(b)
}

// step is one scripted upstream response. A zero status means 200.
type step struct {
	status int
	body   string
	err    error
}

// scriptedFetcher replays steps in order, repeating the last one.
type scriptedFetcher struct {
	mu    sync.Mutex
	steps []step
	calls int
}

func (f *scriptedFetcher) GetUserRaw(ctx context.Context, userID int) ([]byte, error) {
	f.mu.Lock()
	i := f.calls
	f.calls++
	f.mu.Unlock()

	if i >= len(f.steps) {
		i = len(f.steps) - 1
	}
	st := f.steps[i]
	switch {
	case st.err != nil:
		return nil, fmt.Errorf("getting user %d: %w", userID, st.err)
	case st.status != 0 && st.status != http.StatusOK:
		return nil, fmt.Errorf("getting user %d: %w", userID, &client.APIError{StatusCode: st.status})
	default:
		return []byte(st.body), nil
	}
}

func (f *scriptedFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// waitRecorder records requested delays without sleeping.
type waitRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (w *waitRecorder) wait(ctx context.Context, d time.Duration) error {
	w.mu.Lock()
	w.delays = append(w.delays, d)
	w.mu.Unlock()
	return ctx.Err()
}

func newTestService(f Fetcher, w *waitRecorder, opts ...Option) *Service {
	base := []Option{WithWait(w.wait)}
	return New(f, userschema.MustNew(), append(base, opts...)...)
}

func TestLookup_SuccessFirstAttempt(t *testing.T) {
	for _, id := range []int{1, 2, 17, 1000, 2147483647} {
		t.Run(fmt.Sprint(id), func(t *testing.T) {
			u := sampleUser(id)
			f := &scriptedFetcher{steps: []step{{body: userJSON(t, u)}}}
			w := &waitRecorder{}

			res := newTestService(f, w).Lookup(context.Background(), Request{ID: id})

			assert.False(t, res.IsError)
			assert.Equal(t, KindSuccess, res.Kind)
			assert.Equal(t, 1, res.Attempts)
			assert.Equal(t, 1, f.Calls())
			assert.Empty(t, w.delays)
			require.NotNil(t, res.User)
			assert.Equal(t, id, res.User.ID)

			assert.Equal(t, 1, strings.Count(res.Text, u.Name))
			assert.Equal(t, 1, strings.Count(res.Text, u.Email))
			assert.Equal(t, 1, strings.Count(res.Text, u.Address.City))
		})
	}
}

func TestLookup_NotFoundIsNotRetried(t *testing.T) {
	f := &scriptedFetcher{steps: []step{{status: http.StatusNotFound}}}
	w := &waitRecorder{}

	res := newTestService(f, w).Lookup(context.Background(), Request{ID: 4242})

	assert.True(t, res.IsError)
	assert.Equal(t, KindNotFound, res.Kind)
	assert.Equal(t, 1, f.Calls())
	assert.Empty(t, w.delays)
	assert.Contains(t, res.Text, "4242")
	assert.Contains(t, res.Text, "not found")
}

func TestLookup_RateLimitedThenSuccess(t *testing.T) {
	u := sampleUser(3)
	f := &scriptedFetcher{steps: []step{
		{status: http.StatusTooManyRequests},
		{status: http.StatusTooManyRequests},
		{body: userJSON(t, u)},
	}}
	w := &waitRecorder{}
	svc := newTestService(f, w)

	res := svc.Lookup(context.Background(), Request{ID: 3})

	assert.False(t, res.IsError)
	assert.Equal(t, KindSuccess, res.Kind)
	assert.Equal(t, 3, f.Calls())
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, []time.Duration{svc.backoff.Delay(0), svc.backoff.Delay(1)}, w.delays)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, w.delays)
	assert.Contains(t, res.Text, u.Name)
}

func TestLookup_RateLimitedExhausted(t *testing.T) {
	f := &scriptedFetcher{steps: []step{{status: http.StatusTooManyRequests}}}
	w := &waitRecorder{}

	res := newTestService(f, w).Lookup(context.Background(), Request{ID: 3})

	assert.True(t, res.IsError)
	assert.Equal(t, KindRateLimited, res.Kind)
	assert.Equal(t, 3, f.Calls())
	assert.Len(t, w.delays, 2)
	assert.Contains(t, res.Text, "Rate limit exceeded")
	assert.Nil(t, res.User)
}

func TestLookup_MalformedExhausted(t *testing.T) {
	body := withoutField(t, sampleUser(5), "email")
	f := &scriptedFetcher{steps: []step{{body: body}}}
	w := &waitRecorder{}

	res := newTestService(f, w).Lookup(context.Background(), Request{ID: 5})

	assert.True(t, res.IsError)
	assert.Equal(t, KindMalformed, res.Kind)
	assert.Equal(t, 3, f.Calls())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, w.delays)
	assert.True(t, strings.HasPrefix(res.Text, "Invalid response format: "))
	assert.Contains(t, res.Text, "email")
}

func TestLookup_MalformedThenSuccess(t *testing.T) {
	u := sampleUser(6)
	f := &scriptedFetcher{steps: []step{
		{body: `{"id": 6}`},
		{body: userJSON(t, u)},
	}}
	w := &waitRecorder{}

	res := newTestService(f, w).Lookup(context.Background(), Request{ID: 6})

	assert.False(t, res.IsError)
	assert.Equal(t, 2, f.Calls())
	assert.Equal(t, []time.Duration{time.Second}, w.delays)
}

func TestLookup_StatusErrorExhausted(t *testing.T) {
	f := &scriptedFetcher{steps: []step{{status: http.StatusServiceUnavailable}}}
	w := &waitRecorder{}

	res := newTestService(f, w).Lookup(context.Background(), Request{ID: 8})

	assert.True(t, res.IsError)
	assert.Equal(t, KindTransport, res.Kind)
	assert.Equal(t, 3, f.Calls())
	assert.Equal(t, "Failed to fetch user profile: upstream returned HTTP 503 Service Unavailable", res.Text)
}

func TestLookup_NetworkErrorDoesNotLeakDetail(t *testing.T) {
	f := &scriptedFetcher{steps: []step{{err: errors.New("dial tcp 10.0.0.7:443: connection refused")}}}
	w := &waitRecorder{}

	res := newTestService(f, w).Lookup(context.Background(), Request{ID: 9})

	assert.True(t, res.IsError)
	assert.Equal(t, KindTransport, res.Kind)
	assert.Equal(t, 3, f.Calls())
	assert.Equal(t, "Failed to fetch user profile: upstream request failed", res.Text)
	assert.NotContains(t, res.Text, "10.0.0.7")
}

// slowFetcher blocks until its context ends on the first call, then succeeds.
type slowFetcher struct {
	body  []byte
	calls atomic.Int32
}

func (f *slowFetcher) GetUserRaw(ctx context.Context, userID int) ([]byte, error) {
	if f.calls.Add(1) == 1 {
		<-ctx.Done()
		return nil, fmt.Errorf("executing request: %w", ctx.Err())
	}
	return f.body, nil
}

func TestLookup_AttemptTimeoutIsRetried(t *testing.T) {
	f := &slowFetcher{body: []byte(userJSON(t, sampleUser(10)))}
	w := &waitRecorder{}

	res := newTestService(f, w, WithAttemptTimeout(10*time.Millisecond)).
		Lookup(context.Background(), Request{ID: 10})

	assert.False(t, res.IsError)
	assert.Equal(t, int32(2), f.calls.Load())
	assert.Len(t, w.delays, 1)
}

func TestLookup_AttemptTimeoutExhausted(t *testing.T) {
	f := &slowFetcher{}
	w := &waitRecorder{}

	res := newTestService(f, w, WithAttemptTimeout(5*time.Millisecond), WithMaxAttempts(1)).
		Lookup(context.Background(), Request{ID: 10})

	assert.True(t, res.IsError)
	assert.Equal(t, KindTransport, res.Kind)
	assert.Equal(t, "Failed to fetch user profile: request timed out", res.Text)
}

func TestLookup_CanceledDuringBackoff(t *testing.T) {
	f := &scriptedFetcher{steps: []step{{status: http.StatusTooManyRequests}}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var waits int
	svc := New(f, userschema.MustNew(), WithWait(func(ctx context.Context, d time.Duration) error {
		waits++
		cancel()
		return ctx.Err()
	}))

	res := svc.Lookup(ctx, Request{ID: 11})

	assert.True(t, res.IsError)
	assert.Equal(t, KindCanceled, res.Kind)
	assert.Equal(t, 1, f.Calls())
	assert.Equal(t, 1, waits)
	assert.Contains(t, res.Text, "cancelled")
}

func TestLookup_CanceledBeforeCall(t *testing.T) {
	f := &slowFetcher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newTestService(f, &waitRecorder{}).Lookup(ctx, Request{ID: 12})

	assert.True(t, res.IsError)
	assert.Equal(t, KindCanceled, res.Kind)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestLookup_CacheHitSkipsNetwork(t *testing.T) {
	u := sampleUser(13)
	uc, err := cache.NewUserCache(8)
	require.NoError(t, err)

	f := &scriptedFetcher{steps: []step{{body: userJSON(t, u)}}}
	svc := newTestService(f, &waitRecorder{}, WithCache(uc))

	first := svc.Lookup(context.Background(), Request{ID: 13})
	second := svc.Lookup(context.Background(), Request{ID: 13})

	assert.False(t, first.IsError)
	assert.False(t, second.IsError)
	assert.Equal(t, 1, f.Calls())
	assert.Equal(t, 0, second.Attempts)
	assert.Equal(t, first.Text, second.Text)
}

func TestLookup_FailuresAreNotCached(t *testing.T) {
	uc, err := cache.NewUserCache(8)
	require.NoError(t, err)

	f := &scriptedFetcher{steps: []step{{status: http.StatusNotFound}}}
	svc := newTestService(f, &waitRecorder{}, WithCache(uc))

	svc.Lookup(context.Background(), Request{ID: 14})
	svc.Lookup(context.Background(), Request{ID: 14})

	assert.Equal(t, 2, f.Calls())
	assert.Equal(t, 0, uc.Len())
}

func TestLookup_ExhaustionUnreachable(t *testing.T) {
	valid := userJSON(t, sampleUser(1))
	choices := []step{
		{body: valid},
		{status: http.StatusNotFound},
		{status: http.StatusTooManyRequests},
		{status: http.StatusInternalServerError},
		{err: errors.New("connection reset")},
		{body: `{"id": 1}`},
	}

	for _, a := range choices {
		for _, b := range choices {
			for _, c := range choices {
				f := &scriptedFetcher{steps: []step{a, b, c}}
				res := newTestService(f, &waitRecorder{}).Lookup(context.Background(), Request{ID: 1})

				require.NotEqual(t, KindExhausted, res.Kind)
				require.LessOrEqual(t, f.Calls(), DefaultMaxAttempts)
				require.NotEmpty(t, res.Text)
				require.Equal(t, res.Kind != KindSuccess, res.IsError)
			}
		}
	}
}

func TestNew_ClampsAttemptBudget(t *testing.T) {
	f := &scriptedFetcher{steps: []step{{status: http.StatusTooManyRequests}}}
	svc := newTestService(f, &waitRecorder{}, WithMaxAttempts(0))

	res := svc.Lookup(context.Background(), Request{ID: 1})

	assert.Equal(t, 1, svc.MaxAttempts())
	assert.Equal(t, 1, f.Calls())
	assert.Equal(t, KindRateLimited, res.Kind)
}

func TestLookup_EndToEndOverHTTP(t *testing.T) {
	u := sampleUser(2)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/2", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(u)
	}))
	defer srv.Close()

	w := &waitRecorder{}
	svc := newTestService(client.New(client.WithBaseURL(srv.URL)), w)

	res := svc.Lookup(context.Background(), Request{ID: 2})

	assert.False(t, res.IsError)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, []time.Duration{time.Second}, w.delays)
}

func TestSleep(t *testing.T) {
	assert.NoError(t, sleep(context.Background(), time.Millisecond))
	assert.NoError(t, sleep(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
}
