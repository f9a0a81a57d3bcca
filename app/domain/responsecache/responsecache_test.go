package responsecache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"menlo.ai/creator-insights-gateway/app/infrastructure/cache"
)

func TestFingerprint_IgnoresIncidentalOrdering(t *testing.T) {
	a := Fingerprint("growth_strategy", Params{
		"niche":     "fitness",
		"audience":  "18-24 ",
		"platforms": Set{"tiktok", "instagram"},
		"goals":     []string{"grow", "monetize"},
	}, 3)
	b := Fingerprint("growth_strategy", Params{
		"goals":     []string{"monetize", " grow"},
		"platforms": Set{"instagram", "tiktok"},
		"audience":  "18-24",
		"niche":     " fitness",
	}, 3)
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "v1:growth_strategy:"))
	assert.Len(t, strings.TrimPrefix(a, "v1:growth_strategy:"), 64)
}

func TestFingerprint_DistinguishesInputs(t *testing.T) {
	base := Fingerprint("viral_score", Params{"content": "5 minute abs"}, 1)

	assert.NotEqual(t, base, Fingerprint("viral_score", Params{"content": "10 minute abs"}, 1))
	assert.NotEqual(t, base, Fingerprint("viral_score", Params{"content": "5 minute abs"}, 2))
	assert.NotEqual(t, base, Fingerprint("hashtag_strategy", Params{"content": "5 minute abs"}, 1))
	assert.NotEqual(t,
		Fingerprint("content_calendar", Params{"weeks": List{"a", "b"}}, 1),
		Fingerprint("content_calendar", Params{"weeks": List{"b", "a"}}, 1),
	)
}

func TestFeatureOf(t *testing.T) {
	assert.Equal(t, "market_map", FeatureOf(Fingerprint("market_map", nil, 0)))
	assert.Equal(t, "unknown", FeatureOf("garbage"))
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCache(t *testing.T) (*Cache, *clock, *cache.MemoryCacheService) {
	t.Helper()
	store := cache.NewMemoryCacheService()
	clk := &clock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	return New(store, 15*time.Minute).WithClock(clk.Now), clk, store
}

func TestGetOrCompute_HitSkipsCompute(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache(t)
	fp := Fingerprint("viral_score", Params{"content": "x"}, 1)

	var calls int32
	compute := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return map[string]int{"viral_score": 70}, nil
	}

	first, err := c.GetOrCompute(ctx, fp, compute)
	require.NoError(t, err)
	second, err := c.GetOrCompute(ctx, fp, compute)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls)
	assert.Equal(t, []byte(first), []byte(second))
	assert.JSONEq(t, `{"viral_score": 70}`, string(second))
}

func TestGetOrCompute_ExpiredEntryRecomputedOnce(t *testing.T) {
	ctx := context.Background()
	c, clk, _ := newTestCache(t)
	fp := Fingerprint("market_map", nil, 1)

	var calls int32
	compute := func(ctx context.Context) (any, error) {
		return atomic.AddInt32(&calls, 1), nil
	}

	_, err := c.GetOrCompute(ctx, fp, compute)
	require.NoError(t, err)

	clk.Advance(15 * time.Minute)
	refreshed, err := c.GetOrCompute(ctx, fp, compute)
	require.NoError(t, err)
	assert.Equal(t, "2", string(refreshed))

	again, err := c.GetOrCompute(ctx, fp, compute)
	require.NoError(t, err)
	assert.Equal(t, "2", string(again))
	assert.Equal(t, int32(2), calls)
}

func TestGetOrCompute_ErrorsAreNotStored(t *testing.T) {
	ctx := context.Background()
	c, _, store := newTestCache(t)
	fp := Fingerprint("market_map", nil, 1)
	boom := errors.New("boom")

	_, err := c.GetOrCompute(ctx, fp, func(ctx context.Context) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Len())

	payload, err := c.GetOrCompute(ctx, fp, func(ctx context.Context) (any, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, `"ok"`, string(payload))
}

func TestGetOrCompute_ConcurrentCallersShareComputation(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache(t)
	fp := Fingerprint("content_ideas", Params{"country": "US"}, 1)

	release := make(chan struct{})
	var calls int32
	compute := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []string{"idea"}, nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload, err := c.GetOrCompute(ctx, fp, compute)
			assert.NoError(t, err)
			results[i] = string(payload)
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, `["idea"]`, r)
	}
}

func TestFetch_DecodesPayload(t *testing.T) {
	type score struct {
		Score int `json:"score"`
	}
	ctx := context.Background()
	c, _, _ := newTestCache(t)
	fp := Fingerprint("viral_score", nil, 1)

	got, err := Fetch(ctx, c, fp, func(ctx context.Context) (score, error) { return score{Score: 88}, nil })
	require.NoError(t, err)
	assert.Equal(t, 88, got.Score)

	got, err = Fetch(ctx, c, fp, func(ctx context.Context) (score, error) {
		t.Fatal("compute must not run on a hit")
		return score{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 88, got.Score)
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	c, _, store := newTestCache(t)
	mm := Fingerprint("market_map", nil, 1)
	vs1 := Fingerprint("viral_score", Params{"content": "a"}, 1)
	vs2 := Fingerprint("viral_score", Params{"content": "b"}, 1)
	for _, fp := range []string{mm, vs1, vs2} {
		_, err := c.GetOrCompute(ctx, fp, func(ctx context.Context) (any, error) { return 1, nil })
		require.NoError(t, err)
	}

	require.NoError(t, c.Invalidate(ctx, mm))
	assert.Equal(t, 2, store.Len())

	require.NoError(t, c.InvalidateFeature(ctx, "viral_score"))
	assert.Equal(t, 0, store.Len())

	_, err := c.GetOrCompute(ctx, mm, func(ctx context.Context) (any, error) { return 1, nil })
	require.NoError(t, err)
	require.NoError(t, c.InvalidateAll(ctx))
	assert.Equal(t, 0, store.Len())
}

func TestInvalidateAll_DropsResultOfComputationInFlight(t *testing.T) {
	ctx := context.Background()
	c, _, store := newTestCache(t)
	fp := Fingerprint("growth_strategy", nil, 1)

	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	done := make(chan string)
	go func() {
		payload, err := c.GetOrCompute(ctx, fp, func(ctx context.Context) (any, error) {
			atomic.AddInt32(&calls, 1)
			close(started)
			<-release
			return "stale", nil
		})
		assert.NoError(t, err)
		done <- string(payload)
	}()

	<-started
	require.NoError(t, c.InvalidateAll(ctx))

	// A caller arriving after the invalidation does not join the old computation.
	fresh, err := c.GetOrCompute(ctx, fp, func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, `"fresh"`, string(fresh))

	close(release)
	assert.Equal(t, `"stale"`, <-done)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	// The stale result was not written back, so the next lookup recomputes.
	exists, err := store.Exists(ctx, fp)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInvalidateFeature_DropsResultOfComputationInFlight(t *testing.T) {
	ctx := context.Background()
	c, _, store := newTestCache(t)
	fp := Fingerprint("viral_score", Params{"content": "a"}, 1)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error)
	go func() {
		_, err := c.GetOrCompute(ctx, fp, func(ctx context.Context) (any, error) {
			close(started)
			<-release
			return 1, nil
		})
		done <- err
	}()

	<-started
	require.NoError(t, c.InvalidateFeature(ctx, "viral_score"))
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, 0, store.Len())
}
