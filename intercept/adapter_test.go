package intercept_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/sdkmock/intercept"
	"github.com/openkcm/sdkmock/registry"
)

var errForced = errors.New("forced error")

type result struct {
	err  error
	data any
}

func newAdapter(t *testing.T) (*registry.Registry, *intercept.Adapter) {
	t.Helper()

	reg := registry.New()

	return reg, intercept.New(reg)
}

func sendAndCollect(t *testing.T, a *intercept.Adapter, req *intercept.Request) []result {
	t.Helper()

	var got []result

	err := a.Send(t.Context(), req, func(err error, data any) {
		got = append(got, result{err: err, data: data})
	})
	require.NoError(t, err)

	return got
}

func TestAdapter_InstallState(t *testing.T) {
	reg, a := newAdapter(t)

	assert.False(t, a.Installed())
	assert.Same(t, reg, a.Registry())

	a.Uninstall()
	assert.False(t, a.Installed())

	a.Install()
	a.Install()
	assert.True(t, a.Installed())

	a.Uninstall()
	assert.False(t, a.Installed())

	reg.Register("S3", "getObject", nil)
	assert.True(t, a.Installed(), "registering installs the adapter")

	reg.ResetAll()
	assert.False(t, a.Installed(), "reset uninstalls the adapter")
}

func TestAdapter_Intercept_NotInstalled(t *testing.T) {
	_, a := newAdapter(t)

	err := a.Intercept(t.Context(), intercept.NewRequest("S3", "getObject", nil), func(*intercept.Response) {
		t.Fatal("must not complete")
	})

	assert.ErrorIs(t, err, intercept.ErrNotInstalled)
}

func TestAdapter_Intercept_Unmocked(t *testing.T) {
	reg, a := newAdapter(t)
	reg.Register("S3", "getObject", nil)

	err := a.Intercept(t.Context(), intercept.NewRequest("S3", "deleteObject", nil), func(*intercept.Response) {
		t.Fatal("must not complete")
	})

	require.ErrorIs(t, err, intercept.ErrUnmockedOperation)
	assert.Contains(t, err.Error(), "S3")
	assert.Contains(t, err.Error(), "deleteObject")

	var unmocked *intercept.UnmockedOperationError

	require.ErrorAs(t, err, &unmocked)
	assert.Equal(t, "S3", unmocked.Service)
	assert.Equal(t, "deleteObject", unmocked.Operation)
}

func TestAdapter_Intercept_Response(t *testing.T) {
	reg, a := newAdapter(t)
	reg.Register("S3", "getObject", nil).Returns(map[string]string{"what": "yes"})

	req := intercept.NewRequest("S3", "getObject", map[string]string{"Bucket": "what"})
	req.Transport = intercept.Transport{SDK: "test", Region: "eu-west-1"}

	var responses []*intercept.Response

	err := a.Intercept(t.Context(), req, func(resp *intercept.Response) {
		responses = append(responses, resp)
	})
	require.NoError(t, err)
	require.Len(t, responses, 1)

	resp := responses[0]
	assert.Same(t, req, resp.Request)
	assert.Equal(t, map[string]string{"what": "yes"}, resp.Data)
	assert.NoError(t, resp.Error)
	assert.Zero(t, resp.RetryCount)
	assert.Zero(t, resp.RedirectCount)
	assert.NotEmpty(t, req.ID)
}

func TestAdapter_Send(t *testing.T) {
	tests := []struct {
		name     string
		override registry.OverrideFunc
		want     []result
	}{
		{
			name: "Synchronous return completes with data",
			override: func(_ context.Context, _ any, _ registry.Callback) any {
				return "hello"
			},
			want: []result{{data: "hello"}},
		},
		{
			name: "Explicit callback completes with data",
			override: func(_ context.Context, _ any, done registry.Callback) any {
				done(nil, "hello")
				return nil
			},
			want: []result{{data: "hello"}},
		},
		{
			name: "Explicit callback error propagates verbatim",
			override: func(_ context.Context, _ any, done registry.Callback) any {
				done(errForced, "partial")
				return nil
			},
			want: []result{{err: errForced, data: "partial"}},
		},
		{
			name: "Callback then return completes once",
			override: func(_ context.Context, _ any, done registry.Callback) any {
				done(nil, "first")
				return "second"
			},
			want: []result{{data: "first"}},
		},
		{
			name: "Double callback completes once",
			override: func(_ context.Context, _ any, done registry.Callback) any {
				done(nil, "first")
				done(errForced, nil)
				return nil
			},
			want: []result{{data: "first"}},
		},
		{
			name:     "Nil override completes empty",
			override: nil,
			want:     []result{{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, a := newAdapter(t)
			reg.Register("S3", "putObject", tt.override)

			got := sendAndCollect(t, a, intercept.NewRequest("S3", "putObject", map[string]string{"test": "test"}))

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdapter_Send_Unmocked(t *testing.T) {
	reg, a := newAdapter(t)
	reg.Register("S3", "getObject", nil)

	err := a.Send(t.Context(), intercept.NewRequest("S3", "deleteObject", nil), func(error, any) {
		t.Fatal("must not complete")
	})

	assert.ErrorIs(t, err, intercept.ErrUnmockedOperation)
}

func cancelledContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	return ctx
}

func TestAdapter_Send_CancelledContext(t *testing.T) {
	t.Run("Already cancelled context still completes once", func(t *testing.T) {
		reg, a := newAdapter(t)
		entry := reg.Register("S3", "getObject", nil).Returns("hello")

		var got []result

		err := a.Send(cancelledContext(t), intercept.NewRequest("S3", "getObject", nil), func(err error, data any) {
			got = append(got, result{err: err, data: data})
		})
		require.NoError(t, err)

		assert.Equal(t, []result{{data: "hello"}}, got)
		assert.True(t, entry.CalledOnce())
	})

	t.Run("Callback after cancellation completes once", func(t *testing.T) {
		reg, a := newAdapter(t)

		var deferred registry.Callback

		reg.Register("S3", "getObject", func(_ context.Context, _ any, done registry.Callback) any {
			deferred = done
			return nil
		})

		ctx, cancel := context.WithCancel(t.Context())

		var got []result

		err := a.Send(ctx, intercept.NewRequest("S3", "getObject", nil), func(err error, data any) {
			got = append(got, result{err: err, data: data})
		})
		require.NoError(t, err)
		assert.Empty(t, got)

		cancel()
		require.NotNil(t, deferred)

		deferred(nil, "hello")
		deferred(errForced, nil)

		assert.Equal(t, []result{{data: "hello"}}, got)
	})

	t.Run("Promise settles under an already cancelled context", func(t *testing.T) {
		reg, a := newAdapter(t)
		reg.Register("S3", "getObject", nil).Returns("hello")

		p := a.Promise(cancelledContext(t), intercept.NewRequest("S3", "getObject", nil))

		resp := p.Response()
		require.NotNil(t, resp)
		require.NoError(t, resp.Error)
		assert.Equal(t, "hello", resp.Data)
	})

	t.Run("Unmocked operation fails under an already cancelled context", func(t *testing.T) {
		reg, a := newAdapter(t)
		reg.Register("S3", "getObject", nil)

		err := a.Send(cancelledContext(t), intercept.NewRequest("S3", "deleteObject", nil), func(error, any) {
			t.Fatal("must not complete")
		})

		require.ErrorIs(t, err, intercept.ErrUnmockedOperation)
		assert.NotErrorIs(t, err, intercept.ErrInvalidCallState)
	})
}

func TestAdapter_OverrideReplacement(t *testing.T) {
	reg, a := newAdapter(t)

	reg.Register("S3", "putObject", func(context.Context, any, registry.Callback) any { return "hello" })
	second := reg.Register("S3", "putObject", func(context.Context, any, registry.Callback) any { return "world" })

	got := sendAndCollect(t, a, intercept.NewRequest("s3", "PUTOBJECT", nil))

	assert.Equal(t, []result{{data: "world"}}, got)
	assert.True(t, second.CalledOnce())
}

func TestAdapter_TeardownAndSetup(t *testing.T) {
	reg, a := newAdapter(t)

	reg.Register("S3", "putObject", func(context.Context, any, registry.Callback) any { return "hello" })
	reg.ResetAll()
	assert.False(t, a.Installed())

	entry := reg.Register("S3", "putObject", func(context.Context, any, registry.Callback) any { return "world" })
	assert.True(t, a.Installed())

	got := sendAndCollect(t, a, intercept.NewRequest("S3", "putObject", nil))

	assert.Equal(t, []result{{data: "world"}}, got)
	assert.True(t, entry.CalledOnce())
}

func TestAdapter_Promise(t *testing.T) {
	t.Run("Should resolve with synchronous data", func(t *testing.T) {
		reg, a := newAdapter(t)
		entry := reg.Register("S3", "getObject", nil).Returns(map[string]string{"what": "yes"})

		p := a.Promise(t.Context(), intercept.NewRequest("S3", "getObject", map[string]string{"Bucket": "what"}))

		data, err := p.Await(t.Context())
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"what": "yes"}, data)
		assert.True(t, entry.CalledOnce())
		require.NotNil(t, p.Response())
		assert.Equal(t, "getObject", p.Response().Request.Operation)
	})

	t.Run("Should resolve from a deferred callback", func(t *testing.T) {
		reg, a := newAdapter(t)

		var wg sync.WaitGroup

		wg.Add(1)

		reg.Register("S3", "putObject", func(_ context.Context, _ any, done registry.Callback) any {
			go func() {
				defer wg.Done()

				time.Sleep(10 * time.Millisecond)
				done(nil, "hello")
			}()

			return nil
		})

		p := a.Promise(t.Context(), intercept.NewRequest("S3", "putObject", nil))

		data, err := p.Await(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "hello", data)

		wg.Wait()
	})

	t.Run("Should reject with the override error", func(t *testing.T) {
		reg, a := newAdapter(t)
		reg.Register("S3", "putObject", nil).ReturnsError(errForced)

		_, err := a.Promise(t.Context(), intercept.NewRequest("S3", "putObject", nil)).Await(t.Context())

		assert.Equal(t, errForced, err)
	})

	t.Run("Should reject unmocked operations", func(t *testing.T) {
		reg, a := newAdapter(t)
		reg.Register("S3", "getObject", nil)

		p := a.Promise(t.Context(), intercept.NewRequest("S3", "deleteObject", nil))

		select {
		case <-p.Done():
		default:
			t.Fatal("promise must already be settled")
		}

		_, err := p.Await(t.Context())
		assert.ErrorIs(t, err, intercept.ErrUnmockedOperation)
	})

	t.Run("Should stop waiting when the context ends", func(t *testing.T) {
		reg, a := newAdapter(t)
		reg.Register("S3", "putObject", func(context.Context, any, registry.Callback) any { return nil })

		p := a.Promise(t.Context(), intercept.NewRequest("S3", "putObject", nil))
		assert.Nil(t, p.Response())

		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		_, err := p.Await(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestAdapter_Metrics(t *testing.T) {
	promReg := prometheus.NewRegistry()

	metrics, err := intercept.NewMetrics(promReg)
	require.NoError(t, err)

	again, err := intercept.NewMetrics(promReg)
	require.NoError(t, err, "registering twice reuses the counter")

	reg := registry.New()
	a := intercept.New(reg, intercept.WithMetrics(metrics))

	reg.Register("S3", "getObject", nil).Returns("ok")
	reg.Register("S3", "putObject", nil).ReturnsError(errForced)

	var deferred registry.Callback

	reg.Register("S3", "headObject", func(_ context.Context, _ any, done registry.Callback) any {
		deferred = done
		return nil
	})
	reg.Register("S3", "copyObject", func(_ context.Context, _ any, done registry.Callback) any {
		done(nil, "first")
		done(errForced, nil)
		return "third"
	})

	sendAndCollect(t, a, intercept.NewRequest("S3", "getObject", nil))
	sendAndCollect(t, a, intercept.NewRequest("s3", "GetObject", nil))
	sendAndCollect(t, a, intercept.NewRequest("S3", "putObject", nil))
	sendAndCollect(t, a, intercept.NewRequest("S3", "copyObject", nil))
	_ = a.Send(t.Context(), intercept.NewRequest("S3", "deleteObject", nil), func(error, any) {})

	// completions under a cancelled context count like any other
	require.NoError(t, a.Send(cancelledContext(t), intercept.NewRequest("S3", "getObject", nil), func(error, any) {}))

	ctx, cancel := context.WithCancel(t.Context())
	require.NoError(t, a.Send(ctx, intercept.NewRequest("S3", "headObject", nil), func(error, any) {}))
	cancel()
	require.NotNil(t, deferred)
	deferred(nil, "late")
	deferred(nil, "later")

	collector, ok := metrics.Collector().(*prometheus.CounterVec)
	require.True(t, ok)
	assert.Same(t, collector, again.Collector())

	assert.InDelta(t, 3, testutil.ToFloat64(collector.WithLabelValues("s3", "getobject", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(collector.WithLabelValues("s3", "putobject", "override_error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(collector.WithLabelValues("s3", "copyobject", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(collector.WithLabelValues("s3", "headobject", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(collector.WithLabelValues("s3", "deleteobject", "unmocked")), 0)
	assert.Equal(t, 5, testutil.CollectAndCount(collector), "one series per terminal path")
	assert.Zero(t, testutil.ToFloat64(collector.WithLabelValues("s3", "copyobject", "override_error")))
}
