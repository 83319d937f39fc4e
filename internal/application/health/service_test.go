package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) PingContext(ctx context.Context) error { return p.err }

func newRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestCollect_NoDependencies(t *testing.T) {
	r := Collect(context.Background(), nil, nil)
	assert.Equal(t, "issue", r.Status)
	assert.Equal(t, "disconnected", r.Dependencies["database"].Status)
	assert.Equal(t, "disconnected", r.Dependencies["redis"].Status)
	assert.Equal(t, 0, r.Traffic.TotalRequests)
	assert.Equal(t, "100", r.Traffic.SuccessRate)
}

func TestCollect_DatabaseError(t *testing.T) {
	r := Collect(context.Background(), newRedis(t), pinger{err: errors.New("down")})
	assert.Equal(t, "issue", r.Status)
	assert.Equal(t, "error", r.Dependencies["database"].Status)
	assert.Nil(t, r.Dependencies["database"].PingMs)
}

func TestCollect_Traffic(t *testing.T) {
	ctx := context.Background()
	rdb := newRedis(t)

	r := Collect(ctx, rdb, pinger{})
	assert.Equal(t, "ok", r.Status)
	assert.Equal(t, 0, r.Traffic.TotalRequests)
	started, err := rdb.Get(ctx, KeyStartTime).Result()
	require.NoError(t, err)
	assert.NotEmpty(t, started)

	require.NoError(t, rdb.Set(ctx, KeyReqTotal, "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyReqErrors, "2", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyResTime, "150.5", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyResCount, "10", 0).Err())

	r = Collect(ctx, rdb, pinger{})
	assert.Equal(t, 10, r.Traffic.TotalRequests)
	assert.Equal(t, 2, r.Traffic.FailedCount)
	assert.Equal(t, 8, r.Traffic.SuccessCount)
	assert.Equal(t, "80.0", r.Traffic.SuccessRate)
	assert.Equal(t, "15.05", r.Traffic.AvgResponseTime)
}

func TestStats_RecordAndReset(t *testing.T) {
	ctx := context.Background()
	rdb := newRedis(t)
	s := &Stats{Rdb: rdb}

	s.RequestStarted(ctx, RequestInfo{Time: time.Now(), Path: "/api/anuncios", Method: "GET"})
	s.RequestFinished(ctx, 20*time.Millisecond)
	for i := 0; i < ErrorLogSize+5; i++ {
		s.RequestFailed(ctx, ErrorEntry{Time: time.Now(), Path: "/x", Status: 500, Message: "boom"})
	}

	r := Collect(ctx, rdb, pinger{})
	assert.Equal(t, 1, r.Traffic.TotalRequests)
	require.NotNil(t, r.Traffic.LastRequest)
	assert.Equal(t, "/api/anuncios", r.Traffic.LastRequest.Path)

	entries, err := s.Errors(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, ErrorLogSize)
	assert.Equal(t, 500, entries[0].Status)

	require.NoError(t, s.Reset(ctx))
	entries, err = s.Errors(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
	total, _ := rdb.Get(ctx, KeyReqTotal).Result()
	assert.Equal(t, "", total)
}

func TestStats_NilIsNoop(t *testing.T) {
	var s *Stats
	s.RequestStarted(context.Background(), RequestInfo{})
	s.RequestFinished(context.Background(), time.Second)
	s.RequestFailed(context.Background(), ErrorEntry{})
}
