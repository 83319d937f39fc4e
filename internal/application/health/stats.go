package health

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keys shared by every API instance.
const (
	KeyReqTotal  = "health:global:req_total"
	KeyReqErrors = "health:global:req_errors"
	KeyResTime   = "health:global:res_time_total"
	KeyResCount  = "health:global:res_count"
	KeyStartTime = "health:global:start_time"
	KeyLastReq   = "health:global:last_request"
	KeyErrorLog  = "health:global:error_log"
)

// ErrorLogSize caps the error log list.
const ErrorLogSize = 50

type RequestInfo struct {
	Time   time.Time `json:"time"`
	IP     string    `json:"ip"`
	Path   string    `json:"path"`
	Method string    `json:"method"`
}

type ErrorEntry struct {
	Time    time.Time `json:"time"`
	Method  string    `json:"method"`
	Path    string    `json:"path"`
	Status  int       `json:"status"`
	Message string    `json:"message,omitempty"`
	TraceID string    `json:"trace_id,omitempty"`
}

// Stats writes request counters. Every method is best effort: Redis errors are dropped.
type Stats struct {
	Rdb *redis.Client
}

func (s *Stats) RequestStarted(ctx context.Context, info RequestInfo) {
	if s == nil || s.Rdb == nil {
		return
	}
	b, _ := json.Marshal(info)
	pipe := s.Rdb.Pipeline()
	pipe.Set(ctx, KeyLastReq, b, 0)
	pipe.Incr(ctx, KeyReqTotal)
	_, _ = pipe.Exec(ctx)
}

func (s *Stats) RequestFinished(ctx context.Context, elapsed time.Duration) {
	if s == nil || s.Rdb == nil {
		return
	}
	pipe := s.Rdb.Pipeline()
	pipe.Incr(ctx, KeyResCount)
	pipe.IncrByFloat(ctx, KeyResTime, float64(elapsed.Milliseconds()))
	_, _ = pipe.Exec(ctx)
}

// RequestFailed counts a 5xx and pushes it onto the capped error log, newest first.
func (s *Stats) RequestFailed(ctx context.Context, e ErrorEntry) {
	if s == nil || s.Rdb == nil {
		return
	}
	b, _ := json.Marshal(e)
	pipe := s.Rdb.Pipeline()
	pipe.Incr(ctx, KeyReqErrors)
	pipe.LPush(ctx, KeyErrorLog, b)
	pipe.LTrim(ctx, KeyErrorLog, 0, ErrorLogSize-1)
	_, _ = pipe.Exec(ctx)
}

// Reset clears all counters and restarts the uptime clock.
func (s *Stats) Reset(ctx context.Context) error {
	if err := s.Rdb.Del(ctx, KeyReqTotal, KeyReqErrors, KeyResTime, KeyResCount, KeyStartTime, KeyLastReq, KeyErrorLog).Err(); err != nil {
		return err
	}
	return s.Rdb.Set(ctx, KeyStartTime, strconv.FormatInt(time.Now().UnixMilli(), 10), 0).Err()
}

// Errors returns the error log, newest first. Unreadable entries are skipped.
func (s *Stats) Errors(ctx context.Context) ([]ErrorEntry, error) {
	raw, err := s.Rdb.LRange(ctx, KeyErrorLog, 0, ErrorLogSize-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]ErrorEntry, 0, len(raw))
	for _, r := range raw {
		var e ErrorEntry
		if json.Unmarshal([]byte(r), &e) == nil {
			out = append(out, e)
		}
	}
	return out, nil
}
