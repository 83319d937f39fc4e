package health

import (
	"context"
	"encoding/json"
	"runtime"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DBPinger is satisfied by *sql.DB. A nil pinger reports the database as disconnected.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

type Report struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64      `json:"uptimeSeconds"`
	Memory        MemoryInfo `json:"memory"`
	Goroutines    int        `json:"goroutines"`
	Platform      string     `json:"platform"`
	GoVersion     string     `json:"goVersion"`
}

// MemoryInfo is in MiB.
type MemoryInfo struct {
	Alloc    int `json:"alloc"`
	HeapUsed int `json:"heapUsed"`
}

type TrafficInfo struct {
	TotalRequests   int          `json:"totalRequests"`
	SuccessCount    int          `json:"successCount"`
	FailedCount     int          `json:"failedCount"`
	SuccessRate     string       `json:"successRate"`
	AvgResponseTime string       `json:"avgResponseTime"`
	LastRequest     *RequestInfo `json:"lastRequest"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

// Collect pings the database and Redis and reads the shared traffic counters.
// Status is "ok" only when both dependencies answer.
func Collect(ctx context.Context, rdb *redis.Client, db DBPinger) Report {
	report := Report{Dependencies: map[string]DepStatus{}}

	dbDep := DepStatus{Status: "disconnected"}
	if db != nil {
		start := time.Now()
		if err := db.PingContext(ctx); err == nil {
			ms := time.Since(start).Milliseconds()
			dbDep = DepStatus{Status: "connected", PingMs: &ms}
		} else {
			dbDep.Status = "error"
		}
	}
	report.Dependencies["database"] = dbDep

	redisDep := DepStatus{Status: "disconnected"}
	traffic := TrafficInfo{SuccessRate: "100", AvgResponseTime: "0"}
	startMs := time.Now().UnixMilli()
	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			ms := time.Since(start).Milliseconds()
			redisDep = DepStatus{Status: "connected", PingMs: &ms}
			startMs = readTraffic(ctx, rdb, &traffic, startMs)
		} else {
			redisDep.Status = "error"
		}
	}
	report.Dependencies["redis"] = redisDep
	report.Traffic = traffic

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptime := (time.Now().UnixMilli() - startMs) / 1000
	if uptime < 0 {
		uptime = 0
	}
	report.Runtime = RuntimeInfo{
		UptimeSeconds: uptime,
		Memory:        MemoryInfo{Alloc: int(m.Alloc >> 20), HeapUsed: int(m.HeapInuse >> 20)},
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	report.Status = "issue"
	if dbDep.Status == "connected" && redisDep.Status == "connected" {
		report.Status = "ok"
	}
	return report
}

// readTraffic fills t from the counters and returns the recorded start time,
// initialising it on first use.
func readTraffic(ctx context.Context, rdb *redis.Client, t *TrafficInfo, nowMs int64) int64 {
	vals, err := rdb.MGet(ctx, KeyReqTotal, KeyReqErrors, KeyResTime, KeyResCount, KeyStartTime, KeyLastReq).Result()
	if err != nil {
		return nowMs
	}
	str := func(i int) string {
		s, _ := vals[i].(string)
		return s
	}

	t.TotalRequests, _ = strconv.Atoi(str(0))
	t.FailedCount, _ = strconv.Atoi(str(1))
	t.SuccessCount = t.TotalRequests - t.FailedCount
	if t.TotalRequests > 0 {
		t.SuccessRate = strconv.FormatFloat(float64(t.SuccessCount)/float64(t.TotalRequests)*100, 'f', 1, 64)
	}
	sum, _ := strconv.ParseFloat(str(2), 64)
	if n, _ := strconv.Atoi(str(3)); n > 0 {
		t.AvgResponseTime = strconv.FormatFloat(sum/float64(n), 'f', 2, 64)
	}
	if last := str(5); last != "" {
		var info RequestInfo
		if json.Unmarshal([]byte(last), &info) == nil {
			t.LastRequest = &info
		}
	}

	startMs := nowMs
	if s := str(4); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			startMs = v
		}
	} else {
		rdb.Set(ctx, KeyStartTime, nowMs, 0)
	}
	return startMs
}
