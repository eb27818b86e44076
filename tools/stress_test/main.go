package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/VanDung-dev/QNetX-Engine/qnetx"
)

// StressTestConfig holds configuration for the stress test.
type StressTestConfig struct {
	Address     string
	Concurrency int
	Requests    int
	Duration    time.Duration
	Timeout     time.Duration
	ReportFile  string
}

// StressTestResult holds the results of a stress test.
type StressTestResult struct {
	RunID          string
	TotalRequests  int64
	SuccessfulReqs int64
	FailedReqs     int64
	TotalDuration  time.Duration
	AvgLatency     time.Duration
	MinLatency     time.Duration
	MaxLatency     time.Duration
	RequestsPerSec float64
}

// latencyStats accumulates per-handshake latencies from many workers.
type latencyStats struct {
	total   int64
	success int64
	failed  int64
	sum     int64
	min     int64
	max     int64
}

func newLatencyStats() *latencyStats {
	return &latencyStats{min: 1<<63 - 1}
}

func (s *latencyStats) record(latency time.Duration, err error) {
	atomic.AddInt64(&s.total, 1)
	if err != nil {
		atomic.AddInt64(&s.failed, 1)
		return
	}
	atomic.AddInt64(&s.success, 1)

	lat := int64(latency)
	atomic.AddInt64(&s.sum, lat)
	for {
		old := atomic.LoadInt64(&s.min)
		if lat >= old || atomic.CompareAndSwapInt64(&s.min, old, lat) {
			break
		}
	}
	for {
		old := atomic.LoadInt64(&s.max)
		if lat <= old || atomic.CompareAndSwapInt64(&s.max, old, lat) {
			break
		}
	}
}

func main() {
	config := parseFlags()

	fmt.Println("=== QNetX Handshake Stress Test ===")
	fmt.Printf("Target: %s\n", config.Address)
	fmt.Printf("Concurrency: %d workers\n", config.Concurrency)
	if config.Requests > 0 {
		fmt.Printf("Requests: %d\n", config.Requests)
	} else {
		fmt.Printf("Duration: %v\n", config.Duration)
	}
	fmt.Println()

	result := runStressTest(context.Background(), config)

	printResults(result)

	if config.ReportFile != "" {
		saveReport(config, result)
	}
}

func parseFlags() StressTestConfig {
	config := StressTestConfig{}

	flag.StringVar(&config.Address, "addr", "127.0.0.1:7000", "Handshake server address")
	flag.IntVar(&config.Concurrency, "c", 10, "Number of concurrent workers")
	flag.IntVar(&config.Requests, "n", 0, "Total number of handshakes (0 = run for -d)")
	flag.DurationVar(&config.Duration, "d", 30*time.Second, "Duration of test")
	flag.DurationVar(&config.Timeout, "timeout", 5*time.Second, "Per-handshake timeout")
	flag.StringVar(&config.ReportFile, "o", "", "Output report file (JSON)")

	flag.Parse()

	return config
}

func runStressTest(ctx context.Context, config StressTestConfig) StressTestResult {
	runID := uuid.NewString()
	stats := newLatencyStats()

	if config.Requests == 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Duration)
		defer cancel()
	}

	var issued int64
	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < config.Concurrency; i++ {
		// Each worker entangles its own pair of dimensions so channel ids
		// spread over the acceptor's mesh.
		mesh := qnetx.NewMesh(qnetx.Config{
			Dimensions: []qnetx.Dimension{
				qnetx.Dimension(fmt.Sprintf("%s-%d", runID[:8], i)),
				qnetx.Dimension(fmt.Sprintf("peer-%d", i)),
			},
			HandshakeTimeout: config.Timeout,
			HandshakeWorkers: 1,
		})

		g.Go(func() error {
			for ctx.Err() == nil {
				if config.Requests > 0 && atomic.AddInt64(&issued, 1) > int64(config.Requests) {
					return nil
				}

				start := time.Now()
				_, err := mesh.Connect(ctx, config.Address)
				if ctx.Err() != nil {
					return nil
				}
				stats.record(time.Since(start), err)
				if err != nil {
					// Small sleep on error to avoid hammering
					time.Sleep(10 * time.Millisecond)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	return stats.result(runID, time.Since(startTime))
}

func (s *latencyStats) result(runID string, duration time.Duration) StressTestResult {
	success := atomic.LoadInt64(&s.success)
	total := atomic.LoadInt64(&s.total)

	var avgLatency time.Duration
	minLatency := atomic.LoadInt64(&s.min)
	if success > 0 {
		avgLatency = time.Duration(atomic.LoadInt64(&s.sum) / success)
	} else {
		minLatency = 0
	}

	return StressTestResult{
		RunID:          runID,
		TotalRequests:  total,
		SuccessfulReqs: success,
		FailedReqs:     atomic.LoadInt64(&s.failed),
		TotalDuration:  duration,
		AvgLatency:     avgLatency,
		MinLatency:     time.Duration(minLatency),
		MaxLatency:     time.Duration(atomic.LoadInt64(&s.max)),
		RequestsPerSec: float64(total) / duration.Seconds(),
	}
}

func printResults(result StressTestResult) {
	pct := func(n int64) float64 {
		if result.TotalRequests == 0 {
			return 0
		}
		return float64(n) / float64(result.TotalRequests) * 100
	}

	fmt.Println("=== Results ===")
	fmt.Printf("Run ID:          %s\n", result.RunID)
	fmt.Printf("Duration:        %v\n", result.TotalDuration.Round(time.Millisecond))
	fmt.Printf("Total Requests:  %d\n", result.TotalRequests)
	fmt.Printf("Successful:      %d (%.2f%%)\n", result.SuccessfulReqs, pct(result.SuccessfulReqs))
	fmt.Printf("Failed:          %d (%.2f%%)\n", result.FailedReqs, pct(result.FailedReqs))
	fmt.Printf("Requests/sec:    %.2f\n", result.RequestsPerSec)
	fmt.Printf("Avg Latency:     %v\n", result.AvgLatency.Round(time.Microsecond))
	fmt.Printf("Min Latency:     %v\n", result.MinLatency.Round(time.Microsecond))
	fmt.Printf("Max Latency:     %v\n", result.MaxLatency.Round(time.Microsecond))
}

func saveReport(config StressTestConfig, result StressTestResult) {
	report := map[string]any{
		"run_id": result.RunID,
		"config": map[string]any{
			"address":     config.Address,
			"concurrency": config.Concurrency,
			"requests":    config.Requests,
			"duration":    config.Duration.String(),
		},
		"results": map[string]any{
			"total_requests":   result.TotalRequests,
			"successful":       result.SuccessfulReqs,
			"failed":           result.FailedReqs,
			"requests_per_sec": result.RequestsPerSec,
			"avg_latency_ms":   float64(result.AvgLatency.Microseconds()) / 1000,
			"min_latency_ms":   float64(result.MinLatency.Microseconds()) / 1000,
			"max_latency_ms":   float64(result.MaxLatency.Microseconds()) / 1000,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	}

	data, _ := json.MarshalIndent(report, "", "  ")
	if err := os.WriteFile(config.ReportFile, data, 0644); err != nil {
		log.Printf("Failed to write report: %v", err)
	} else {
		fmt.Printf("Report saved to: %s\n", config.ReportFile)
	}
}
