package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:8000"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numUsers     = 20
)

var emotions = []string{"happy", "sad", "anxious", "angry", "neutral"}

var phrases = []string{
	"I feel great and happy about today",
	"Everything feels heavy and sad",
	"I am worried and nervous about the exam",
	"This makes me so angry and frustrated",
	"Nothing special happened",
}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// userIDs holds the ids created during seeding.
var userIDs []int64

func main() {
	fmt.Println("=== NEST Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Users: %d\n\n", numWorkers, testDuration, numUsers)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	if err := seedUsers(); err != nil {
		fmt.Printf("FAILED: %s\n", err)
		return
	}

	fmt.Println("\n--- Phase 1: Recording emotions (POST /emotions) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doRecord(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (50% write, 50% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.35:
			return doRecord(rng)
		case r < 0.50:
			return doLogs(rng)
		case r < 0.70:
			return doReport(rng)
		case r < 0.85:
			return doRecommend(rng)
		default:
			return doAnalyze(rng)
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (10% write, 90% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doRecord(rng)
		case r < 0.50:
			return doReport(rng)
		case r < 0.80:
			return doRecommend(rng)
		default:
			return doExercises()
		}
	})
}

func seedUsers() error {
	stamp := time.Now().UnixNano()
	for i := 0; i < numUsers; i++ {
		body := map[string]any{
			"username": fmt.Sprintf("load_%d_%d", stamp, i),
			"password": "load-test-password",
		}
		data, _ := json.Marshal(body)
		resp, err := httpClient.Post(baseURL+"/users", "application/json", bytes.NewReader(data))
		if err != nil {
			return err
		}
		var user struct {
			ID int64 `json:"id"`
		}
		err = json.NewDecoder(resp.Body).Decode(&user)
		resp.Body.Close()
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusCreated {
			return fmt.Errorf("create user: status %d", resp.StatusCode)
		}
		userIDs = append(userIDs, user.ID)
	}
	return nil
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 94))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 94))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func do(endpoint, method, url string, body any, want int) result {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return result{endpoint, 0, 0, true}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}
}

func randomUser(rng *rand.Rand) int64 {
	return userIDs[rng.Intn(len(userIDs))]
}

func doRecord(rng *rand.Rand) result {
	text := phrases[rng.Intn(len(phrases))]
	body := map[string]any{
		"user_id":      randomUser(rng),
		"text_content": text,
	}
	return do("POST /emotions", http.MethodPost, baseURL+"/emotions", body, http.StatusCreated)
}

func doAnalyze(rng *rand.Rand) result {
	body := map[string]any{"text": phrases[rng.Intn(len(phrases))]}
	return do("POST /emotions/analyze", http.MethodPost, baseURL+"/emotions/analyze", body, http.StatusOK)
}

func doReport(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/emotions/report?user_id=%d&days=%d", baseURL, randomUser(rng), 7+rng.Intn(24))
	return do("GET /emotions/report", http.MethodGet, url, nil, http.StatusOK)
}

func doRecommend(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/meditation/recommendations?emotion=%s&duration=%d",
		baseURL, emotions[rng.Intn(len(emotions))], 5+rng.Intn(20))
	return do("GET /meditation/recommend", http.MethodGet, url, nil, http.StatusOK)
}

func doExercises() result {
	return do("GET /meditation/exercises", http.MethodGet, baseURL+"/meditation/exercises", nil, http.StatusOK)
}

func doLogs(rng *rand.Rand) result {
	n := rng.Intn(5) + 1
	logs := make([]map[string]any, n)
	for i := range logs {
		logs[i] = map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"level":     "info",
			"message":   fmt.Sprintf("screen view %d", rng.Intn(100)),
		}
	}
	return do("POST /monitoring/logs", http.MethodPost, baseURL+"/monitoring/logs", map[string]any{"logs": logs}, http.StatusOK)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	return strings.Repeat(s, n)
}
