// Load generator for the walletops API: hammers the deposit and withdraw
// endpoints of the accounts already in the database (run cmd/seeder first).
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Config holds the benchmark settings
var (
	targetURL   string
	concurrency int
	duration    time.Duration
	workload    string
)

// Metrics
var (
	totalRequests uint64
	successOK     uint64 // 200: mutation applied
	failInvalid   uint64 // 400: insufficient funds / bad amount
	failNotFound  uint64 // 404
	failOther     uint64
)

func init() {
	flag.StringVar(&targetURL, "url", "http://localhost:8080", "API Base URL")
	flag.IntVar(&concurrency, "workers", 10, "Number of concurrent workers")
	flag.DurationVar(&duration, "duration", 30*time.Second, "Test duration")
	flag.StringVar(&workload, "workload", "uniform", "Workload type: uniform | hotspot")
}

func main() {
	flag.Parse()

	ids, err := fetchAccountIDs()
	if err != nil {
		log.Fatalf("Unable to list accounts: %v", err)
	}
	if len(ids) < 2 {
		log.Fatal("Need at least 2 seeded accounts. Run cmd/seeder first.")
	}

	log.Printf("Starting Benchmark: %s | Accounts: %d | Workers: %d | Duration: %s",
		workload, len(ids), concurrency, duration)

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(concurrency)

	for i := 0; i < concurrency; i++ {
		go worker(&wg, start, ids)
	}

	wg.Wait()
	printResults(time.Since(start))
}

func fetchAccountIDs() ([]string, error) {
	resp, err := http.Get(targetURL + "/api/v1/accounts")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var accounts []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&accounts); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

func worker(wg *sync.WaitGroup, start time.Time, ids []string) {
	defer wg.Done()
	client := &http.Client{Timeout: 5 * time.Second}

	for time.Since(start) < duration {
		id := pickAccount(ids)
		op := "deposit"
		if rand.Float32() < 0.5 {
			op = "withdraw"
		}

		payload := map[string]interface{}{"amount": 1.00}
		body, _ := json.Marshal(payload)

		url := fmt.Sprintf("%s/api/v1/accounts/%s/%s", targetURL, id, op)
		req, _ := http.NewRequest("POST", url, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			atomic.AddUint64(&failOther, 1)
			continue
		}

		atomic.AddUint64(&totalRequests, 1)
		switch resp.StatusCode {
		case 200:
			atomic.AddUint64(&successOK, 1)
		case 400:
			atomic.AddUint64(&failInvalid, 1)
		case 404:
			atomic.AddUint64(&failNotFound, 1)
		default:
			atomic.AddUint64(&failOther, 1)
		}
		resp.Body.Close()
	}
}

func pickAccount(ids []string) string {
	if workload == "hotspot" {
		// Hotspot: 90% of traffic hits the first account
		if rand.Float32() < 0.90 {
			return ids[0]
		}
	}
	return ids[rand.Intn(len(ids))]
}

func printResults(d time.Duration) {
	total := atomic.LoadUint64(&totalRequests)
	ok := atomic.LoadUint64(&successOK)
	invalid := atomic.LoadUint64(&failInvalid)
	notFound := atomic.LoadUint64(&failNotFound)
	other := atomic.LoadUint64(&failOther)

	tps := float64(total) / d.Seconds()

	results := map[string]interface{}{
		"workload":           workload,
		"duration_sec":       d.Seconds(),
		"total_requests":     total,
		"throughput_tps":     tps,
		"success_ok":         ok,
		"rejected_invalid":   invalid,
		"rejected_not_found": notFound,
		"errors":             other,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(results)

	filename := fmt.Sprintf("results_%s.json", workload)
	file, _ := os.Create(filename)
	defer file.Close()
	json.NewEncoder(file).Encode(results)
}
