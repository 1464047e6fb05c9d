// Command shadow_compare replays read-only requests against the Go studio API
// and the legacy Node back office side by side and reports response drift.
// It is meant to run against seeded copies of the same database during the
// cutover period.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type endpoint struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type endpointFile struct {
	Endpoints []endpoint `json:"endpoints"`
}

type result struct {
	Endpoint       endpoint
	LegacyStatus   int
	StudioStatus   int
	StatusMatch    bool
	BodyMatch      bool
	Err            error
	StudioDuration time.Duration
	LegacyDuration time.Duration
}

func main() {
	var (
		studioBase string
		legacyBase string
		targets    string
		timeout    time.Duration
	)

	flag.StringVar(&studioBase, "studio-base", "http://localhost:8080", "studio API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "legacy back office base URL")
	flag.StringVar(&targets, "endpoints", filepath.Join("scripts", "shadow_compare", "endpoints.json"), "path to JSON endpoint list")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	endpoints, err := loadEndpoints(targets)
	if err != nil {
		log.Fatalf("failed to load endpoints: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		results  []result
		breaking int
		soft     int
	)

	for _, ep := range endpoints {
		res := compare(client, studioBase, legacyBase, ep)
		if res.Err != nil || !res.StatusMatch || !res.BodyMatch {
			if ep.Critical {
				breaking++
			} else {
				soft++
			}
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Breaking diffs: %d, Soft diffs: %d\n", breaking, soft)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadEndpoints(path string) ([]endpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file endpointFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints defined in %s", path)
	}
	return file.Endpoints, nil
}

func compare(client *http.Client, studioBase, legacyBase string, ep endpoint) result {
	res := result{Endpoint: ep}

	studioResp, studioDur, err := fetch(client, studioBase, ep)
	if err != nil {
		res.Err = fmt.Errorf("studio request failed: %w", err)
		return res
	}
	defer studioResp.Body.Close()
	legacyResp, legacyDur, err := fetch(client, legacyBase, ep)
	if err != nil {
		res.Err = fmt.Errorf("legacy request failed: %w", err)
		return res
	}
	defer legacyResp.Body.Close()

	res.StudioDuration = studioDur
	res.LegacyDuration = legacyDur
	res.StudioStatus = studioResp.StatusCode
	res.LegacyStatus = legacyResp.StatusCode
	res.StatusMatch = res.StudioStatus == res.LegacyStatus

	studioBody, err := io.ReadAll(studioResp.Body)
	if err != nil {
		res.Err = fmt.Errorf("read studio body: %w", err)
		return res
	}
	legacyBody, err := io.ReadAll(legacyResp.Body)
	if err != nil {
		res.Err = fmt.Errorf("read legacy body: %w", err)
		return res
	}

	res.BodyMatch = bodiesEqual(studioBody, legacyBody)
	return res
}

func fetch(client *http.Client, base string, ep endpoint) (*http.Response, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(ep.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := ep.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return nil, 0, err
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	return resp, time.Since(start), nil
}

// bodiesEqual falls back to normalized JSON comparison so that key order and
// integer/float encoding differences between the two stacks do not count as
// drift.
func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj)
	normalize(&bj)
	return reflect.DeepEqual(aj, bj)
}

func normalize(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, v2 := range val {
			normalize(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func printReport(results []result) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		if res.Err != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Endpoint.Method, res.Endpoint.Path)
		if res.Err != nil {
			fmt.Printf("  Error: %v\n", res.Err)
			continue
		}
		fmt.Printf("  Studio: %d (%s) | Legacy: %d (%s)\n", res.StudioStatus, res.StudioDuration, res.LegacyStatus, res.LegacyDuration)
		fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Endpoint.Critical)
	}
}
