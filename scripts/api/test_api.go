// Minimal end-to-end check against a running expertdesk web front end.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	baseURL  = getenv("API_URL", "http://localhost:8501")
	redisURL = getenv("REDIS_URL", "")
	stream   = getenv("EVENTS_STREAM", "expertdesk.consultations")
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	ctx := context.Background()

	checkHealth()
	ids := listPersonas()

	rejectBlank(ids[0])
	rejectUnknown()

	before := time.Now()
	consultOnce(ids[0])

	if redisURL != "" {
		rdb := mustRedis()
		defer rdb.Close()
		checkEvent(ctx, rdb, before)
	}

	fmt.Println("✓ all endpoints passed")
}

// ----------------------------- reads

func checkHealth() {
	var resp struct{ Status string }
	doJSON("GET", "/healthz", nil, &resp, http.StatusOK)
	if resp.Status != "ok" {
		log.Fatalf("healthz: status %q", resp.Status)
	}
}

func listPersonas() []string {
	var resp struct {
		Personas []struct{ ID string }
	}
	doJSON("GET", "/v1/personas", nil, &resp, http.StatusOK)
	if len(resp.Personas) != 4 {
		log.Fatalf("personas: want 4 got %d", len(resp.Personas))
	}
	ids := make([]string, 0, len(resp.Personas))
	for _, p := range resp.Personas {
		ids = append(ids, p.ID)
	}
	return ids
}

// ----------------------------- consult

func rejectBlank(id string) {
	doJSON("POST", "/v1/consult", map[string]any{
		"persona":  id,
		"question": "   ",
	}, nil, http.StatusBadRequest)
}

func rejectUnknown() {
	doJSON("POST", "/v1/consult", map[string]any{
		"persona":  "unknown-" + uuid.NewString(),
		"question": "hello",
	}, nil, http.StatusNotFound)
}

func consultOnce(id string) {
	var resp struct {
		OK     bool
		Answer string
		Error  string
	}
	doJSON("POST", "/v1/consult", map[string]any{
		"persona":  id,
		"question": "integration-test: reply with one short sentence",
	}, &resp, http.StatusOK)
	if resp.OK {
		log.Printf("consult: success (%d bytes)", len(resp.Answer))
	} else {
		log.Printf("consult: provider failure reported: %s", resp.Error)
	}
}

// ----------------------------- events

func checkEvent(ctx context.Context, rdb *redis.Client, since time.Time) {
	deadline := time.Now().Add(10 * time.Second)
	start := fmt.Sprintf("%d-0", since.UnixMilli())
	for time.Now().Before(deadline) {
		msgs, err := rdb.XRange(ctx, stream, start, "+").Result()
		if err != nil {
			log.Fatalf("redis xrange: %v", err)
		}
		for _, m := range msgs {
			if m.Values["channel"] == "api" {
				return
			}
		}
		time.Sleep(250 * time.Millisecond)
	}
	log.Fatal("events: consultation event not found")
}

// ----------------------------- helpers

func mustRedis() *redis.Client {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("redis url: %v", err)
	}
	return redis.NewClient(opt)
}

func doJSON(method, path string, body, out any, want int) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("%s %s encode: %v", method, path, err)
		}
	}
	req, _ := http.NewRequest(method, baseURL+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	if res.StatusCode != want {
		log.Fatalf("%s %s: want %d got %d", method, path, want, res.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			log.Fatalf("%s %s decode: %v", method, path, err)
		}
	}
}
