package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/inkwell-ai/inkwell/internal/patterns"
)

const defaultText = "Moreover, it's important to note that we must delve into the multifaceted landscape of modern writing. Furthermore, this comprehensive overview aims to leverage robust insights."

func main() {
	n := flag.Int("n", 200, "number of iterations")
	text := flag.String("text", defaultText, "text to analyze")
	sensitivity := flag.String("sensitivity", "medium", "sensitivity level (low|medium|high)")
	repeat := flag.Int("repeat", 1, "repeat the text this many times to scale input size")
	flag.Parse()

	sens, err := patterns.ParseSensitivity(*sensitivity)
	if err != nil {
		log.Fatalf("invalid sensitivity: %v", err)
	}

	input := strings.TrimSpace(strings.Repeat(*text+" ", *repeat))

	// Caching is disabled so every iteration pays the full scan cost.
	detector := patterns.New(patterns.Options{CacheCapacity: -1})

	// Warmup
	for i := 0; i < 5; i++ {
		if _, err := detector.Analyze(input, sens); err != nil {
			log.Fatalf("warmup analyze failed: %v", err)
		}
	}

	if *n <= 0 {
		*n = 1
	}

	durations := make([]time.Duration, 0, *n)
	var lastScore float64
	for i := 0; i < *n; i++ {
		start := time.Now()
		result, err := detector.Analyze(input, sens)
		if err != nil {
			log.Fatalf("analyze failed: %v", err)
		}
		durations = append(durations, time.Since(start))
		lastScore = result.Score
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	var total time.Duration
	for _, d := range durations {
		total += d
	}

	avg := float64(total.Microseconds()) / 1000.0 / float64(len(durations))
	p50 := percentileMs(durations, 0.50)
	p95 := percentileMs(durations, 0.95)
	p99 := percentileMs(durations, 0.99)

	// Cached comparison: same input through a caching detector, so every
	// iteration after the first is a cache hit.
	cached := patterns.New(patterns.Options{})
	if _, err := cached.Analyze(input, sens); err != nil {
		log.Fatalf("cached warmup failed: %v", err)
	}
	cachedStart := time.Now()
	for i := 0; i < *n; i++ {
		if _, err := cached.Analyze(input, sens); err != nil {
			log.Fatalf("cached analyze failed: %v", err)
		}
	}
	cachedAvg := float64(time.Since(cachedStart).Microseconds()) / 1000.0 / float64(*n)

	fmt.Printf("bench: n=%d avg_ms=%.3f p50_ms=%.3f p95_ms=%.3f p99_ms=%.3f cached_avg_ms=%.4f words=%d sensitivity=%s score=%.1f\n",
		len(durations),
		avg,
		p50,
		p95,
		p99,
		cachedAvg,
		len(strings.Fields(input)),
		sens,
		lastScore,
	)
}

func percentileMs(sorted []time.Duration, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)) * q)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return float64(sorted[idx].Microseconds()) / 1000.0
}
