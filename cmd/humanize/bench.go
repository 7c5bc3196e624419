package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var benchFlags struct {
	url     string
	runs    int
	warmup  bool
	quality bool
	jsonOut string
	timeout time.Duration
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure rewrite latency against a running server",
	Long: `Send sample texts to POST /api/humanize on a running server and report
wall-clock latency per sample and run.

Examples:
  # Three runs per sample against a local server
  humanize bench --url http://localhost:8090

  # Print input and output side by side instead of timing
  humanize bench --quality`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().StringVar(&benchFlags.url, "url", "http://localhost:8090", "server base URL")
	benchCmd.Flags().IntVar(&benchFlags.runs, "runs", 3, "runs per sample")
	benchCmd.Flags().BoolVar(&benchFlags.warmup, "warmup", false, "send one discarded request per sample first")
	benchCmd.Flags().BoolVar(&benchFlags.quality, "quality", false, "show input and output for each sample, one run, no timing table")
	benchCmd.Flags().StringVar(&benchFlags.jsonOut, "json", "", "write results to a JSON file")
	benchCmd.Flags().DurationVar(&benchFlags.timeout, "timeout", 3*time.Minute, "per-request timeout")
}

type benchResult struct {
	Sample   string `json:"sample"`
	Chars    int    `json:"chars"`
	Run      int    `json:"run"`
	WallMs   int64  `json:"wall_ms"`
	OutChars int    `json:"out_chars"`
	Output   string `json:"-"`
	Error    string `json:"error,omitempty"`
}

type benchClient struct {
	http    *http.Client
	baseURL string
}

func (c *benchClient) provider(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()

	var h struct {
		Provider string `json:"provider"`
		Ready    bool   `json:"ready"`
		Reason   string `json:"reason"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return "", fmt.Errorf("health check: decode: %w", err)
	}
	if !h.Ready {
		return "", fmt.Errorf("provider %s not ready: %s", h.Provider, h.Reason)
	}
	return h.Provider, nil
}

func (c *benchClient) rewrite(ctx context.Context, sample benchSample, run int) benchResult {
	r := benchResult{Sample: sample.Name, Chars: len(sample.Text), Run: run}

	payload, _ := json.Marshal(map[string]string{"text": sample.Text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/humanize", strings.NewReader(string(payload)))
	if err != nil {
		r.Error = err.Error()
		return r
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	r.WallMs = time.Since(start).Milliseconds()
	if err != nil {
		r.Error = err.Error()
		return r
	}
	defer resp.Body.Close()

	var body struct {
		Result string `json:"result"`
		Error  string `json:"error"`
	}
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &body); err != nil {
		r.Error = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		return r
	}
	if resp.StatusCode != http.StatusOK {
		r.Error = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, body.Error)
		return r
	}

	r.Output = body.Result
	r.OutChars = len(body.Result)
	return r
}

func runBench(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c := &benchClient{
		http:    &http.Client{Timeout: benchFlags.timeout},
		baseURL: strings.TrimRight(benchFlags.url, "/"),
	}
	provider, err := c.provider(ctx)
	if err != nil {
		return err
	}

	if benchFlags.quality {
		return runQuality(ctx, out, c, provider)
	}

	fmt.Fprintf(out, "Benchmarking %s using %s (%d runs per sample", c.baseURL, provider, benchFlags.runs)
	if benchFlags.warmup {
		fmt.Fprint(out, ", warmup enabled")
	}
	fmt.Fprintln(out, ")")

	var results []benchResult
	var failures int
	for _, sample := range benchSamples {
		if benchFlags.warmup {
			w := c.rewrite(ctx, sample, 0)
			fmt.Fprintf(out, "  Warming up %s... %s\n", sample.Name, outcome(w))
		}
		for run := 1; run <= benchFlags.runs; run++ {
			r := c.rewrite(ctx, sample, run)
			results = append(results, r)
			if r.Error != "" {
				failures++
			}
			fmt.Fprintf(out, "  %s run %d/%d... %s\n", sample.Name, run, benchFlags.runs, outcome(r))
		}
	}

	fmt.Fprintln(out)
	printBenchTable(out, results)
	printBenchSummary(out, results)

	if benchFlags.jsonOut != "" {
		if err := writeBenchReport(benchFlags.jsonOut, results, c.baseURL, provider); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(out, "\nResults written to %s\n", benchFlags.jsonOut)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d runs failed", failures, len(results))
	}
	return nil
}

func runQuality(ctx context.Context, out io.Writer, c *benchClient, provider string) error {
	fmt.Fprintf(out, "Quality check against %s using %s\n", c.baseURL, provider)
	fmt.Fprintln(out, strings.Repeat("=", 72))

	var failures int
	for i, sample := range benchSamples {
		fmt.Fprintf(out, "\n--- %d/%d: %s (%d chars) ---\n", i+1, len(benchSamples), sample.Name, len(sample.Text))
		fmt.Fprintf(out, "IN:  %s\n", sample.Text)

		r := c.rewrite(ctx, sample, 1)
		if r.Error != "" {
			fmt.Fprintf(out, "ERR: %s\n", r.Error)
			failures++
			continue
		}
		fmt.Fprintf(out, "OUT: %s\n", r.Output)
		fmt.Fprintf(out, "     [%dms, %d->%d chars]\n", r.WallMs, r.Chars, r.OutChars)
	}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 72))
	fmt.Fprintf(out, "Done: %d/%d passed\n", len(benchSamples)-failures, len(benchSamples))
	if failures > 0 {
		return fmt.Errorf("%d of %d samples failed", failures, len(benchSamples))
	}
	return nil
}

func outcome(r benchResult) string {
	if r.Error != "" {
		return "FAILED (" + r.Error + ")"
	}
	return fmt.Sprintf("%dms", r.WallMs)
}

func printBenchTable(out io.Writer, results []benchResult) {
	fmt.Fprintln(out, "| Sample | Chars | Run | Wall (ms) | Out Chars | Ratio |")
	fmt.Fprintln(out, "|--------|-------|-----|-----------|-----------|-------|")
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(out, "| %-6s | %5d | %d | %9s | %9s | %5s |\n", r.Sample, r.Chars, r.Run, "FAIL", "-", "-")
			continue
		}
		ratio := float64(r.OutChars) / float64(r.Chars)
		fmt.Fprintf(out, "| %-6s | %5d | %d | %9d | %9d | %5.2f |\n", r.Sample, r.Chars, r.Run, r.WallMs, r.OutChars, ratio)
	}
}

func printBenchSummary(out io.Writer, results []benchResult) {
	var ok []benchResult
	for _, r := range results {
		if r.Error == "" {
			ok = append(ok, r)
		}
	}
	if len(ok) == 0 {
		fmt.Fprintf(out, "\nSummary: all %d runs failed\n", len(results))
		return
	}

	var totalMs int64
	var totalChars int
	fastest, slowest := ok[0], ok[0]
	for _, r := range ok {
		totalMs += r.WallMs
		totalChars += r.Chars
		if r.WallMs < fastest.WallMs {
			fastest = r
		}
		if r.WallMs > slowest.WallMs {
			slowest = r
		}
	}

	fmt.Fprintf(out, "\nSummary:\n")
	fmt.Fprintf(out, "- Avg ms/char: %.2f\n", float64(totalMs)/float64(totalChars))
	fmt.Fprintf(out, "- Min wall: %dms (%s)\n", fastest.WallMs, fastest.Sample)
	fmt.Fprintf(out, "- Max wall: %dms (%s)\n", slowest.WallMs, slowest.Sample)
	fmt.Fprintf(out, "- Total runs: %d (%d ok, %d failed)\n", len(results), len(ok), len(results)-len(ok))
}

type benchReport struct {
	Timestamp string        `json:"timestamp"`
	URL       string        `json:"url"`
	Provider  string        `json:"provider"`
	Results   []benchResult `json:"results"`
}

func writeBenchReport(path string, results []benchResult, baseURL, provider string) error {
	data, err := json.MarshalIndent(benchReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       baseURL,
		Provider:  provider,
		Results:   results,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
