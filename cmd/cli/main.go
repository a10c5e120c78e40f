package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

type probeResult struct {
	TargetName string `json:"target_name"`
	Success    bool   `json:"success"`
	StatusCode *int   `json:"status_code"`
	Error      string `json:"error"`
	DurationMS int64  `json:"duration_ms"`
}

type runSummary struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Results []probeResult `json:"results"`
}

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	resp, err := http.Get(api + "/")
	if err != nil {
		fmt.Println("Error contacting API:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var sum runSummary
	if err := json.NewDecoder(resp.Body).Decode(&sum); err != nil {
		fmt.Println("Bad response from API:", err)
		os.Exit(1)
	}

	fmt.Println(sum.Message)
	for _, r := range sum.Results {
		mark := "✔"
		detail := "ok"
		if !r.Success {
			mark = "✖"
			detail = r.Error
		}
		if r.StatusCode != nil {
			detail = fmt.Sprintf("%s (HTTP %d)", detail, *r.StatusCode)
		}
		fmt.Printf("%s %s: %s, %dms\n", mark, r.TargetName, detail, r.DurationMS)
	}
	if !sum.Success {
		os.Exit(1)
	}
}
