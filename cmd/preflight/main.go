// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	complete := 0
	for i := 1; i <= 99; i++ {
		url := strings.TrimSpace(os.Getenv(fmt.Sprintf("URL_%d", i)))
		key := strings.TrimSpace(os.Getenv(fmt.Sprintf("KEY_%d", i)))
		switch {
		case url == "" && key == "":
			continue
		case url == "":
			warn(fmt.Sprintf("KEY_%d set but URL_%d missing; pair will be skipped at runtime", i, i))
		case key == "":
			warn(fmt.Sprintf("URL_%d set but KEY_%d missing; pair will be skipped at runtime", i, i))
		default:
			complete++
			ok(fmt.Sprintf("URL_%d/KEY_%d pair complete (%s)", i, i, url))
		}
	}
	if complete == 0 {
		fail("no complete URL_<n>/KEY_<n> pairs; every run will report zero targets.")
	}

	apiAddr := strings.TrimSpace(os.Getenv("ADDR"))
	if apiAddr == "" {
		warn("ADDR is empty; default in your app may be used.")
	} else {
		ok("ADDR=" + apiAddr)
	}

	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	historyDB := strings.TrimSpace(os.Getenv("HISTORY_DB"))
	switch {
	case db != "":
		ok("DATABASE_URL present (postgres history)")
	case historyDB != "":
		ok("HISTORY_DB=" + historyDB + " (sqlite history)")
	default:
		warn("no history binding; ping history will not survive a restart.")
	}

	ok("preflight passed")
}
