// Command genalerts writes a canned alert scenario to the test-injection
// file so a running sign can be exercised without waiting for weather.
// The sign picks the file up within one update interval; frames driven by
// it carry a TEST stamp.
//
// Usage:
//
//	go run ./cmd/genalerts tornado              # tier-1 full takeover
//	go run ./cmd/genalerts dual                 # two tier-1, shows weighting
//	go run ./cmd/genalerts watch                # tier-2 one-shot cycle
//	go run ./cmd/genalerts clear                # remove the injection file
//	go run ./cmd/genalerts status               # print the signal artifact
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/couchcryptid/matrix-sign/internal/scenario"
	"github.com/couchcryptid/matrix-sign/internal/signal"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	injectFile := flag.String("inject-file", "/tmp/weather_alert_test.json", "path of the test-injection file")
	signalFile := flag.String("signal-file", "/tmp/ledmatrix_weather_alert_active", "path of the priority signal artifact")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return fmt.Errorf("expected one command: %v, clear, or status", scenario.Names())
	}
	cmd := flag.Arg(0)

	switch cmd {
	case "clear":
		if err := os.Remove(*injectFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", *injectFile, err)
		}
		fmt.Printf("cleared %s\n", *injectFile)
		return nil

	case "status":
		return printStatus(*injectFile, *signalFile)

	default:
		alerts, err := scenario.Build(cmd, time.Now().UTC())
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(alerts, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(*injectFile, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", *injectFile, err)
		}
		fmt.Printf("injected %q -> %s\n", cmd, *injectFile)
		for _, a := range alerts {
			fmt.Printf("  %s (%s)\n", a.Kind, a.Severity)
		}
		return nil
	}
}

func printStatus(injectFile, signalFile string) error {
	if _, err := os.Stat(injectFile); err == nil {
		fmt.Printf("injection ACTIVE: %s\n", injectFile)
	} else {
		fmt.Println("injection inactive")
	}

	st, ok, err := signal.NewFilePort(signalFile).Read()
	if err != nil {
		return fmt.Errorf("read %s: %w", signalFile, err)
	}
	if !ok {
		fmt.Println("signal: no takeover active")
		return nil
	}
	fmt.Printf("signal: active=%v tier=%d events=%v\n", st.Active, st.Tier, st.Events)
	return nil
}
