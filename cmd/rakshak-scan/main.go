package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/rakshak-app/rakshak/internal/detect"
	"github.com/rakshak-app/rakshak/internal/risk"
	"github.com/rakshak-app/rakshak/internal/rules"
)

func main() {
	_ = godotenv.Load()

	smsFlag := flag.String("sms", "", "message body to classify")
	callFlag := flag.String("call", "", "phone number to classify")
	transcriptFlag := flag.String("transcript", "", "voice transcript accompanying the call")
	durationFlag := flag.Int("duration", -1, "call duration in seconds (-1 means unknown)")
	seedFlag := flag.Int64("seed", 0, "random seed (0 means time-based)")
	rulesFlag := flag.String("rules", "", "path to a rule overrides file")
	flag.Parse()

	if (*smsFlag == "") == (*callFlag == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -sms or -call is required")
		flag.Usage()
		os.Exit(2)
	}

	repo, err := rules.LoadOverrides(*rulesFlag)
	if err != nil {
		log.Fatalf("failed to load rules: %v", err)
	}

	src := risk.DefaultSource()
	if *seedFlag != 0 {
		src = risk.NewSource(*seedFlag)
	}
	classifier := detect.New(repo, src)

	var out any
	if *smsFlag != "" {
		out = classifier.ClassifyText(*smsFlag)
	} else {
		cc := detect.CallContext{Transcript: *transcriptFlag}
		if *durationFlag >= 0 {
			d := *durationFlag
			cc.DurationSeconds = &d
		}
		out = classifier.ClassifyCall(*callFlag, cc)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
}
