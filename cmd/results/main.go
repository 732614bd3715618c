package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vncsmyrnk/ballotbox/internal/app"
	"github.com/vncsmyrnk/ballotbox/internal/config"
)

func main() {
	cfg, err := config.Load("results", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	// Use a timeout so a locked database cannot hang the report
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	results, err := a.Results.ListResults(ctx)
	if err != nil {
		log.Fatalf("Error fetching results: %v", err)
	}
	tally, err := a.Results.Tally(ctx)
	if err != nil {
		log.Fatalf("Error computing tally: %v", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CANDIDATE\tVOTES")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\n", r.CandidateName, humanize.Comma(r.VoteCount))
	}
	tw.Flush()

	fmt.Printf("\n%s votes counted, %s voters consumed\n",
		humanize.Comma(tally.VotesCounted), humanize.Comma(tally.VotersConsumed))
	if !tally.Balanced() {
		fmt.Println("warning: counts differ (votes of removed candidates are discarded)")
	}
}
