package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
	"github.com/nguyentantai21042004/kinetic-reader/internal/timeline"
)

func playCmd() *cobra.Command {
	var (
		wpm  int
		rate float64
	)

	cmd := &cobra.Command{
		Use:   "play [document file]",
		Short: "Play a processed document in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			var doc document.Document
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parse document: %w", err)
			}
			if doc.ThoughtCount() == 0 {
				return fmt.Errorf("document has no thoughts")
			}

			tl := timeline.New()
			tl.Load(&doc, wpm)
			tl.SetRate(rate)

			done := make(chan struct{})

			tl.On(timeline.EventSectionChange, func(ev timeline.Event) {
				fmt.Printf("\n== %s ==\n", ev.Section.Title)
			})
			tl.On(timeline.EventThoughtChange, func(ev timeline.Event) {
				fmt.Printf("  %s\n", ev.Thought.Text)
			})
			tl.On(timeline.EventSectionEnd, func(ev timeline.Event) {
				if ev.Section.Recap != "" {
					fmt.Printf("  -- %s\n", ev.Section.Recap)
				}
			})
			tl.On(timeline.EventEnd, func(timeline.Event) {
				close(done)
			})

			total := time.Duration(tl.TotalDuration()) * time.Millisecond
			fmt.Printf("Playing %d thoughts, %s at %d wpm (%s)\n",
				len(tl.Thoughts()), total.Round(time.Second), wpm, timeline.SpeedLabel(wpm))

			first := tl.Thoughts()[0]
			fmt.Printf("\n== %s ==\n", first.SectionTitle)
			fmt.Printf("  %s\n", first.Text)

			tl.Play()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			select {
			case <-done:
				for _, takeaway := range doc.Takeaways {
					fmt.Printf("* %s\n", takeaway)
				}
			case <-sigChan:
				tl.Pause()
				fmt.Println("\nStopped")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&wpm, "wpm", timeline.DefaultWpm, "reading speed in words per minute")
	cmd.Flags().Float64Var(&rate, "rate", 1.0, "playback rate multiplier")

	return cmd
}
