// Command boardcat fetches a public board and renders it as text. It is the
// reference consumer of the read API and doubles as a smoke-test tool:
//
//	boardcat -server http://localhost:8080 <board-id>
//
// With -watch, the board is re-rendered every second so running stopwatches
// tick on screen; interrupt to exit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"openboard/internal/client"
	"openboard/internal/view"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "base URL of the openboard server")
	timeout := flag.Duration("timeout", 15*time.Second, "fetch timeout")
	watch := flag.Bool("watch", false, "re-render every second while a stopwatch is running")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: boardcat [-server URL] [-watch] <board-id>")
		os.Exit(2)
	}
	boardID := flag.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	snapshot, err := client.New(*server).GetPublicBoard(ctx, boardID)
	cancel()
	if err != nil {
		if errors.Is(err, client.ErrBoardNotFound) {
			fmt.Fprintln(os.Stderr, "board not found")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "fetch failed: %v\n", err)
		os.Exit(1)
	}

	board := view.Assemble(snapshot)
	render(os.Stdout, board, time.Now())

	if *watch && hasRunningStopwatch(board) {
		watchBoard(board)
	}
}

// watchBoard re-renders the board each second until interrupted. The ticker
// is owned here and stopped before exit.
func watchBoard(board *view.BoardView) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ticker := view.NewTicker(time.Second, func(now time.Time) {
		fmt.Fprint(os.Stdout, "\033[H\033[2J")
		render(os.Stdout, board, now)
	})
	defer ticker.Stop()

	<-ctx.Done()
}

func hasRunningStopwatch(board *view.BoardView) bool {
	for _, list := range board.Lists {
		for _, card := range list.Cards {
			if card.Stopwatch != nil && card.Stopwatch.StartedAt != nil {
				return true
			}
		}
	}
	return false
}

func render(w io.Writer, board *view.BoardView, now time.Time) {
	if board.ProjectName != "" {
		fmt.Fprintf(w, "%s / %s\n", board.ProjectName, board.Name)
	} else {
		fmt.Fprintln(w, board.Name)
	}
	fmt.Fprintln(w, strings.Repeat("=", 40))

	for _, list := range board.Lists {
		fmt.Fprintf(w, "\n%s (%d)\n", list.Name, list.CardCount)
		fmt.Fprintln(w, strings.Repeat("-", 40))
		for _, card := range list.Cards {
			fmt.Fprintf(w, "  %s%s\n", card.Name, cardBadges(card, now))
		}
	}

	fmt.Fprintln(w, "\nview only")
}

// cardBadges builds the suffix of badges shown after a card name: labels, due
// date, task progress, stopwatch.
func cardBadges(card view.CardView, now time.Time) string {
	var b strings.Builder
	for _, label := range card.Labels {
		fmt.Fprintf(&b, " [%s]", label.Name)
	}
	if card.DueDate != nil {
		fmt.Fprintf(&b, " due:%s", card.DueDate.Format("2006-01-02"))
	}
	if card.TasksTotal > 0 {
		fmt.Fprintf(&b, " tasks:%d/%d", card.TasksCompleted, card.TasksTotal)
		if card.AllTasksDone() {
			b.WriteString(" done")
		}
	}
	if card.Stopwatch != nil {
		fmt.Fprintf(&b, " %s", view.FormatStopwatch(card.Stopwatch, now))
	}
	return b.String()
}
