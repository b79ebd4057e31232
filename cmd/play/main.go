// cmd/play/main.go
//
// Terminal client for the guessing game. Talks to a running server, drives
// the round engine locally, and renders rounds, hints and stats as text.
//
// Commands:
//
//	<name>      submit a guess
//	?<prefix>   look up suggestions (already-guessed names are omitted)
//	/up /down   move the suggestion highlight
//	/pick       guess the highlighted suggestion
//	/next       skip to a fresh round (abandoning forfeits score and streak)
//	/reveal     give up and show the answer
//	/quit       leave
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BVSTSirop/pokeguess/internal/config"
	"github.com/BVSTSirop/pokeguess/internal/engine"
	"github.com/BVSTSirop/pokeguess/internal/hint"
	"github.com/BVSTSirop/pokeguess/internal/ledger"
	"github.com/BVSTSirop/pokeguess/internal/mode"
	"github.com/BVSTSirop/pokeguess/internal/obfuscate"
	"github.com/BVSTSirop/pokeguess/internal/play"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "server base URL")
	modeID := flag.String("mode", "sprite", "game mode id")
	gen := flag.String("gen", "", "generation filter, e.g. 1 or 1,2")
	flag.Parse()

	cfg := config.Load()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if _, ok := mode.Get(*modeID); !ok {
		log.Fatal().Str("mode", *modeID).Strs("known", mode.IDs()).Msg("unknown mode")
	}

	client := play.NewClient(*server, *modeID, cfg.DefaultLang, *gen, log)
	led := ledger.New(ledger.NewMemoryStore(), "local", *modeID, ledger.DefaultPolicy)
	sess := play.NewSession(client, led, obfuscate.ForMode(*modeID), play.Options{
		Thresholds:    cfg.Thresholds(),
		OnSuggestions: printSuggestions,
	})

	ctx := context.Background()
	if err := sess.LoadCorpus(ctx); err != nil {
		log.Warn().Err(err).Msg("suggestion corpus unavailable")
	}

	cb := engine.Callbacks{
		OnRoundLoaded: func(ev engine.RoundLoadedEvent) {
			fmt.Println("--- new round ---")
			for k, v := range ev.Round.Payload {
				fmt.Printf("  %s: %v\n", k, v)
			}
		},
		OnWrong: func(ev engine.WrongEvent) {
			fmt.Printf("wrong (%d). score %d, streak %d\n", ev.Wrong, ev.Stats.Score, ev.Stats.Streak)
			for _, h := range ev.NewHints {
				fmt.Println("  hint, " + describeHint(h))
			}
		},
		OnCorrect: func(ev engine.CorrectEvent) {
			fmt.Printf("correct! it was %s. score %d, streak %d\n", ev.Name, ev.Stats.Score, ev.Stats.Streak)
			fmt.Println("type /next for another round")
		},
		OnRevealed: func(ev engine.RevealedEvent) {
			fmt.Printf("it was %s. score and streak reset.\n", ev.Answer)
		},
	}
	if err := sess.Engine.Start(ctx, cb); err != nil {
		log.Fatal().Err(err).Msg("start session")
	}

	sc := bufio.NewScanner(os.Stdin)
	for fmt.Print("> "); sc.Scan(); fmt.Print("> ") {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
		case line == "/quit":
			return
		case line == "/next":
			if err := sess.Engine.Next(ctx); err != nil {
				log.Error().Err(err).Msg("next round")
			}
		case line == "/reveal":
			if _, err := sess.Engine.Reveal(ctx); err != nil {
				fmt.Println(err)
			}
		case line == "/up":
			sess.Up()
			printHighlighted(sess)
		case line == "/down":
			sess.Down()
			printHighlighted(sess)
		case line == "/pick":
			if name, ok := sess.Pick(); ok {
				submit(ctx, sess, name, log)
			} else {
				fmt.Println("nothing highlighted")
			}
		case strings.HasPrefix(line, "?"):
			sess.Suggest(strings.TrimPrefix(line, "?"))
		default:
			submit(ctx, sess, line, log)
		}
	}
}

func submit(ctx context.Context, sess *play.Session, raw string, log zerolog.Logger) {
	switch err := sess.Engine.SubmitGuess(ctx, raw); err {
	case nil:
	case engine.ErrBlankGuess, engine.ErrNotReady, engine.ErrRoundOver, engine.ErrAlreadyGuessed:
		fmt.Println(err)
	default:
		log.Error().Err(err).Msg("submit guess")
	}
}

func describeHint(h hint.Hint) string {
	switch h.Level {
	case hint.LevelLetter:
		return "first letter: " + h.Letter
	case hint.LevelColor:
		return "color: " + h.Color
	case hint.LevelGeneration:
		return fmt.Sprintf("generation: %d", h.Generation)
	case hint.LevelSilhouette:
		return "silhouette: " + h.SpriteURL
	}
	return ""
}

func printSuggestions(items []string) {
	if len(items) == 0 {
		fmt.Println("no suggestions")
		return
	}
	for _, it := range items {
		fmt.Println("  " + it)
	}
}

func printHighlighted(sess *play.Session) {
	items := sess.Suggestions()
	for i, it := range items {
		marker := "  "
		if i == sess.Active() {
			marker = "> "
		}
		fmt.Println(marker + it)
	}
}
