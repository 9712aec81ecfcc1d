// gammon - backgammon legal-play generation and bot analysis from the
// command line.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yourusername/gammon/internal/dice"
	"github.com/yourusername/gammon/pkg/board"
	"github.com/yourusername/gammon/pkg/bot"
	"github.com/yourusername/gammon/pkg/game"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "plays":
		cmdPlays(args)
	case "best":
		cmdBest(args)
	case "pips":
		cmdPips(args)
	case "show":
		cmdShow(args)
	case "selfplay":
		cmdSelfPlay(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gammon - Backgammon play generation and analysis

Usage: gammon <command> [options]

Commands:
  plays     List every maximal legal play for a roll
  best      Let a bot pick the best play for a roll
  pips      Show the pip count of a position
  show      Render a position as an ASCII board
  selfplay  Play a full bot-vs-bot game

Use "gammon <command> -h" for command-specific help.

Position Format:
  Positions are given as gnubg-style position IDs, for the player on
  roll. Use "start" for the standard starting position.
  Example: 4HPwATDgc/ABMA`)
}

func parsePlayer(s string) board.Color {
	switch s {
	case "x", "X", "":
		return board.X
	case "o", "O":
		return board.O
	}
	fmt.Fprintln(os.Stderr, "Error: player must be x or o")
	os.Exit(1)
	return board.X
}

func parsePosition(posStr string, onRoll board.Color) *board.Board {
	if posStr == "" {
		fmt.Fprintln(os.Stderr, "Error: position required")
		os.Exit(1)
	}
	if posStr == "start" {
		return board.Start()
	}
	// gnubg writes "positionID:matchID"; only the position part matters.
	if idx := strings.Index(posStr, ":"); idx >= 0 {
		posStr = posStr[:idx]
	}
	b, err := board.FromPositionID(posStr, onRoll)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid position ID: %v\n", err)
		os.Exit(1)
	}
	return b
}

func parseDice(diceStr string) dice.Roll {
	parts := strings.Split(diceStr, ",")
	if len(parts) != 2 {
		parts = strings.Split(diceStr, "-")
	}
	if len(parts) != 2 {
		fmt.Fprintln(os.Stderr, "Error: dice should be in format '3,1' or '3-1'")
		os.Exit(1)
	}

	d1, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	d2, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || d1 < 1 || d1 > 6 || d2 < 1 || d2 > 6 {
		fmt.Fprintln(os.Stderr, "Error: dice values must be 1-6")
		os.Exit(1)
	}
	return dice.Roll{d1, d2}
}

func pickBot(name string) bot.Bot {
	switch name {
	case "", "linear":
		return bot.NewLinearBot()
	case "random":
		return bot.NewRandomBot()
	}
	fmt.Fprintf(os.Stderr, "Error: unknown bot %q (want linear or random)\n", name)
	os.Exit(1)
	return nil
}

func cmdPlays(args []string) {
	fs := flag.NewFlagSet("plays", flag.ExitOnError)
	posFlag := fs.String("position", "start", "Position ID, or \"start\"")
	diceFlag := fs.String("dice", "", "Dice roll (e.g., 3,1 or 3-1)")
	playerFlag := fs.String("player", "x", "Side on roll (x or o)")
	fs.Parse(args)

	if *diceFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: dice required")
		fmt.Fprintln(os.Stderr, "Usage: gammon plays -position <positionID> -dice <roll>")
		os.Exit(1)
	}

	player := parsePlayer(*playerFlag)
	b := parsePosition(*posFlag, player)
	roll := parseDice(*diceFlag)

	plays := b.LegalPlays(player, roll.Values())
	if len(plays) == 0 {
		fmt.Printf("No legal plays for %s with %s (turn is skipped)\n", player, roll)
		return
	}

	fmt.Printf("%d legal plays for %s with %s:\n", len(plays), player, roll)
	for i, p := range plays {
		fmt.Printf("  %2d. %s\n", i+1, p)
	}
}

func cmdBest(args []string) {
	fs := flag.NewFlagSet("best", flag.ExitOnError)
	posFlag := fs.String("position", "start", "Position ID, or \"start\"")
	diceFlag := fs.String("dice", "", "Dice roll (e.g., 3,1 or 3-1)")
	playerFlag := fs.String("player", "x", "Side on roll (x or o)")
	botFlag := fs.String("bot", "linear", "Bot to choose with (linear or random)")
	fs.Parse(args)

	if *diceFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: dice required")
		fmt.Fprintln(os.Stderr, "Usage: gammon best -position <positionID> -dice <roll>")
		os.Exit(1)
	}

	player := parsePlayer(*playerFlag)
	b := parsePosition(*posFlag, player)
	roll := parseDice(*diceFlag)
	chooser := pickBot(*botFlag)

	plays := b.LegalPlays(player, roll.Values())
	if len(plays) == 0 {
		fmt.Printf("No legal plays for %s with %s (turn is skipped)\n", player, roll)
		return
	}

	choice := chooser.ChoosePlay(b, player, plays)
	if choice == nil {
		choice = plays[0]
	}

	after := b.Copy()
	if err := after.ApplyPlay(player, choice); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	eval := bot.NewLinearBot()
	fmt.Printf("Best play (%s): %s\n", chooser.Name(), choice)
	fmt.Printf("  Phase:  %s\n", bot.Classify(after))
	fmt.Printf("  Score:  %+.3f\n", eval.Score(after, player))
	if eval.ShouldDouble(b, player) {
		fmt.Println("  Cube:   double")
	}
}

func cmdPips(args []string) {
	fs := flag.NewFlagSet("pips", flag.ExitOnError)
	posFlag := fs.String("position", "start", "Position ID, or \"start\"")
	playerFlag := fs.String("player", "x", "Side on roll (x or o)")
	fs.Parse(args)

	player := parsePlayer(*playerFlag)
	b := parsePosition(*posFlag, player)

	px := b.PipCount(board.X)
	po := b.PipCount(board.O)
	fmt.Printf("Pip count: X %d, O %d (X %+d)\n", px, po, po-px)
}

func cmdShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	posFlag := fs.String("position", "start", "Position ID, or \"start\"")
	playerFlag := fs.String("player", "x", "Side on roll (x or o)")
	fs.Parse(args)

	player := parsePlayer(*playerFlag)
	b := parsePosition(*posFlag, player)

	fmt.Print(b)
	fmt.Printf("position %s (%s on roll)\n", b.PositionID(player), player)
}

func cmdSelfPlay(args []string) {
	fs := flag.NewFlagSet("selfplay", flag.ExitOnError)
	botXFlag := fs.String("bot-x", "linear", "Bot playing X (linear or random)")
	botOFlag := fs.String("bot-o", "linear", "Bot playing O (linear or random)")
	seedFlag := fs.Uint64("seed", 0, "Random seed (0 = random)")
	verbose := fs.Bool("v", false, "Log every turn")
	fs.Parse(args)

	var roller dice.Roller
	if *seedFlag != 0 {
		roller = dice.NewSeededRoller(*seedFlag)
	} else {
		roller = dice.NewRoller()
	}

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}

	g := game.New(pickBot(*botXFlag), pickBot(*botOFlag), roller, logger)
	res := g.Play()

	kind := "single game"
	switch res.Points {
	case 2:
		kind = "gammon"
	case 3:
		kind = "backgammon"
	}
	fmt.Printf("%s wins a %s (%d point(s)) after %d turns\n",
		res.Winner, kind, res.Points, res.Turns)
	fmt.Print(g.Board)
}
