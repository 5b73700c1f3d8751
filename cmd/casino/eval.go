package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/minicasino/internal/deck"
	"github.com/lox/minicasino/internal/poker"
)

// EvalCmd classifies a poker hand
type EvalCmd struct {
	Cards []string `arg:"" help:"Cards to evaluate, e.g. 'AsKsQsJsTs' or 'As Ks Qs Js Ts 2d 3c'"`
}

func (c *EvalCmd) Run(g *Globals) error {
	return evaluate(os.Stdout, strings.Join(c.Cards, ""))
}

func evaluate(w io.Writer, input string) error {
	cards, err := deck.ParseCards(input)
	if err != nil {
		return fmt.Errorf("parsing cards: %w", err)
	}
	if err := checkDuplicates(cards); err != nil {
		return err
	}

	rank, err := poker.EvaluateBest(cards)
	if err != nil {
		return fmt.Errorf("evaluating %d cards: %w", len(cards), err)
	}

	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Cards:     "), renderCards(cards))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Best five: "), renderCards(rank.Cards()))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Hand:      "), headerStyle.Render(rank.String()))
	fmt.Fprintf(w, "%s %d of %d\n", labelStyle.Render("Ordinal:   "), rank.Ordinal(), len(poker.Categories))
	fmt.Fprintf(w, "%s %dx\n", labelStyle.Render("Multiplier:"), rank.Multiplier())
	return nil
}

func checkDuplicates(cards []deck.Card) error {
	seen := make(map[deck.Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			return fmt.Errorf("duplicate card found: %s", c)
		}
		seen[c] = true
	}
	return nil
}
