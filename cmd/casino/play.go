package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/minicasino/internal/blackjack"
	"github.com/lox/minicasino/internal/bonus"
	"github.com/lox/minicasino/internal/config"
	"github.com/lox/minicasino/internal/poker"
	"github.com/lox/minicasino/internal/randutil"
	"github.com/lox/minicasino/internal/roulette"
	"github.com/lox/minicasino/internal/session"
	"github.com/lox/minicasino/internal/slots"
	"github.com/lox/minicasino/internal/wager"
)

// PlayCmd runs an interactive game at the terminal
type PlayCmd struct {
	Game string `arg:"" enum:"blackjack,poker,roulette,slots" help:"Game to play (blackjack, poker, roulette, slots)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger := setupLogger(os.Stderr, cfg.Casino.LogLevel, g.Debug)

	game, err := wager.ParseGame(c.Game)
	if err != nil {
		return err
	}

	sess := newSession(cfg, logger)
	logger.Debug("Session started", "game", game, "chips", sess.Balance(), "seed", cfg.Casino.Seed)

	t := newTable(sess, game, logger, false)
	if _, err := tea.NewProgram(t, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	fmt.Println(t.farewell())
	return nil
}

func newSession(cfg *config.Config, logger *log.Logger) *session.Session {
	return session.New(session.Config{
		StartingChips: cfg.Casino.StartingChips,
		RNG:           randutil.NewFromConfig(cfg.Casino.Seed),
		Limits:        cfg.Limits(),
		BonusAmount:   cfg.Bonus.Amount,
		BonusCooldown: cfg.BonusCooldown(),
		Logger:        logger,
	})
}

var errQuit = errors.New("quit")

// reservedRows is the height taken by the title, status line, prompt and help.
const reservedRows = 5

// table is the bubbletea model for one game. Commands typed at the prompt
// are run by exec, which writes to out; the output is moved into the log.
type table struct {
	sess   *session.Session
	game   wager.Game
	logger *log.Logger
	out    *strings.Builder

	input   textinput.Model
	logView viewport.Model
	gameLog []string

	width, height int
	quitting      bool

	testMode    bool
	capturedLog []string
}

func newTable(sess *session.Session, game wager.Game, logger *log.Logger, testMode bool) *table {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Type a command, 'help' for the list"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = fmt.Sprintf("%s> ", game)

	t := &table{
		sess:        sess,
		game:        game,
		logger:      logger.WithPrefix("table"),
		out:         &strings.Builder{},
		input:       ti,
		logView:     vp,
		testMode:    testMode,
		capturedLog: []string{},
	}
	t.printHelp()
	t.flush()
	return t
}

func (t *table) Init() tea.Cmd {
	return textinput.Blink
}

func (t *table) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		t.logView.Width = max(msg.Width, 1)
		t.logView.Height = max(msg.Height-reservedRows, 1)
		t.logView.GotoBottom()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			t.quitting = true
			return t, tea.Quit
		case "enter":
			line := strings.TrimSpace(t.input.Value())
			t.input.SetValue("")
			if cmd := t.submit(line); cmd != nil {
				return t, cmd
			}
		case "pgup":
			t.logView.HalfPageUp()
		case "pgdown":
			t.logView.HalfPageDown()
		}
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	cmds = append(cmds, cmd)

	return t, tea.Batch(cmds...)
}

func (t *table) View() string {
	if t.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf(" ♠ ♥ %s ♦ ♣ ", t.game.Label())))
	b.WriteString("\n")
	b.WriteString(t.logView.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("[%d chips | %s]", t.sess.Balance(), strings.Join(t.actions(), " "))))
	b.WriteString("\n")
	b.WriteString(t.input.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Enter to submit • PgUp/PgDn to scroll • Ctrl+C to quit"))
	return b.String()
}

// submit runs one typed line and returns tea.Quit once the player leaves.
func (t *table) submit(line string) tea.Cmd {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	t.addLogEntry(mutedStyle.Render("> " + line))

	err := t.exec(strings.ToLower(fields[0]), fields[1:])
	if errors.Is(err, errQuit) {
		t.addLogEntry(t.farewell())
		t.quitting = true
		return tea.Quit
	}
	if err != nil {
		t.logger.Debug("Command rejected", "command", fields[0], "error", err)
		fmt.Fprintln(t.out, lossStyle.Render(err.Error()))
	}
	t.flush()
	return nil
}

func (t *table) farewell() string {
	return fmt.Sprintf("Leaving with %d chips", t.sess.Balance())
}

// flush moves pending command output into the log.
func (t *table) flush() {
	text := strings.TrimRight(t.out.String(), "\n")
	t.out.Reset()
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		t.addLogEntry(line)
	}
}

func (t *table) addLogEntry(entry string) {
	t.gameLog = append(t.gameLog, entry)

	if t.testMode {
		t.capturedLog = append(t.capturedLog, entry)
		return
	}

	t.logView.SetContent(strings.Join(t.gameLog, "\n"))
	if t.logView.Height > 0 && t.logView.Width > 0 {
		t.logView.GotoBottom()
	}
}

// CapturedLog returns the log lines written so far (test mode only).
func (t *table) CapturedLog() []string {
	if !t.testMode {
		return nil
	}
	result := make([]string, len(t.capturedLog))
	copy(result, t.capturedLog)
	return result
}

// InjectCommand runs a line as if it had been typed (test mode only).
func (t *table) InjectCommand(line string) error {
	if !t.testMode {
		return fmt.Errorf("command injection only available in test mode")
	}
	if t.quitting {
		return fmt.Errorf("table closed")
	}
	t.submit(line)
	return nil
}

func (t *table) IsTestMode() bool {
	return t.testMode
}

func (t *table) exec(cmd string, args []string) error {
	switch cmd {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		t.printHelp()
		return nil
	case "balance":
		fmt.Fprintf(t.out, "%d chips\n", t.sess.Balance())
		return nil
	case "stats":
		fmt.Fprint(t.out, renderStats(t.sess.Recorder()))
		return nil
	case "history":
		fmt.Fprint(t.out, renderHistory(t.sess.Recorder()))
		return nil
	case "bonus":
		amount, err := t.sess.ClaimBonus()
		if errors.Is(err, bonus.ErrCooldown) {
			return fmt.Errorf("daily bonus available in %s", t.sess.Bonus().Remaining().Round(time.Second))
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(t.out, winStyle.Render(fmt.Sprintf("Claimed %d bonus chips", amount)))
		return nil
	case "reset":
		t.sess.ResetChips()
		fmt.Fprintf(t.out, "Chips reset to %d\n", t.sess.Balance())
		return nil
	}

	switch t.game {
	case wager.Blackjack:
		return t.blackjackCmd(cmd, args)
	case wager.Poker:
		return t.pokerCmd(cmd, args)
	case wager.Roulette:
		return t.rouletteCmd(cmd, args)
	case wager.Slots:
		return t.slotsCmd(cmd, args)
	default:
		return fmt.Errorf("unknown game %s", t.game)
	}
}

func (t *table) actions() []string {
	var names []string
	switch t.game {
	case wager.Blackjack:
		for _, a := range t.sess.Blackjack().Actions() {
			names = append(names, string(a))
		}
	case wager.Poker:
		for _, a := range t.sess.Poker().Actions() {
			names = append(names, string(a))
		}
	case wager.Roulette:
		for _, a := range t.sess.Roulette().Actions() {
			names = append(names, string(a))
		}
	case wager.Slots:
		for _, a := range t.sess.Slots().Actions() {
			names = append(names, string(a))
		}
	}
	return names
}

func (t *table) printHelp() {
	var lines []string
	switch t.game {
	case wager.Blackjack:
		lines = []string{"deal <bet>", "hit", "stand", "double", "new"}
	case wager.Poker:
		lines = []string{"deal <bet>", "call | check | showdown", "fold", "new"}
	case wager.Roulette:
		lines = []string{"bet <spot> <amount>   spots: 0-36 red black odd even low high dozen1-3 column1-3", "bets", "clear", "spin"}
	case wager.Slots:
		lines = []string{"spin <bet>"}
	}
	lines = append(lines, "balance", "stats", "history", "bonus", "reset", "quit")
	fmt.Fprintln(t.out, headerStyle.Render("Commands"))
	for _, l := range lines {
		fmt.Fprintf(t.out, "  %s\n", l)
	}
}

func parseAmount(args []string, i int) (int64, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("%w: amount required", wager.ErrInvalidBet)
	}
	n, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", wager.ErrInvalidBet, args[i])
	}
	return n, nil
}

func (t *table) blackjackCmd(cmd string, args []string) error {
	var (
		s   *wager.Settlement
		err error
	)
	switch blackjack.Action(cmd) {
	case blackjack.Deal:
		bet, perr := parseAmount(args, 0)
		if perr != nil {
			return perr
		}
		s, err = t.sess.DealBlackjack(bet)
	case blackjack.Hit:
		s, err = t.sess.Hit()
	case blackjack.Stand:
		s, err = t.sess.Stand()
	case blackjack.DoubleDown:
		s, err = t.sess.DoubleDown()
	case blackjack.NewGame:
		err = t.sess.NewBlackjackRound()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		return err
	}
	t.showBlackjack(s)
	return nil
}

func (t *table) showBlackjack(s *wager.Settlement) {
	g := t.sess.Blackjack()
	if g.State() == blackjack.Betting {
		fmt.Fprintln(t.out, mutedStyle.Render("Place a bet to deal"))
		return
	}
	if g.State() == blackjack.Playing {
		fmt.Fprintf(t.out, "Dealer: %s (showing %d)\n", renderHidden(g.DealerHand(), 1), g.VisibleDealerScore())
	} else {
		fmt.Fprintf(t.out, "Dealer: %s (%d)\n", renderCards(g.DealerHand()), g.DealerScore())
	}
	fmt.Fprintf(t.out, "You:    %s (%d)\n", renderCards(g.PlayerHand()), g.PlayerScore())
	if s != nil {
		fmt.Fprintln(t.out, renderSettlement(s))
	}
}

func (t *table) pokerCmd(cmd string, args []string) error {
	var (
		s   *wager.Settlement
		err error
	)
	switch poker.Action(cmd) {
	case poker.Deal:
		bet, perr := parseAmount(args, 0)
		if perr != nil {
			return perr
		}
		err = t.sess.DealPoker(bet)
	case poker.Call, poker.Check, poker.ShowCards:
		g := t.sess.Poker()
		if !slices.Contains(g.Actions(), poker.Action(cmd)) {
			return wager.IllegalTransition(cmd, g.Street())
		}
		s, err = t.sess.AdvancePoker()
	case poker.Fold:
		s, err = t.sess.FoldPoker()
	case poker.NewGame:
		err = t.sess.NewPokerRound()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		return err
	}
	t.showPoker(s)
	return nil
}

func (t *table) showPoker(s *wager.Settlement) {
	g := t.sess.Poker()
	if g.Street() == poker.Betting {
		fmt.Fprintln(t.out, mutedStyle.Render("Place a bet to deal"))
		return
	}
	fmt.Fprintf(t.out, "%s  pot %d\n", headerStyle.Render(g.Street().String()), g.Pot())
	if sd := g.ShowdownResult(); sd != nil {
		fmt.Fprintf(t.out, "Dealer: %s %s\n", renderCards(g.DealerCards()), labelStyle.Render(sd.Dealer.String()))
	} else if g.Street() == poker.Result {
		fmt.Fprintf(t.out, "Dealer: %s\n", renderCards(g.DealerCards()))
	} else {
		fmt.Fprintf(t.out, "Dealer: %s\n", renderHidden(g.DealerCards(), 2))
	}
	if len(g.Community()) > 0 {
		fmt.Fprintf(t.out, "Board:  %s\n", renderCards(g.Community()))
	}
	you := renderCards(g.PlayerCards())
	if sd := g.ShowdownResult(); sd != nil {
		you += " " + labelStyle.Render(sd.Player.String())
	}
	fmt.Fprintf(t.out, "You:    %s\n", you)
	if s != nil {
		fmt.Fprintln(t.out, renderSettlement(s))
	}
}

func (t *table) rouletteCmd(cmd string, args []string) error {
	switch cmd {
	case string(roulette.PlaceBet):
		if len(args) < 1 {
			return fmt.Errorf("%w: usage: bet <spot> <amount>", wager.ErrInvalidBet)
		}
		sel, err := roulette.ParseSelection(args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args, 1)
		if err != nil {
			return err
		}
		if err := t.sess.PlaceRouletteBet(sel, amount); err != nil {
			return err
		}
		t.showBets()
		return nil
	case "bets":
		t.showBets()
		return nil
	case string(roulette.ClearBets):
		refund, err := t.sess.ClearRouletteBets()
		if err != nil {
			return err
		}
		fmt.Fprintf(t.out, "Refunded %d chips\n", refund)
		return nil
	case string(roulette.Spin):
		result, s, err := t.sess.SpinRoulette()
		if err != nil {
			return err
		}
		style := blackCardStyle
		switch result.Pocket.Color() {
		case roulette.ColorRed:
			style = redCardStyle
		case roulette.ColorGreen:
			style = winStyle
		}
		fmt.Fprintf(t.out, "Ball lands on %s\n", style.Render(fmt.Sprintf("%d %s", result.Pocket, result.Pocket.Color())))
		for _, o := range result.Outcomes {
			if o.Won {
				fmt.Fprintf(t.out, "  %-12s %4d  %s\n", o.Selection.Name(), o.Amount, winStyle.Render(fmt.Sprintf("pays %d", o.Winnings)))
			} else {
				fmt.Fprintf(t.out, "  %-12s %4d  %s\n", o.Selection.Name(), o.Amount, lossStyle.Render("loses"))
			}
		}
		fmt.Fprintln(t.out, renderSettlement(s))
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (t *table) showBets() {
	bets := t.sess.Roulette().Bets()
	if len(bets) == 0 {
		fmt.Fprintln(t.out, mutedStyle.Render("No bets placed"))
		return
	}
	for _, b := range bets {
		fmt.Fprintf(t.out, "  %-12s %4d\n", b.Selection.Name(), b.Amount)
	}
	fmt.Fprintf(t.out, "  %-12s %4d\n", "Total", t.sess.Roulette().TotalStaked())
}

func (t *table) slotsCmd(cmd string, args []string) error {
	if slots.Action(cmd) != slots.SpinReels {
		return fmt.Errorf("unknown command %q", cmd)
	}
	bet, err := parseAmount(args, 0)
	if err != nil {
		return err
	}
	result, s, err := t.sess.SpinSlots(bet)
	if err != nil {
		return err
	}
	fmt.Fprintf(t.out, "[ %s ]\n", renderCards(result.Line[:]))
	fmt.Fprintln(t.out, renderSettlement(s))
	return nil
}
