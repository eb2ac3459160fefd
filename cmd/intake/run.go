package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/recourse/intake/internal/logging"
	"github.com/recourse/intake/pkg/domain"
	"github.com/recourse/intake/pkg/flow"
	"github.com/recourse/intake/pkg/session"
)

// runCmd drives one wizard flow interactively on the terminal.
var runCmd = &cobra.Command{
	Use:   "run [flow]",
	Short: "Run an intake flow interactively",
	Long: `Walks through an intake flow step by step on the terminal, saving a
resumable draft along the way. Flows: deposit, hp_action.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := "deposit"
		if len(args) > 0 {
			name = args[0]
		}
		fl, err := flowByName(name)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		store, err := openStore(cfg)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			os.Exit(1)
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		opts := []session.Option{session.WithLogger(logger)}
		if d := cfg.Debounce.Std(); d > 0 {
			opts = append(opts, session.WithDebounce(d))
		}

		ctx := context.Background()
		if resumed, err := session.HasDraft(ctx, store, fl); err == nil && resumed {
			fmt.Println("Resuming saved draft. Use 'intake drafts discard' to start over.")
		}

		sess, err := session.New(ctx, fl, store, opts...)
		if err != nil {
			fmt.Printf("Error opening session: %v\n", err)
			os.Exit(1)
		}
		defer sess.Close()

		w := &wizard{sess: sess, in: bufio.NewScanner(os.Stdin)}
		if err := w.loop(ctx); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

type wizard struct {
	sess *session.Session
	in   *bufio.Scanner
}

// stepOutcome tells the step loop what to do after a prompt.
type stepOutcome int

const (
	// stepContinue keeps prompting the current step's remaining fields.
	stepContinue stepOutcome = iota
	// stepRestart re-renders from the session's current step, after a
	// navigation command changed it mid-prompt.
	stepRestart
	// stepQuit leaves the wizard.
	stepQuit
)

// loop runs the step/prompt cycle until the flow completes or the user
// saves and exits.
func (w *wizard) loop(ctx context.Context) error {
	for !w.sess.Completed() {
		fl := w.sess.Flow()
		step, err := fl.Step(w.sess.Step())
		if err != nil {
			return err
		}

		fmt.Printf("\n== Step %d of %d: %s ==\n", step.Ordinal, fl.Steps(), step.Title)

		outcome, err := w.promptStep(ctx, step)
		if err != nil {
			return err
		}
		if outcome == stepQuit {
			return nil
		}
		// stepRestart falls through: the next iteration re-reads the
		// session's current step.
	}

	export, err := w.sess.Export()
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println("\nAll steps complete. Collected answers:")
	fmt.Println(string(out))
	return w.sess.SaveAndExit(ctx)
}

// promptStep collects the step's visible fields, then attempts to advance.
// A stepRestart outcome means navigation moved the session off this step,
// so no advance is attempted.
func (w *wizard) promptStep(ctx context.Context, step flow.Step) (stepOutcome, error) {
	fl := w.sess.Flow()

	for _, name := range step.Fields {
		if !fl.FieldVisible(name, w.sess.Answers(), w.currentItems()) {
			continue
		}
		outcome, err := w.promptField(ctx, name)
		if err != nil || outcome != stepContinue {
			return outcome, err
		}
	}

	if w.stepCollectsItems(step) {
		if outcome, err := w.promptItems(ctx); err != nil || outcome != stepContinue {
			return outcome, err
		}
	}

	res := w.sess.Advance()
	if res.Advisory != "" {
		fmt.Printf("Note: %s\n", res.Advisory)
	}
	if !res.OK() {
		fmt.Println("Please fix the following before continuing:")
		for field, msg := range res.Fields {
			fmt.Printf("  %s: %s\n", field, msg)
		}
	}
	return stepContinue, nil
}

// stepCollectsItems reports whether this step runs the condition builder.
// Only steps carrying item-level rules do.
func (w *wizard) stepCollectsItems(step flow.Step) bool {
	for _, r := range step.Rules {
		if r.Field == "" {
			return true
		}
	}
	return false
}

func (w *wizard) promptField(ctx context.Context, name string) (stepOutcome, error) {
	fl := w.sess.Flow()
	field, ok := fl.Field(name)
	if !ok {
		return stepContinue, fmt.Errorf("unknown field %s", name)
	}

	current := w.currentDisplay(name, field)
	prompt := name
	if len(field.Options) > 0 {
		prompt = fmt.Sprintf("%s (%s)", name, strings.Join(field.Options, "/"))
	}
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, current)
	}

	for {
		fmt.Printf("%s: ", prompt)
		if !w.in.Scan() {
			return stepQuit, w.sess.SaveAndExit(ctx)
		}
		input := strings.TrimSpace(w.in.Text())

		switch input {
		case "":
			return stepContinue, nil // keep current value
		case "!save":
			fmt.Println("Draft saved. Run the same flow again to resume.")
			return stepQuit, w.sess.SaveAndExit(ctx)
		case "!back":
			w.sess.Back()
			return stepRestart, nil
		case "!quit":
			w.sess.Close()
			return stepQuit, nil
		}

		if err := w.applyInput(field, input); err != nil {
			fmt.Printf("  %v\n", err)
			continue
		}
		return stepContinue, nil
	}
}

func (w *wizard) applyInput(field flow.Field, input string) error {
	switch field.Kind {
	case domain.KindChoice:
		return w.sess.SetChoice(field.Name, input)
	case domain.KindMultiChoice:
		parts := strings.Split(input, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return w.sess.SetMultiChoice(field.Name, parts)
	case domain.KindMoney:
		return w.sess.SetMoney(field.Name, input)
	case domain.KindDate:
		t, err := time.Parse(domain.DateLayout, input)
		if err != nil {
			return fmt.Errorf("expected a date like %s", domain.DateLayout)
		}
		return w.sess.SetDate(field.Name, t)
	case domain.KindBool:
		v, err := strconv.ParseBool(input)
		if err != nil {
			return fmt.Errorf("expected yes/no, got %q", input)
		}
		return w.sess.SetBool(field.Name, v)
	default:
		return w.sess.SetText(field.Name, input)
	}
}

func (w *wizard) currentDisplay(name string, field flow.Field) string {
	v := w.sess.Answers().Get(name)
	if v.IsZero() {
		return ""
	}
	switch field.Kind {
	case domain.KindMultiChoice:
		return strings.Join(v.List, ",")
	case domain.KindDate:
		return v.Date.Format(domain.DateLayout)
	case domain.KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// promptItems runs the condition-list builder used by the inspection flow.
func (w *wizard) promptItems(ctx context.Context) (stepOutcome, error) {
	for {
		items := w.sess.Items()
		fmt.Printf("\nConditions (%d of %d):\n", len(items), w.sess.Flow().MaxItems)
		for i, item := range items {
			fmt.Printf("  %d. [%s] %s: %s\n", i+1, item.Location, item.Room, item.Description)
		}
		fmt.Print("add / edit N / del N / done: ")

		if !w.in.Scan() {
			return stepQuit, w.sess.SaveAndExit(ctx)
		}
		input := strings.Fields(strings.TrimSpace(w.in.Text()))
		if len(input) == 0 {
			continue
		}

		switch input[0] {
		case "done":
			return stepContinue, nil
		case "add":
			item, err := w.sess.AddItem()
			if err != nil {
				fmt.Printf("  %v\n", err)
				continue
			}
			if outcome, err := w.editItem(item.ID); err != nil || outcome != stepContinue {
				return outcome, err
			}
		case "edit", "del":
			if len(input) < 2 {
				fmt.Println("  expected an item number")
				continue
			}
			n, err := strconv.Atoi(input[1])
			if err != nil || n < 1 || n > len(items) {
				fmt.Println("  no such item")
				continue
			}
			id := items[n-1].ID
			if input[0] == "del" {
				w.sess.RemoveItem(id)
				continue
			}
			if outcome, err := w.editItem(id); err != nil || outcome != stepContinue {
				return outcome, err
			}
		case "!save":
			fmt.Println("Draft saved. Run the same flow again to resume.")
			return stepQuit, w.sess.SaveAndExit(ctx)
		default:
			fmt.Println("  unknown command")
		}
	}
}

func (w *wizard) editItem(id string) (stepOutcome, error) {
	patch := domain.ItemPatch{}

	fmt.Printf("  location (%s/%s): ", domain.LocationApartment, domain.LocationPublicArea)
	if !w.in.Scan() {
		return stepQuit, nil
	}
	if s := strings.TrimSpace(w.in.Text()); s != "" {
		patch.Location = &s
	}

	fmt.Print("  room: ")
	if !w.in.Scan() {
		return stepQuit, nil
	}
	if s := strings.TrimSpace(w.in.Text()); s != "" {
		patch.Room = &s
	}

	fmt.Print("  description: ")
	if !w.in.Scan() {
		return stepQuit, nil
	}
	if s := strings.TrimSpace(w.in.Text()); s != "" {
		patch.Description = &s
	}

	if err := w.sess.UpdateItem(id, patch); err != nil {
		fmt.Printf("  %v\n", err)
	}
	return stepContinue, nil
}

func (w *wizard) currentItems() *domain.Collection {
	c := domain.NewCollection(w.sess.Flow().MaxItems)
	c.Replace(w.sess.Items())
	return c
}
