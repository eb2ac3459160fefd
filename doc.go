/*
Package intake is a wizard session engine for guided legal intake flows.

It models an intake questionnaire as a flow: an ordered sequence of steps
over a declared set of typed fields geared with a declarative rule table.
The engine owns the Answer Store (the single source of truth for a
session's answers), gates forward navigation on per-step validation,
shares the same predicates between validation and conditional visibility,
and persists a resumable draft with debounced write-behind.

# Concept

An application ("Host") renders steps and forwards user events as typed
commands (SetText, SetChoice, SetDate, AddItem, ...). The engine applies
them, revalidates on demand, and decides navigation. This keeps the core
logic decoupled from the surface: the same session drives a terminal
wizard, an HTTP API, or any other front end.

# Key Features

  - Gated navigation: Advance validates the current step and refuses with
    the complete error set; Back and Jump never validate, so users can
    always retreat or revisit.
  - Declarative rules: each step's requirements are rows in a rule table,
    evaluated in order without short-circuiting. Rules on hidden fields
    are skipped, so a field is never required while invisible.
  - Resumable drafts: every mutation schedules a debounced write of the
    full session snapshot under the flow's draft key. Hydration is
    lenient; a corrupt field falls back to its default.
  - Pluggable storage: drafts persist through the ports.DraftStore
    interface, with in-memory, filesystem and Redis adapters included.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/recourse/intake"
		"github.com/recourse/intake/pkg/adapters/memory"
	)

	func main() {
		ctx := context.Background()
		sess, err := intake.Open(ctx, "deposit_claim", memory.NewStore())
		if err != nil {
			log.Fatal(err)
		}
		defer sess.Close()

		// Main loop: render the current step, apply commands, advance.
		if err := sess.SetChoice("caseType", "security_deposit"); err != nil {
			log.Fatal(err)
		}
		if res := sess.Advance(); !res.OK() {
			log.Printf("fix these first: %v", res.Fields)
		}
	}
*/
package intake
