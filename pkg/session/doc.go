/*
Package session implements the wizard controller: the step state machine
that gates forward navigation on validation, allows ungated back/jump
editing, and persists in-progress answers through a debounced draft write.

A Session is driven by a single event-processing goroutine; the only
asynchrony is the persistence debounce timer, which always writes the
state as of its firing time and is cancelled on teardown.
*/
package session
