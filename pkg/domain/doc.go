/*
Package domain contains the core domain models for the intake wizard engine.

It defines the fundamental entities of an intake session, kept pure and free
of I/O or persistence concerns, following Hexagonal Architecture principles.

# Key Entities

  - Value: A typed field answer (text, choice, multi-choice, money, date, bool).
  - Answers: The Answer Store, mapping every declared field to its current value.
  - Collection: An ordered, capped list of repeatable child records (Items).
  - Draft: The persisted snapshot of a session's state.
*/
package domain
