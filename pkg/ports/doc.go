/*
Package ports defines the driven ports (interfaces) for the intake engine.

These interfaces decouple the wizard core from external implementations,
allowing sessions to persist drafts to various storage backends.

# Key Interfaces

  - DraftStore: Responsible for persisting and loading draft records
    (memory, filesystem, or Redis adapters).
*/
package ports
