/*
Package flow defines wizard flows declaratively: fields, ordered steps, and
a step-scoped validation rule table.

A Flow is static program data. Validation is a pure function of the step and
the Answer Store; visibility and "required" share the same predicates, so a
field can never be required while hidden. The package also owns the draft
wire codec (Snapshot/Hydrate), including the lenient per-field decode that
recovers from corrupt persisted values.

Concrete flows live in the subpackages deposit and hpaction.
*/
package flow
