// Package validate checks the declared eager-reference graph against the
// layer registry.
//
// The single rule: an entity type may only eagerly reference types from
// strictly lower-numbered layers. Violations are collected in aggregate and
// returned together in one Report, so a single run surfaces every offending
// reference rather than just the first. The check is intended as a build/test
// gate; nothing here is meant to be caught and retried at runtime.
package validate
