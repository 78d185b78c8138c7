// Package study implements the in-memory study-session engines: a flashcard
// navigator, a multiple-choice quiz and a matching game. Engines read a
// fixed, copied sequence of vocabulary records and never modify it; only
// position, selection and matched flags change during a session.
//
// Randomness, time and user-facing notifications are injected through
// Option values so sessions can be driven deterministically in tests.
package study
