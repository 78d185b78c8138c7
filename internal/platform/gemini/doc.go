// Package gemini implements generation.ExampleGenerator on top of Google's
// Gemini API.
//
// The generator renders a prompt listing each vocabulary record by ID, asks the
// model for a JSON array of {"id", "example"} objects and maps it back to
// generation.Example values. Transient API failures are retried with
// exponential backoff and jitter; blocked or malformed responses are not.
package gemini
