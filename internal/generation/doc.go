// Package generation defines the boundary between the application and
// external LLM services. The ExampleGenerator interface is implemented by the
// Gemini adapter in internal/platform/gemini and consumed by the background
// example generation task.
package generation
