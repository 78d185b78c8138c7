package generation

import "errors"

// Generator failures. ErrTransientFailure means the generator gave up after
// its own retries or the context ended; a later request may succeed.
var (
	ErrGenerationFailed = errors.New("example generation failed")
	ErrInvalidResponse  = errors.New("model returned an unusable response")
	ErrContentBlocked   = errors.New("model refused the prompt")
	ErrTransientFailure = errors.New("temporary generator error")
	ErrInvalidConfig    = errors.New("generator misconfigured")
)
