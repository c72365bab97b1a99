package session

import "errors"

// ErrEval wraps engine evaluation failures. Evaluation errors are fatal for
// the session: the engine's internal state after a failed step is
// unspecified, so the loop aborts instead of retrying.
var ErrEval = errors.New("engine evaluation failed")

// ErrConfig wraps configuration validation failures.
var ErrConfig = errors.New("invalid session config")
