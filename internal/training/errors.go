package training

import "errors"

// ErrInvalidFeedbackTarget is returned when feedback references an
// entry id that does not exist. No state is mutated.
var ErrInvalidFeedbackTarget = errors.New("feedback references unknown entry")

// ErrInvalidFeedbackKind is returned for a feedback kind outside the
// correct/incorrect/partial vocabulary.
var ErrInvalidFeedbackKind = errors.New("invalid feedback kind")

// ErrMalformedImport is returned when an import payload is missing the
// required weight/synonym structure or violates the weight invariant.
// The current state is preserved.
var ErrMalformedImport = errors.New("malformed training import")
