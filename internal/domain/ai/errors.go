package ai

import (
	"errors"
	"fmt"
)

// ErrInference indicates the provider call failed.
var ErrInference = errors.New("inference failed")

// ErrEmptyResponse indicates the provider answered without usable content.
var ErrEmptyResponse = fmt.Errorf("%w: AI response was empty", ErrInference)

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = fmt.Errorf("%w: ai quota exceeded", ErrInference)
