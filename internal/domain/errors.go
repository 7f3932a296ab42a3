package domain

import "errors"

var (
	ErrSpinInProgress = errors.New("spin already in progress")
	ErrEmptyRoster    = errors.New("roster has no players")
	ErrUpstreamLLM    = errors.New("upstream LLM failure")
	ErrInvalidLLMJSON = errors.New("LLM returned invalid JSON after retry")
)
