package main

import "errors"

var (
	errInvalidInput    = errors.New("invalid assessment input")
	errSessionRequired = errors.New("session id is required")
	errNoBaseline      = errors.New("no baseline captured for session")
	errInvalidFormat   = errors.New("format must be one of: text, json")
	errStdinTwice      = errors.New("input and baseline cannot both be read from stdin")
)
