package service

import "errors"

var (
	ErrRecordsMissing = errors.New("records must be a list")
	ErrMalformedCode  = errors.New("code must be exactly 6 digits")

	ErrGeneratingCode = errors.New("error generating code")
)
