package service

import "errors"

var (
	ErrPermissionDenied  = errors.New("service: location permission denied")
	ErrTimeout           = errors.New("service: timed out waiting for position")
	ErrProvider          = errors.New("service: location provider unavailable")
	ErrStorage           = errors.New("service: storage failure")
	ErrPreferenceIO      = errors.New("service: preference storage failure")
	ErrCaptureInProgress = errors.New("service: capture already in progress")
)
