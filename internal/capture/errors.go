package capture

import "errors"

// ErrNoDevice is returned when no input device is available to capture from.
var ErrNoDevice = errors.New("no capture device available")

// ErrNotRecording is returned by StopAndSave when no capture is active.
var ErrNotRecording = errors.New("capture not active")

// ErrAlreadyRecording is returned by Start while another capture is active.
var ErrAlreadyRecording = errors.New("capture already in progress")
