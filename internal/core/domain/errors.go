package domain

import "errors"

// ErrJobNotFound is an error thrown when a job is not found
var ErrJobNotFound = errors.New("job not found")

// ErrJobTerminal is an error thrown when updating a job that already reached a terminal status
var ErrJobTerminal = errors.New("job already terminal")

// ErrFileSizeTooBig is an error thrown when file size is too big
var ErrFileSizeTooBig = errors.New("file size too big")

// ErrVideoTooLong is an error thrown when video duration exceeds the limit
var ErrVideoTooLong = errors.New("video too long")

// ErrUnreadableMedia is an error thrown when media metadata cannot be read
var ErrUnreadableMedia = errors.New("unreadable media metadata")

// ErrMissingPresignFields is an error thrown when a presign request misses a field
var ErrMissingPresignFields = errors.New("missing fileName or fileType")

// ErrNoInput is an error thrown when neither a file nor a video URL was provided
var ErrNoInput = errors.New("no video file or URL provided")

// ErrObjectNotFound is an error thrown when the referenced storage object does not exist
var ErrObjectNotFound = errors.New("storage object not found")
