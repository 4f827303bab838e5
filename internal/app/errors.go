package service

import "errors"

// ErrNotStarted is returned by queries issued before Start has loaded the data.
var ErrNotStarted = errors.New("service not started")
