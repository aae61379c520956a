package common

import "errors"

// ErrorNotFound is returned by local repositories for missing rows.
var ErrorNotFound = errors.New("not found")
