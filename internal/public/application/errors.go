package application

import "errors"

var errEmptyGeneration = errors.New("text generator returned an empty response")
