package server

import "errors"

// errNoHTTPHandler is returned by NewServer when there is no router to serve
// sync clients from.
var errNoHTTPHandler = errors.New("no http handler to serve sync clients")
