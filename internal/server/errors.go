package server

import "errors"

// errNoHTTPServer is returned by NewServer when there is no router to serve
// or no address to listen on.
var errNoHTTPServer = errors.New("http server needs handlers and a listen address")
