package domain

import "net/http"

var DefaultClient = http.DefaultClient
