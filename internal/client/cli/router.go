package cli

import (
	"sync"

	"github.com/dmitrijs2005/examprep-admin/internal/client/client"
	"github.com/dmitrijs2005/examprep-admin/internal/common"
)

// Router tracks which screen the console is on. The HTTP client drives it
// through client.Navigator when a session can no longer be refreshed; the
// console itself moves with Go.
type Router struct {
	mu       sync.Mutex
	location string
	notify   func(msg string)
}

var _ client.Navigator = (*Router)(nil)

func NewRouter(notify func(msg string)) *Router {
	return &Router{location: common.LoginLocation, notify: notify}
}

func (r *Router) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.location
}

// Navigate is a redirect forced from outside the console, so the user is told
// about it.
func (r *Router) Navigate(location string) {
	r.mu.Lock()
	from := r.location
	r.location = location
	r.mu.Unlock()

	if r.notify != nil && location == common.LoginLocation && from != location {
		r.notify("Your session has expired. Please log in again.")
	}
}

// Go moves to location without a notification.
func (r *Router) Go(location string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.location = location
}
