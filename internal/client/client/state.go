package client

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/examprep-admin/internal/common"
)

// requestState is the position of one call in the recovery state machine:
//
//	normal -> checkSession -> failFast
//	                       -> refreshing -> retry -> done
//	                                     -> loggedOut
//	normal -> done
type requestState int

const (
	stateNormal requestState = iota
	stateCheckSession
	stateFailFast
	stateRefreshing
	stateRetry
	stateLoggedOut
	stateDone
)

var stateNames = [...]string{"normal", "check_session", "fail_fast", "refreshing", "retry", "logged_out", "done"}

func (s requestState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s requestState) terminal() bool {
	return s == stateFailFast || s == stateLoggedOut || s == stateDone
}

type event int

const (
	// evSettled: the response goes back to the caller as it is.
	evSettled event = iota
	// evUnauthorized: an interceptable 401.
	evUnauthorized
	evNoSession
	evHasSession
	evRefreshOK
	evRefreshFailed
)

var transitions = map[requestState]map[event]requestState{
	stateNormal: {
		evSettled:      stateDone,
		evUnauthorized: stateCheckSession,
	},
	stateCheckSession: {
		evNoSession:  stateFailFast,
		evHasSession: stateRefreshing,
	},
	stateRefreshing: {
		evRefreshOK:     stateRetry,
		evRefreshFailed: stateLoggedOut,
	},
	stateRetry: {
		evSettled: stateDone,
	},
}

func transition(from requestState, ev event) (requestState, error) {
	to, ok := transitions[from][ev]
	if !ok {
		return from, fmt.Errorf("no transition from %s on event %d", from, ev)
	}
	return to, nil
}

// isAuthControlPath reports whether path is one of the endpoints whose 401s
// are never intercepted; refreshing on them would recurse.
func isAuthControlPath(path string) bool {
	p := strings.TrimSuffix(path, "/")
	return p == common.RefreshPath || p == common.LogoutPath
}

// classify turns a received response into the next event. A request that was
// already replayed once never yields evUnauthorized again.
func classify(req *request, resp *Response) event {
	if resp.StatusCode != http.StatusUnauthorized {
		return evSettled
	}
	if req.retried || isAuthControlPath(req.path) {
		return evSettled
	}
	return evUnauthorized
}
