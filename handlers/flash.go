package handlers

import (
	"sync"

	"TaskListWebService/response"
)

// Flash notices are one-shot: a mutating request sets the notice for its
// user and the user's next index read pops it. A new notice overwrites any
// unread one, so at most one notice is pending per user.
var (
	flashMu sync.Mutex
	flashes = map[int]response.Flash{}
)

func setSuccessFlash(owner int, message string) {
	flashMu.Lock()
	flashes[owner] = response.Flash{Success: message}
	flashMu.Unlock()
}

func setErrorFlash(owner int, message string) {
	flashMu.Lock()
	flashes[owner] = response.Flash{Error: message}
	flashMu.Unlock()
}

// popFlash returns the pending notice for owner and clears it, or nil when
// no notice is pending.
func popFlash(owner int) *response.Flash {
	flashMu.Lock()
	defer flashMu.Unlock()
	notice, ok := flashes[owner]
	if !ok {
		return nil
	}
	delete(flashes, owner)
	return &notice
}
