package response

// Flash is a one-shot notice attached to an index response after a mutating
// action. Exactly one of Success or Error is set. It is returned once by the
// owner's next read and then discarded server-side.
type Flash struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}
