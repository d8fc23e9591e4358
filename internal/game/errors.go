package game

// ValidationError rejects an action without changing any state: bad bet,
// insufficient balance, or a game already in progress. The reason is safe
// to show to the player verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NotFoundError rejects an action against a record that does not exist,
// such as hitting with no active game or requesting stats for an unknown
// session.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string {
	return e.Reason
}
