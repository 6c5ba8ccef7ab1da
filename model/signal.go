package model

// ChangeAction is the row mutation kind carried by a change event.
type ChangeAction string

const (
	ChangeActionInsert ChangeAction = "INSERT"
	ChangeActionUpdate ChangeAction = "UPDATE"
	ChangeActionDelete ChangeAction = "DELETE"
)

var AllChangeAction = []ChangeAction{
	ChangeActionInsert,
	ChangeActionUpdate,
	ChangeActionDelete,
}

func (a ChangeAction) IsValid() bool {
	switch a {
	case ChangeActionInsert, ChangeActionUpdate, ChangeActionDelete:
		return true
	}
	return false
}

func (a ChangeAction) String() string {
	return string(a)
}

/*

ChangeEvent is the signal pushed to realtime subscribers whenever a row of a
watched table mutates. It deliberately carries no row payload beyond the id
and the scope keys used for filtering: a subscriber reacts by re-running its
own list query, never by merging the event into local state, so the visible
list always converges to the store.
*/
type ChangeEvent struct {
	Table  string            `json:"table"`
	Action ChangeAction      `json:"action"`
	RowID  string            `json:"row_id"`
	Keys   map[string]string `json:"keys,omitempty"`
}
