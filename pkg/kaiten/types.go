package kaiten

// Card is the subset of the Kaiten card entity the relay reads back after a
// move to validate that the tracker actually applied it.
type Card struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	ColumnID uint64 `json:"column_id"`
	BoardID  uint64 `json:"board_id"`
}

// moveCardRequest is the PATCH body for moving a card between columns.
type moveCardRequest struct {
	ColumnID uint64 `json:"column_id"`
}
