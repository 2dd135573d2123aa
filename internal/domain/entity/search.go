package entity

// SearchQuery is the input of the transaction search form.
// Any string is accepted, including the empty string.
type SearchQuery struct {
	Query string `json:"query"`
}

// Validate always succeeds; the query carries no constraint
func (q SearchQuery) Validate() error {
	return nil
}
