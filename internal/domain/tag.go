package domain

// Tag is a free-text label applied to recipes. Tag values are not unique:
// tagging is folksonomy-style, so two tags may carry the same value and a
// recipe may carry the same tag twice. Tags are hard-deleted.
type Tag struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}
