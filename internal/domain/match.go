package domain

// Match is a single nearest-neighbor hit from the vector index. Label is the
// intent label carried in the indexed example's metadata.
type Match struct {
	ID    string
	Label string
	Score float64
}
