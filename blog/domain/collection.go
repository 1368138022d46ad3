package domain

// AppendPost returns a new collection holding existing followed by p.
func AppendPost(existing []Post, p Post) []Post {
	out := make([]Post, 0, len(existing)+1)
	out = append(out, existing...)
	return append(out, p)
}

// RemovePost returns a new collection without the post identified by id.
// The order of the remaining posts is preserved; an unknown id yields an equal copy.
func RemovePost(existing []Post, id string) []Post {
	out := make([]Post, 0, len(existing))
	for _, p := range existing {
		if p.ID == id {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FindPost returns the post with the given id.
func FindPost(posts []Post, id string) (Post, bool) {
	for _, p := range posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}
