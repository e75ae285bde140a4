package models

// IDList is an ordered list of entity identifiers kept as a denormalized
// back-reference on the opposite record (a user's post ids, a post's comment
// ids). It is stored as a JSON column and must only be modified inside the
// same transaction as the record it points at.
type IDList []uint

// Contains reports whether id is present in the list.
func (l IDList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Append returns the list with id appended, preserving insertion order.
// Appending an id that is already present is a no-op, so replaying a write
// cannot duplicate a back-reference.
func (l IDList) Append(id uint) IDList {
	if l.Contains(id) {
		return l
	}
	return append(l, id)
}

// Remove returns the list with every occurrence of id removed.
func (l IDList) Remove(id uint) IDList {
	out := l[:0]
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
