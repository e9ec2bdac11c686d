package pachca

// Directory maps user ids to display names
type Directory struct {
	names map[int64]string
}

// newDirectory initializes a Directory containing the given users
func newDirectory(users []User) *Directory {
	d := &Directory{names: make(map[int64]string, len(users))}
	d.Add(users)
	return d
}

// NewDirectory builds a Directory from already fetched users
func NewDirectory(users ...User) *Directory {
	return newDirectory(users)
}

// Add indexes users by id; a later record for the same id replaces the earlier one
func (d *Directory) Add(users []User) {
	for _, u := range users {
		d.names[u.ID] = u.DisplayName()
	}
}

/*
Name resolves a user id to a display name.
Unknown ids resolve to user_<id>, so lookup never fails.
*/
func (d *Directory) Name(id int64) string {
	if d != nil {
		if name, ok := d.names[id]; ok {
			return name
		}
	}
	return syntheticName(id)
}

// Size returns the number of users in the directory
func (d *Directory) Size() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}
