package model

// User is a household member who may be assigned tasks.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GetKey returns the database key for this user.
func (u *User) GetKey() string {
	return UserKey(u.ID)
}

// UserKey generates the database key for a user id.
func UserKey(id int64) string {
	return formatKey(PrefixUser, id)
}
