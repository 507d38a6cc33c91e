package models

// Database is the whole persisted document. The storage layer decodes
// the data file into it and writes it back as a unit.
type Database struct {
	Cases  []Case  `json:"cases"`
	Users  []User  `json:"users"`
	Badges []Badge `json:"badges"`
}

// FindUser returns a pointer into Users, so mutations through it are
// persisted when the document is written back.
func (d *Database) FindUser(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

func (d *Database) FindUserByEmail(email string) *User {
	for i := range d.Users {
		if d.Users[i].Email == email {
			return &d.Users[i]
		}
	}
	return nil
}

func (d *Database) FindCase(id string) *Case {
	for i := range d.Cases {
		if d.Cases[i].ID == id {
			return &d.Cases[i]
		}
	}
	return nil
}
