package web

import "github.com/dtroode/rolodex/internal/model"

// ContactRow is one rendered contact with its Edit and Delete controls.
type ContactRow struct {
	ID    int64
	Name  string
	Email string
}

// Edit hands the row's current values to onEdit. The control has no input of
// its own, so an edit re-writes what is already there.
func (r ContactRow) Edit(onEdit func(id int64, name, email string)) {
	onEdit(r.ID, r.Name, r.Email)
}

// Delete hands the row's id to onDelete.
func (r ContactRow) Delete(onDelete func(id int64)) {
	onDelete(r.ID)
}

// ContactList is the rendered list, one row per contact in order.
type ContactList struct {
	Rows []ContactRow
}

func NewContactList(contacts []model.Contact) ContactList {
	rows := make([]ContactRow, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, ContactRow{ID: c.ID, Name: c.Name, Email: c.Email})
	}
	return ContactList{Rows: rows}
}

// AddContactForm holds the two raw text inputs of the add form.
type AddContactForm struct {
	Name  string
	Email string
}

// Submit calls onAdd and clears the form when both fields are non-empty.
// It reports whether onAdd was called.
func (f *AddContactForm) Submit(onAdd func(name, email string)) bool {
	if f.Name == "" || f.Email == "" {
		return false
	}
	onAdd(f.Name, f.Email)
	f.Name, f.Email = "", ""
	return true
}

// Page is everything the single page renders.
type Page struct {
	Title  string
	Search string
	List   ContactList
	Form   AddContactForm
}
