package domain

import "time"

// Location is a saved shooting spot: a titled place with a coordinate, an
// address, and optionally a reference photo. Locations are soft-deleted so
// they can be restored with their history intact.
type Location struct {
	Entity
	title       string
	description string
	coordinate  Coordinate
	address     Address
	photoPath   string // empty means no photo attached
	deleted     bool
	modifiedAt  time.Time
}

// NewLocation creates a location and raises LocationSaved. Title must be
// non-empty.
func NewLocation(title, description string, coordinate Coordinate, address Address) (*Location, error) {
	if err := requireText("title", title); err != nil {
		return nil, err
	}
	l := &Location{
		title:       title,
		description: description,
		coordinate:  coordinate,
		address:     address,
		modifiedAt:  clock.Now().UTC(),
	}
	l.AddDomainEvent(LocationSaved{Location: l, At: l.modifiedAt})
	return l, nil
}

// RehydrateLocation rebuilds a location from persisted state. No validation
// runs and no event is raised: the row was validated when it was first
// constructed.
func RehydrateLocation(id int64, title, description string, coordinate Coordinate, address Address, photoPath string, deleted bool, modifiedAt time.Time) *Location {
	l := &Location{
		title:       title,
		description: description,
		coordinate:  coordinate,
		address:     address,
		photoPath:   photoPath,
		deleted:     deleted,
		modifiedAt:  modifiedAt,
	}
	l.SetID(id)
	return l
}

func (l *Location) Title() string          { return l.title }
func (l *Location) Description() string    { return l.description }
func (l *Location) Coordinate() Coordinate { return l.coordinate }
func (l *Location) Address() Address       { return l.address }
func (l *Location) IsDeleted() bool        { return l.deleted }
func (l *Location) ModifiedAt() time.Time  { return l.modifiedAt }

// PhotoPath returns the attached photo's path, or "" when none is attached.
func (l *Location) PhotoPath() string { return l.photoPath }

// UpdateDetails replaces title and description and raises LocationSaved.
// Title must be non-empty.
func (l *Location) UpdateDetails(title, description string) error {
	if err := requireText("title", title); err != nil {
		return err
	}
	l.title = title
	l.description = description
	l.touch()
	l.AddDomainEvent(LocationSaved{Location: l, At: l.modifiedAt})
	return nil
}

// UpdateCoordinate replaces the coordinate and raises LocationSaved.
func (l *Location) UpdateCoordinate(coordinate Coordinate) {
	l.coordinate = coordinate
	l.touch()
	l.AddDomainEvent(LocationSaved{Location: l, At: l.modifiedAt})
}

// UpdateAddress replaces the address and raises LocationSaved.
func (l *Location) UpdateAddress(address Address) {
	l.address = address
	l.touch()
	l.AddDomainEvent(LocationSaved{Location: l, At: l.modifiedAt})
}

// AttachPhoto records the path of a reference photo and raises PhotoAttached.
// Path must be non-empty.
func (l *Location) AttachPhoto(path string) error {
	if err := requireText("photo path", path); err != nil {
		return err
	}
	l.photoPath = path
	l.touch()
	l.AddDomainEvent(PhotoAttached{LocationID: l.ID(), Path: path, At: l.modifiedAt})
	return nil
}

// RemovePhoto clears the photo path. No event is raised.
func (l *Location) RemovePhoto() {
	l.photoPath = ""
	l.touch()
}

// Delete marks the location deleted and raises LocationDeleted. The record
// stays around so Restore can bring it back.
func (l *Location) Delete() {
	l.deleted = true
	l.touch()
	l.AddDomainEvent(LocationDeleted{LocationID: l.ID(), At: l.modifiedAt})
}

// Restore clears the deleted flag. Deliberately asymmetric with Delete: no
// event is raised, so consumers never see a delete/restore pair for a record
// that ends up unchanged.
func (l *Location) Restore() {
	l.deleted = false
	l.touch()
}

func (l *Location) touch() {
	l.modifiedAt = clock.Now().UTC()
}
