package domain

import "fmt"

// DefaultLocale is the localization code tips and tip types fall back to.
const DefaultLocale = "en-US"

// TipType is a category of photography tips. It owns its tips collection and
// enforces that every tip references this type.
type TipType struct {
	Entity
	name   string
	locale string
	tips   []*Tip
}

// NewTipType creates a tip category. Name must be non-empty.
func NewTipType(name string) (*TipType, error) {
	if err := requireText("name", name); err != nil {
		return nil, err
	}
	return &TipType{name: name, locale: DefaultLocale}, nil
}

// RehydrateTipType rebuilds a tip type from persisted state without
// validation.
func RehydrateTipType(id int64, name, locale string) *TipType {
	t := &TipType{name: name, locale: locale}
	t.SetID(id)
	return t
}

func (t *TipType) Name() string         { return t.name }
func (t *TipType) Localization() string { return t.locale }

// Tips returns the owned tips in insertion order.
func (t *TipType) Tips() []*Tip {
	out := make([]*Tip, len(t.tips))
	copy(out, t.tips)
	return out
}

// SetLocalization sets the localization code. Empty input resets to
// DefaultLocale.
func (t *TipType) SetLocalization(code string) {
	if code == "" {
		t.locale = DefaultLocale
		return
	}
	t.locale = code
}

// AddTip appends a tip to the collection. The tip must reference this type's
// id — unless the type has not been persisted yet (id 0), in which case the
// reference cannot exist and the check is skipped.
func (t *TipType) AddTip(tip *Tip) error {
	if tip == nil {
		return fmt.Errorf("%w: tip", ErrNilValue)
	}
	if t.ID() != 0 && tip.TipTypeID() != t.ID() {
		return fmt.Errorf("%w: type %d, tip references %d", ErrTipTypeMismatch, t.ID(), tip.TipTypeID())
	}
	t.tips = append(t.tips, tip)
	return nil
}

// RemoveTip removes a tip from the collection. Removing an absent tip is a
// no-op.
func (t *TipType) RemoveTip(tip *Tip) {
	for i, existing := range t.tips {
		if existing == tip {
			t.tips = append(t.tips[:i], t.tips[i+1:]...)
			return
		}
	}
}

// Tip is a single photography tip, optionally annotated with the camera
// settings it was shot at.
type Tip struct {
	Entity
	tipTypeID    int64
	title        string
	content      string
	locale       string
	fStop        string
	shutterSpeed string
	iso          string
}

// NewTip creates a tip under the given tip type. Title must be non-empty.
func NewTip(tipTypeID int64, title, content string) (*Tip, error) {
	if err := requireText("title", title); err != nil {
		return nil, err
	}
	return &Tip{
		tipTypeID: tipTypeID,
		title:     title,
		content:   content,
		locale:    DefaultLocale,
	}, nil
}

// RehydrateTip rebuilds a tip from persisted state without validation.
func RehydrateTip(id, tipTypeID int64, title, content, locale, fStop, shutterSpeed, iso string) *Tip {
	t := &Tip{
		tipTypeID:    tipTypeID,
		title:        title,
		content:      content,
		locale:       locale,
		fStop:        fStop,
		shutterSpeed: shutterSpeed,
		iso:          iso,
	}
	t.SetID(id)
	return t
}

func (t *Tip) TipTypeID() int64     { return t.tipTypeID }
func (t *Tip) Title() string        { return t.title }
func (t *Tip) Content() string      { return t.content }
func (t *Tip) Localization() string { return t.locale }
func (t *Tip) FStop() string        { return t.fStop }
func (t *Tip) ShutterSpeed() string { return t.shutterSpeed }
func (t *Tip) ISO() string          { return t.iso }

// SetLocalization sets the localization code. Empty input resets to
// DefaultLocale.
func (t *Tip) SetLocalization(code string) {
	if code == "" {
		t.locale = DefaultLocale
		return
	}
	t.locale = code
}

// UpdatePhotographySettings records the camera settings the tip refers to.
// Settings are free-form strings ("f/2.8", "1/250", "ISO 100").
func (t *Tip) UpdatePhotographySettings(fStop, shutterSpeed, iso string) {
	t.fStop = fStop
	t.shutterSpeed = shutterSpeed
	t.iso = iso
}

// UpdateContent replaces title and content. Title must be non-empty.
func (t *Tip) UpdateContent(title, content string) error {
	if err := requireText("title", title); err != nil {
		return err
	}
	t.title = title
	t.content = content
	return nil
}
