package archive

import (
	"fmt"
	"strings"
	"time"
)

// Snapshot keys used in stored metadata.
const (
	KeyTitle    = "title"
	KeyDateDesc = "datedesc"
	KeyExtent   = "extent"
	KeyBiog     = "biog"
	KeyScope    = "scope"
	KeyLangs    = "lang"
	KeyHolder   = "holder"
	KeyStreet   = "street"
	KeyPostcode = "postcode"
	KeyPhone    = "phone"
	KeyFax      = "fax"
	KeyWebsite  = "website"
	KeyEmail    = "email"
	KeyNotes    = "notes"
)

// DateLayout is the layout of dates in snapshots.
const DateLayout = "2006-01-02"

// ItemKey returns the snapshot key of a per-item field, e.g. "Dir1/item2.title".
func ItemKey(id, field string) string {
	return id + "." + field
}

// ToData flattens the archive into a metadata snapshot.
func (a Archive) ToData() map[string]any {
	data := map[string]any{
		KeyTitle:    a.Identity.Title,
		KeyExtent:   a.Identity.Extent,
		KeyBiog:     a.Description.Biography,
		KeyScope:    a.Description.Scope,
		KeyLangs:    append([]string{}, a.Description.Languages...),
		KeyHolder:   a.Contact.Holder,
		KeyStreet:   a.Contact.Street,
		KeyPostcode: a.Contact.Postcode,
		KeyPhone:    a.Contact.Phone,
		KeyFax:      a.Contact.Fax,
		KeyWebsite:  a.Contact.Website,
		KeyEmail:    a.Contact.Email,
		KeyNotes:    a.Control.Notes,
	}
	if d := a.DescriptionDate(); d != nil {
		data[KeyDateDesc] = d.Format(DateLayout)
	}
	for _, it := range a.Items {
		if it.Title != "" {
			data[ItemKey(it.ID, KeyTitle)] = it.Title
		}
		if it.Scope != "" {
			data[ItemKey(it.ID, KeyScope)] = it.Scope
		}
	}
	return data
}

// DescriptionDate is the control date, falling back to the identity date.
func (a Archive) DescriptionDate() *time.Time {
	if a.Control.DescriptionDate != nil {
		return a.Control.DescriptionDate
	}
	return a.Identity.DescriptionDate
}

// FromData builds an archive from a metadata snapshot and a freshly listed
// set of items. Per-item titles and scopes in the snapshot are applied to the
// matching items; keys for items that no longer exist are ignored.
func FromData(data map[string]any, items []Item) (Archive, error) {
	a := Archive{
		Identity: Identity{
			Title:  stringValue(data, KeyTitle),
			Extent: stringValue(data, KeyExtent),
		},
		Description: Description{
			Biography: stringValue(data, KeyBiog),
			Scope:     stringValue(data, KeyScope),
		},
		Contact: Contact{
			Holder:   stringValue(data, KeyHolder),
			Street:   stringValue(data, KeyStreet),
			Postcode: stringValue(data, KeyPostcode),
			Phone:    stringValue(data, KeyPhone),
			Fax:      stringValue(data, KeyFax),
			Website:  stringValue(data, KeyWebsite),
			Email:    stringValue(data, KeyEmail),
		},
		Control: Control{
			Notes: stringValue(data, KeyNotes),
		},
	}

	langs, err := stringList(data[KeyLangs])
	if err != nil {
		return Archive{}, fmt.Errorf("invalid %s: %w", KeyLangs, err)
	}
	a.Description.Languages = langs

	date, err := dateValue(data[KeyDateDesc])
	if err != nil {
		return Archive{}, fmt.Errorf("invalid %s: %w", KeyDateDesc, err)
	}
	a.Identity.DescriptionDate = date
	a.Control.DescriptionDate = date

	a.Items = make([]Item, len(items))
	for i, it := range items {
		if title := stringValue(data, ItemKey(it.ID, KeyTitle)); title != "" {
			it.Title = title
		}
		if scope := stringValue(data, ItemKey(it.ID, KeyScope)); scope != "" {
			it.Scope = scope
		}
		a.Items[i] = it
	}

	if strings.TrimSpace(a.Identity.Extent) == "" {
		a.Identity.Extent = DefaultExtent(len(a.Items))
	}
	return a, nil
}

func stringValue(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case string:
		return v
	case nil:
		return ""
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func stringList(v any) ([]string, error) {
	switch vs := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string{}, vs...), nil
	case []any:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", e)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		if strings.TrimSpace(vs) == "" {
			return nil, nil
		}
		return []string{vs}, nil
	default:
		return nil, fmt.Errorf("expected list of strings, got %T", v)
	}
}

func dateValue(v any) (*time.Time, error) {
	switch d := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &d, nil
	case string:
		if strings.TrimSpace(d) == "" {
			return nil, nil
		}
		// Older snapshots stored full timestamps.
		if len(d) > len(DateLayout) {
			d = d[:len(DateLayout)]
		}
		t, err := time.Parse(DateLayout, d)
		if err != nil {
			return nil, err
		}
		return &t, nil
	default:
		return nil, fmt.Errorf("expected date string, got %T", v)
	}
}
