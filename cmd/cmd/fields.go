package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aligator/fatnav"
	"github.com/spf13/pflag"
)

var fieldNames = map[string]fatnav.FieldMask{
	"short":    fatnav.ShortNameField,
	"long":     fatnav.LongNameField,
	"hidden":   fatnav.HiddenField,
	"created":  fatnav.CreationField,
	"accessed": fatnav.LastAccessField,
	"modified": fatnav.LastModifiedField,
	"type":     fatnav.TypeField,
	"size":     fatnav.FileSizeField,
	"all":      fatnav.AllFields,
}

// defaultFields are listed if neither a flag nor the config selects any.
const defaultFields = fatnav.LongNameField | fatnav.TypeField | fatnav.FileSizeField | fatnav.LastModifiedField

// FieldsValue is a pflag.Value selecting the columns of ls, e.g.
// "--fields long,size".
type FieldsValue struct {
	Mask fatnav.FieldMask
}

var _ pflag.Value = (*FieldsValue)(nil)

// ParseFields combines the named fields into a mask.
func ParseFields(names []string) (fatnav.FieldMask, error) {
	var mask fatnav.FieldMask
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		f, ok := fieldNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown field %q, valid fields are %s", name, strings.Join(validFields(), ", "))
		}
		mask |= f
	}
	return mask, nil
}

func validFields() []string {
	names := make([]string, 0, len(fieldNames))
	for name := range fieldNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (v *FieldsValue) String() string {
	if v.Mask == fatnav.AllFields {
		return "all"
	}

	var names []string
	for _, name := range validFields() {
		f := fieldNames[name]
		if f != fatnav.AllFields && v.Mask.Has(f) {
			names = append(names, name)
		}
	}
	return strings.Join(names, ",")
}

func (v *FieldsValue) Set(s string) error {
	mask, err := ParseFields(strings.Split(s, ","))
	if err != nil {
		return err
	}
	v.Mask = mask
	return nil
}

func (v *FieldsValue) Type() string {
	return "fields"
}
