package models

import "strings"

const (
	scopeSeparator  = "__"
	nullPlaceholder = ""
	RootIDPrefix    = "root__"
)

// Scope identifies one independent folder repository. Nil fields are null.
type Scope struct {
	AreaID       *string `gorm:"type:varchar(191);index" json:"areaId"`
	ProcesoID    *string `gorm:"type:varchar(191);index" json:"procesoId"`
	SubprocesoID *string `gorm:"type:varchar(191);index" json:"subprocesoId"`
}

// NewScope builds a normalized scope from raw request values.
func NewScope(areaID, procesoID, subprocesoID string) Scope {
	return Scope{
		AreaID:       normalizeField(&areaID),
		ProcesoID:    normalizeField(&procesoID),
		SubprocesoID: normalizeField(&subprocesoID),
	}.Normalize()
}

// Normalize maps empty and whitespace-only fields to nil.
func (s Scope) Normalize() Scope {
	return Scope{
		AreaID:       normalizeField(s.AreaID),
		ProcesoID:    normalizeField(s.ProcesoID),
		SubprocesoID: normalizeField(s.SubprocesoID),
	}
}

// keyEscaper keeps field values free of "_" so the separator can only come
// from the join. "~" is the escape character and is escaped itself.
var keyEscaper = strings.NewReplacer("~", "~7E", "_", "~5F")

// Key is the grouping key used by the reconciler: the three normalized
// fields joined by "__", null rendered as the empty placeholder. Distinct
// scopes always have distinct keys.
func (s Scope) Key() string {
	n := s.Normalize()
	return strings.Join([]string{keyPart(n.AreaID), keyPart(n.ProcesoID), keyPart(n.SubprocesoID)}, scopeSeparator)
}

// RootID is the deterministic id of the canonical root for this scope.
func (s Scope) RootID() string {
	return RootIDPrefix + s.Key()
}

func (s Scope) Equal(other Scope) bool {
	a, b := s.Normalize(), other.Normalize()
	return fieldEqual(a.AreaID, b.AreaID) && fieldEqual(a.ProcesoID, b.ProcesoID) && fieldEqual(a.SubprocesoID, b.SubprocesoID)
}

func fieldEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s Scope) IsEmpty() bool {
	n := s.Normalize()
	return n.AreaID == nil && n.ProcesoID == nil && n.SubprocesoID == nil
}

func normalizeField(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func keyPart(v *string) string {
	if v == nil {
		return nullPlaceholder
	}
	return keyEscaper.Replace(*v)
}
