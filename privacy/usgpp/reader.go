package usgpp

import (
	"strings"
)

// Field names one signal of the uniform US consent surface. The names follow
// the US-National section schema; jurisdictions lacking a field read nil.
type Field string

const (
	FieldVersion                             Field = "version"
	FieldGpc                                 Field = "gpc"
	FieldGpcSegmentType                      Field = "gpcSegmentType"
	FieldGpcSegmentIncluded                  Field = "gpcSegmentIncluded"
	FieldSaleOptOut                          Field = "saleOptOut"
	FieldSaleOptOutNotice                    Field = "saleOptOutNotice"
	FieldSharingNotice                       Field = "sharingNotice"
	FieldSharingOptOut                       Field = "sharingOptOut"
	FieldSharingOptOutNotice                 Field = "sharingOptOutNotice"
	FieldTargetedAdvertisingOptOut           Field = "targetedAdvertisingOptOut"
	FieldTargetedAdvertisingOptOutNotice     Field = "targetedAdvertisingOptOutNotice"
	FieldSensitiveDataLimitUseNotice         Field = "sensitiveDataLimitUseNotice"
	FieldSensitiveDataProcessing             Field = "sensitiveDataProcessing"
	FieldSensitiveDataProcessingOptOutNotice Field = "sensitiveDataProcessingOptOutNotice"
	FieldKnownChildSensitiveDataConsents     Field = "knownChildSensitiveDataConsents"
	FieldPersonalDataConsents                Field = "personalDataConsents"
	FieldMspaCoveredTransaction              Field = "mspaCoveredTransaction"
	FieldMspaOptOutOptionMode                Field = "mspaOptOutOptionMode"
	FieldMspaServiceProviderMode             Field = "mspaServiceProviderMode"
)

func Fields() []Field {
	return []Field{
		FieldVersion,
		FieldGpc,
		FieldGpcSegmentType,
		FieldGpcSegmentIncluded,
		FieldSaleOptOut,
		FieldSaleOptOutNotice,
		FieldSharingNotice,
		FieldSharingOptOut,
		FieldSharingOptOutNotice,
		FieldTargetedAdvertisingOptOut,
		FieldTargetedAdvertisingOptOutNotice,
		FieldSensitiveDataLimitUseNotice,
		FieldSensitiveDataProcessing,
		FieldSensitiveDataProcessingOptOutNotice,
		FieldKnownChildSensitiveDataConsents,
		FieldPersonalDataConsents,
		FieldMspaCoveredTransaction,
		FieldMspaOptOutOptionMode,
		FieldMspaServiceProviderMode,
	}
}

// Reader exposes the uniform field surface over one decoded consent section.
// It is driven by a per-jurisdiction field table; fields the jurisdiction
// does not define, and every field of an absent section, read nil and never
// panic.
type Reader struct {
	fields map[Field]func() any
}

func (r Reader) Value(field Field) any {
	if accessor, ok := r.fields[field]; ok {
		return accessor()
	}
	return nil
}

func (r Reader) Int(field Field) *int {
	if v, ok := r.Value(field).(int); ok {
		return &v
	}
	return nil
}

func (r Reader) Bool(field Field) *bool {
	if v, ok := r.Value(field).(bool); ok {
		return &v
	}
	return nil
}

func (r Reader) Ints(field Field) []int {
	if v, ok := r.Value(field).([]int); ok {
		return v
	}
	return nil
}

// Facts renders the whole surface as a fact map for expression evaluation.
// Absent fields are carried as explicit nils so expressions can reference
// them without failing.
func (r Reader) Facts() map[string]any {
	facts := make(map[string]any, len(r.fields))
	for _, field := range Fields() {
		facts[string(field)] = r.Value(field)
	}
	return facts
}

func intField(v byte) func() any {
	return func() any { return int(v) }
}

func intsField(v []byte) func() any {
	return func() any {
		ints := make([]int, len(v))
		for i, b := range v {
			ints[i] = int(b)
		}
		return ints
	}
}

func intListField(v []int) func() any {
	return func() any { return v }
}

func boolField(v bool) func() any {
	return func() any { return v }
}

// gpcSegmentIncluded detects the optional GPC subsection from the encoded
// section value; US section segments are dot separated.
func gpcSegmentIncluded(encoded string) bool {
	return strings.Contains(encoded, ".")
}
