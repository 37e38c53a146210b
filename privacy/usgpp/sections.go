package usgpp

import (
	"github.com/prebid/go-gpp/sections"
	"github.com/prebid/go-gpp/sections/uspca"
	"github.com/prebid/go-gpp/sections/uspco"
	"github.com/prebid/go-gpp/sections/uspct"
	"github.com/prebid/go-gpp/sections/uspnat"
	"github.com/prebid/go-gpp/sections/usput"
	"github.com/prebid/go-gpp/sections/uspva"
)

// Raw readers expose each jurisdiction's native field semantics. Every
// constructor tolerates a nil section and returns an empty reader.

func newUSNatReader(section *uspnat.USPNAT) Reader {
	if section == nil {
		return Reader{}
	}

	core := section.CoreSegment
	fields := map[Field]func() any{
		FieldVersion:                             intField(core.Version),
		FieldSaleOptOut:                          intField(core.SaleOptOut),
		FieldSaleOptOutNotice:                    intField(core.SaleOptOutNotice),
		FieldSharingNotice:                       intField(core.SharingNotice),
		FieldSharingOptOut:                       intField(core.SharingOptOut),
		FieldSharingOptOutNotice:                 intField(core.SharingOptOutNotice),
		FieldTargetedAdvertisingOptOut:           intField(core.TargetedAdvertisingOptOut),
		FieldTargetedAdvertisingOptOutNotice:     intField(core.TargetedAdvertisingOptOutNotice),
		FieldSensitiveDataLimitUseNotice:         intField(core.SensitiveDataLimitUseNotice),
		FieldSensitiveDataProcessing:             intsField(core.SensitiveDataProcessing),
		FieldSensitiveDataProcessingOptOutNotice: intField(core.SensitiveDataProcessingOptOutNotice),
		FieldKnownChildSensitiveDataConsents:     intsField(core.KnownChildSensitiveDataConsents),
		FieldPersonalDataConsents:                intField(core.PersonalDataConsents),
		FieldMspaCoveredTransaction:              intField(core.MspaCoveredTransaction),
		FieldMspaOptOutOptionMode:                intField(core.MspaOptOutOptionMode),
		FieldMspaServiceProviderMode:             intField(core.MspaServiceProviderMode),
	}
	withGpcSegment(fields, section.GPCSegment, section.Value)

	return Reader{fields: fields}
}

func newUSCAReader(section *uspca.USPCA) Reader {
	if section == nil {
		return Reader{}
	}

	core := section.CoreSegment
	fields := map[Field]func() any{
		FieldVersion:                         intField(core.Version),
		FieldSaleOptOut:                      intField(core.SaleOptOut),
		FieldSaleOptOutNotice:                intField(core.SaleOptOutNotice),
		FieldSharingOptOut:                   intField(core.SharingOptOut),
		FieldSharingOptOutNotice:             intField(core.SharingOptOutNotice),
		FieldSensitiveDataLimitUseNotice:     intField(core.SensitiveDataLimitUseNotice),
		FieldSensitiveDataProcessing:         intsField(core.SensitiveDataProcessing),
		FieldKnownChildSensitiveDataConsents: intsField(core.KnownChildSensitiveDataConsents),
		FieldPersonalDataConsents:            intField(core.PersonalDataConsents),
		FieldMspaCoveredTransaction:          intField(core.MspaCoveredTransaction),
		FieldMspaOptOutOptionMode:            intField(core.MspaOptOutOptionMode),
		FieldMspaServiceProviderMode:         intField(core.MspaServiceProviderMode),
	}
	withGpcSegment(fields, section.GPCSegment, section.Value)

	return Reader{fields: fields}
}

func newUSVAReader(section *uspva.USPVA) Reader {
	if section == nil {
		return Reader{}
	}

	return Reader{fields: commonCoreFields(section.CoreSegment)}
}

func newUSCOReader(section *uspco.USPCO) Reader {
	if section == nil {
		return Reader{}
	}

	fields := commonCoreFields(section.CoreSegment)
	withGpcSegment(fields, section.GPCSegment, section.Value)

	return Reader{fields: fields}
}

func newUSUTReader(section *usput.USPUT) Reader {
	if section == nil {
		return Reader{}
	}

	core := section.CoreSegment
	return Reader{fields: map[Field]func() any{
		FieldVersion:                             intField(core.Version),
		FieldSaleOptOut:                          intField(core.SaleOptOut),
		FieldSaleOptOutNotice:                    intField(core.SaleOptOutNotice),
		FieldSharingNotice:                       intField(core.SharingNotice),
		FieldTargetedAdvertisingOptOut:           intField(core.TargetedAdvertisingOptOut),
		FieldTargetedAdvertisingOptOutNotice:     intField(core.TargetedAdvertisingOptOutNotice),
		FieldSensitiveDataProcessing:             intsField(core.SensitiveDataProcessing),
		FieldSensitiveDataProcessingOptOutNotice: intField(core.SensitiveDataProcessingOptOutNotice),
		FieldKnownChildSensitiveDataConsents:     intField(core.KnownChildSensitiveDataConsents),
		FieldMspaCoveredTransaction:              intField(core.MspaCoveredTransaction),
		FieldMspaOptOutOptionMode:                intField(core.MspaOptOutOptionMode),
		FieldMspaServiceProviderMode:             intField(core.MspaServiceProviderMode),
	}}
}

func newUSCTReader(section *uspct.USPCT) Reader {
	if section == nil {
		return Reader{}
	}

	fields := commonCoreFields(section.CoreSegment)
	withGpcSegment(fields, section.GPCSegment, section.Value)

	return Reader{fields: fields}
}

// commonCoreFields covers the jurisdictions encoded with the shared US core
// segment layout (Virginia, Colorado, Connecticut).
func commonCoreFields(core sections.CommonUSCoreSegment) map[Field]func() any {
	return map[Field]func() any{
		FieldVersion:                         intField(core.Version),
		FieldSaleOptOut:                      intField(core.SaleOptOut),
		FieldSaleOptOutNotice:                intField(core.SaleOptOutNotice),
		FieldSharingNotice:                   intField(core.SharingNotice),
		FieldTargetedAdvertisingOptOut:       intField(core.TargetedAdvertisingOptOut),
		FieldTargetedAdvertisingOptOutNotice: intField(core.TargetedAdvertisingOptOutNotice),
		FieldSensitiveDataProcessing:         intsField(core.SensitiveDataProcessing),
		FieldKnownChildSensitiveDataConsents: intsField(core.KnownChildSensitiveDataConsents),
		FieldMspaCoveredTransaction:          intField(core.MspaCoveredTransaction),
		FieldMspaOptOutOptionMode:            intField(core.MspaOptOutOptionMode),
		FieldMspaServiceProviderMode:         intField(core.MspaServiceProviderMode),
	}
}

// withGpcSegment adds the GPC fields when the optional subsection is present
// in the encoded value; otherwise only the presence flag is exposed.
func withGpcSegment(fields map[Field]func() any, segment sections.CommonUSGPCSegment, encoded string) {
	included := gpcSegmentIncluded(encoded)
	fields[FieldGpcSegmentIncluded] = boolField(included)
	if included {
		fields[FieldGpc] = boolField(segment.Gpc)
		fields[FieldGpcSegmentType] = intField(segment.SubsectionType)
	}
}
