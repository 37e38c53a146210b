package usgpp

import (
	"fmt"

	gppConstants "github.com/prebid/go-gpp/constants"

	"github.com/clearbid/clearbid-server/privacy/gpp"
)

// SupportedSIDs lists the US sections a reader exists for.
func SupportedSIDs() []int8 {
	return []int8{
		int8(gppConstants.SectionUSPNAT),
		int8(gppConstants.SectionUSPCA),
		int8(gppConstants.SectionUSPVA),
		int8(gppConstants.SectionUSPCO),
		int8(gppConstants.SectionUSPUT),
		int8(gppConstants.SectionUSPCT),
	}
}

// ForSection returns the signal reader for one US section of the decoded
// model: the jurisdiction's raw reader, or the US-National mapped variant
// when normalizeSections is set. An unsupported section id is a caller bug.
func ForSection(sid gppConstants.SectionID, normalizeSections bool, model gpp.Model) (Reader, error) {
	switch sid {
	case gppConstants.SectionUSPNAT:
		// the national layout is the normalization target, raw == mapped
		return newUSNatReader(model.USNat()), nil
	case gppConstants.SectionUSPCA:
		return normalized(newUSCAReader(model.USCA()), normalizeSections, caSensitiveDataIdx), nil
	case gppConstants.SectionUSPVA:
		return normalized(newUSVAReader(model.USVA()), normalizeSections, vaSensitiveDataIdx), nil
	case gppConstants.SectionUSPCO:
		return normalized(newUSCOReader(model.USCO()), normalizeSections, coSensitiveDataIdx), nil
	case gppConstants.SectionUSPUT:
		return normalized(newUSUTReader(model.USUT()), normalizeSections, utSensitiveDataIdx), nil
	case gppConstants.SectionUSPCT:
		return normalized(newUSCTReader(model.USCT()), normalizeSections, ctSensitiveDataIdx), nil
	default:
		return Reader{}, fmt.Errorf("no us consent reader for section %d", sid)
	}
}

func normalized(raw Reader, normalizeSections bool, sensitiveDataIdx []int) Reader {
	if !normalizeSections {
		return raw
	}
	return mapped(raw, sensitiveDataIdx)
}
