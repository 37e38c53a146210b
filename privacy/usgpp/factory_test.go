package usgpp

import (
	"testing"

	gpplib "github.com/prebid/go-gpp"
	gppConstants "github.com/prebid/go-gpp/constants"
	"github.com/prebid/go-gpp/sections/uspva"
	"github.com/stretchr/testify/assert"

	"github.com/clearbid/clearbid-server/privacy/gpp"
)

func TestSupportedSIDs(t *testing.T) {
	assert.Equal(t, []int8{7, 8, 9, 10, 11, 12}, SupportedSIDs())
}

func TestForSectionUnknownSID(t *testing.T) {
	_, err := ForSection(gppConstants.SectionTCFEU2, true, gpp.Model{})
	assert.EqualError(t, err, "no us consent reader for section 2")
}

func TestForSectionAbsentSection(t *testing.T) {
	for _, sid := range SupportedSIDs() {
		reader, err := ForSection(gppConstants.SectionID(sid), true, gpp.Model{})
		assert.NoError(t, err)
		assert.Nil(t, reader.Value(FieldVersion))
	}
}

func TestForSectionVirginia(t *testing.T) {
	var section uspva.USPVA
	section.CoreSegment.Version = 1
	section.CoreSegment.SaleOptOut = 1
	section.CoreSegment.SensitiveDataProcessing = []byte{1, 2, 1, 2, 1, 2, 1, 2}
	section.CoreSegment.KnownChildSensitiveDataConsents = []byte{2}

	container := gpplib.GppContainer{
		Version:      1,
		SectionTypes: []gppConstants.SectionID{gppConstants.SectionUSPVA},
		Sections:     []gpplib.Section{section},
	}
	model := gpp.NewModel(&container)

	t.Run("raw", func(t *testing.T) {
		reader, err := ForSection(gppConstants.SectionUSPVA, false, model)
		assert.NoError(t, err)
		assert.Equal(t, 1, *reader.Int(FieldSaleOptOut))
		assert.Equal(t, []int{1, 2, 1, 2, 1, 2, 1, 2}, reader.Ints(FieldSensitiveDataProcessing))
		assert.Equal(t, []int{2}, reader.Ints(FieldKnownChildSensitiveDataConsents))
	})

	t.Run("normalized", func(t *testing.T) {
		reader, err := ForSection(gppConstants.SectionUSPVA, true, model)
		assert.NoError(t, err)
		assert.Equal(t, 1, *reader.Int(FieldSaleOptOut))
		assert.Equal(t, []int{1, 2, 1, 2, 1, 2, 1, 2, 0, 0, 0, 0}, reader.Ints(FieldSensitiveDataProcessing))
		assert.Equal(t, []int{1, 1}, reader.Ints(FieldKnownChildSensitiveDataConsents))
	})
}
