package gpp

import (
	"testing"

	gpplib "github.com/prebid/go-gpp"
	gppConstants "github.com/prebid/go-gpp/constants"
	"github.com/stretchr/testify/assert"
)

func TestIsSIDInList(t *testing.T) {
	testCases := []struct {
		desc     string
		gppSIDs  []int8
		sid      gppConstants.SectionID
		expected bool
	}{
		{
			desc:     "nil_list",
			gppSIDs:  nil,
			sid:      gppConstants.SectionUSPNAT,
			expected: false,
		},
		{
			desc:     "empty_list",
			gppSIDs:  []int8{},
			sid:      gppConstants.SectionUSPNAT,
			expected: false,
		},
		{
			desc:     "not_found",
			gppSIDs:  []int8{8, 9},
			sid:      gppConstants.SectionUSPNAT,
			expected: false,
		},
		{
			desc:     "found",
			gppSIDs:  []int8{7},
			sid:      gppConstants.SectionUSPNAT,
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsSIDInList(tc.gppSIDs, tc.sid))
		})
	}
}

func TestIndexOfSID(t *testing.T) {
	testCases := []struct {
		desc     string
		gpp      gpplib.GppContainer
		sid      gppConstants.SectionID
		expected int
	}{
		{
			desc:     "empty_container",
			gpp:      gpplib.GppContainer{},
			sid:      gppConstants.SectionUSPNAT,
			expected: -1,
		},
		{
			desc: "not_found",
			gpp: gpplib.GppContainer{
				Version:      1,
				SectionTypes: []gppConstants.SectionID{gppConstants.SectionUSPCA},
			},
			sid:      gppConstants.SectionUSPNAT,
			expected: -1,
		},
		{
			desc: "found",
			gpp: gpplib.GppContainer{
				Version: 1,
				SectionTypes: []gppConstants.SectionID{
					gppConstants.SectionUSPCA,
					gppConstants.SectionUSPNAT,
				},
			},
			sid:      gppConstants.SectionUSPNAT,
			expected: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, IndexOfSID(tc.gpp, tc.sid))
		})
	}
}

func TestModelEmptySections(t *testing.T) {
	model := Model{}

	assert.Nil(t, model.USNat())
	assert.Nil(t, model.USCA())
	assert.Nil(t, model.USVA())
	assert.Nil(t, model.USCO())
	assert.Nil(t, model.USUT())
	assert.Nil(t, model.USCT())
}

func TestContextScope(t *testing.T) {
	testCases := []struct {
		desc       string
		sids       []int8
		scopeEmpty bool
		inScope    []gppConstants.SectionID
		outOfScope []gppConstants.SectionID
	}{
		{
			desc:       "nil_sids",
			sids:       nil,
			scopeEmpty: true,
			outOfScope: []gppConstants.SectionID{gppConstants.SectionUSPNAT},
		},
		{
			desc:       "empty_sids",
			sids:       []int8{},
			scopeEmpty: true,
		},
		{
			desc:       "scoped",
			sids:       []int8{7, 9},
			scopeEmpty: false,
			inScope:    []gppConstants.SectionID{gppConstants.SectionUSPNAT, gppConstants.SectionUSPVA},
			outOfScope: []gppConstants.SectionID{gppConstants.SectionUSPCA},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			ctx := NewContext(Model{}, tc.sids)
			assert.Equal(t, tc.scopeEmpty, ctx.ScopeEmpty())
			for _, sid := range tc.inScope {
				assert.True(t, ctx.InScope(sid))
			}
			for _, sid := range tc.outOfScope {
				assert.False(t, ctx.InScope(sid))
			}
		})
	}
}

func TestContextSectionIDsSorted(t *testing.T) {
	ctx := NewContext(Model{}, []int8{12, 7, 9})

	expected := []gppConstants.SectionID{
		gppConstants.SectionUSPNAT,
		gppConstants.SectionUSPVA,
		gppConstants.SectionUSPCT,
	}
	assert.Equal(t, expected, ctx.SectionIDs())
}

func TestContextIntersectsScope(t *testing.T) {
	testCases := []struct {
		desc     string
		scope    []int8
		sids     []int8
		expected bool
	}{
		{
			desc:     "overlap",
			scope:    []int8{1, 2},
			sids:     []int8{2, 3},
			expected: true,
		},
		{
			desc:     "no_overlap",
			scope:    []int8{1, 2},
			sids:     []int8{3},
			expected: false,
		},
		{
			desc:     "empty_scope",
			scope:    nil,
			sids:     []int8{1},
			expected: false,
		},
		{
			desc:     "empty_sids",
			scope:    []int8{1},
			sids:     nil,
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			ctx := NewContext(Model{}, tc.scope)
			assert.Equal(t, tc.expected, ctx.IntersectsScope(tc.sids))
		})
	}
}

func TestParseContextEmptyConsent(t *testing.T) {
	ctx, errs := ParseContext("", []int8{7})

	assert.Empty(t, errs)
	assert.True(t, ctx.InScope(gppConstants.SectionUSPNAT))
	assert.Nil(t, ctx.Model().USNat())
}
