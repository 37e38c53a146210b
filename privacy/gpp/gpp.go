package gpp

import (
	"sort"

	gpplib "github.com/prebid/go-gpp"
	gppConstants "github.com/prebid/go-gpp/constants"
	"github.com/prebid/go-gpp/sections/uspca"
	"github.com/prebid/go-gpp/sections/uspco"
	"github.com/prebid/go-gpp/sections/uspct"
	"github.com/prebid/go-gpp/sections/uspnat"
	"github.com/prebid/go-gpp/sections/usput"
	"github.com/prebid/go-gpp/sections/uspva"
)

// IsSIDInList returns true if the 'sid' value is found in the gppSIDs array.
func IsSIDInList(gppSIDs []int8, sid gppConstants.SectionID) bool {
	for _, id := range gppSIDs {
		if id == int8(sid) {
			return true
		}
	}
	return false
}

// IndexOfSID returns the position of the 'sid' value in the container's
// SectionTypes array, or -1 when not found.
func IndexOfSID(gpp gpplib.GppContainer, sid gppConstants.SectionID) int {
	for i, id := range gpp.SectionTypes {
		if id == sid {
			return i
		}
	}
	return -1
}

// Model wraps a decoded GPP container with typed access to the known US
// sections. Accessors return nil when the consent string does not carry the
// section, never an error.
type Model struct {
	container *gpplib.GppContainer
}

func NewModel(container *gpplib.GppContainer) Model {
	return Model{container: container}
}

func (m Model) section(sid gppConstants.SectionID) gpplib.Section {
	if m.container == nil {
		return nil
	}

	idx := IndexOfSID(*m.container, sid)
	if idx < 0 || idx >= len(m.container.Sections) {
		return nil
	}
	return m.container.Sections[idx]
}

func (m Model) USNat() *uspnat.USPNAT {
	if s, ok := m.section(gppConstants.SectionUSPNAT).(uspnat.USPNAT); ok {
		return &s
	}
	return nil
}

func (m Model) USCA() *uspca.USPCA {
	if s, ok := m.section(gppConstants.SectionUSPCA).(uspca.USPCA); ok {
		return &s
	}
	return nil
}

func (m Model) USVA() *uspva.USPVA {
	if s, ok := m.section(gppConstants.SectionUSPVA).(uspva.USPVA); ok {
		return &s
	}
	return nil
}

func (m Model) USCO() *uspco.USPCO {
	if s, ok := m.section(gppConstants.SectionUSPCO).(uspco.USPCO); ok {
		return &s
	}
	return nil
}

func (m Model) USUT() *usput.USPUT {
	if s, ok := m.section(gppConstants.SectionUSPUT).(usput.USPUT); ok {
		return &s
	}
	return nil
}

func (m Model) USCT() *uspct.USPCT {
	if s, ok := m.section(gppConstants.SectionUSPCT).(uspct.USPCT); ok {
		return &s
	}
	return nil
}

// Context is the per-request consent view: the decoded model plus the set of
// section ids that apply to this request. Built once per request.
type Context struct {
	model Model
	scope map[gppConstants.SectionID]struct{}
}

func NewContext(model Model, sids []int8) Context {
	var scope map[gppConstants.SectionID]struct{}
	if len(sids) > 0 {
		scope = make(map[gppConstants.SectionID]struct{}, len(sids))
		for _, sid := range sids {
			scope[gppConstants.SectionID(sid)] = struct{}{}
		}
	}

	return Context{model: model, scope: scope}
}

// ParseContext decodes the consent string and builds the request context. The
// context remains usable when decoding partially fails; returned errors carry
// the section level failures.
func ParseContext(consent string, sids []int8) (Context, []error) {
	if consent == "" {
		return NewContext(Model{}, sids), nil
	}

	container, errs := gpplib.Parse(consent)
	return NewContext(NewModel(&container), sids), errs
}

func (c Context) Model() Model {
	return c.model
}

func (c Context) ScopeEmpty() bool {
	return len(c.scope) == 0
}

func (c Context) InScope(sid gppConstants.SectionID) bool {
	_, ok := c.scope[sid]
	return ok
}

// SectionIDs returns the applicable section ids in ascending order.
func (c Context) SectionIDs() []gppConstants.SectionID {
	ids := make([]gppConstants.SectionID, 0, len(c.scope))
	for id := range c.scope {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IntersectsScope reports whether the configured section ids overlap the
// request scope. Both sets must be non-empty to intersect.
func (c Context) IntersectsScope(sids []int8) bool {
	for _, sid := range sids {
		if c.InScope(gppConstants.SectionID(sid)) {
			return true
		}
	}
	return false
}
