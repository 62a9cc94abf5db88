package profile

import (
	"github.com/macropower/needs/pkg/parameter"
)

// Parameter names used by [ParameterSet].
const (
	ParamMinimumNeeds = "minimum needs"
	ParamProvenance   = "provenance"
)

// Consumer receives the minimum needs parameters whenever the active
// profile is saved.
type Consumer interface {
	UpdateNeeds(params []*parameter.Parameter, provenance string)
}

// ConsumerFunc adapts a function to [Consumer].
type ConsumerFunc func(params []*parameter.Parameter, provenance string)

// UpdateNeeds implements [Consumer].
func (f ConsumerFunc) UpdateNeeds(params []*parameter.Parameter, provenance string) {
	f(params, provenance)
}

// ParameterSet is the named parameter map of an impact function.
//
// As a [Consumer] it only updates sets that already declare a minimum needs
// parameter; other impact functions are left untouched.
type ParameterSet map[string]any

// UpdateNeeds implements [Consumer].
func (ps ParameterSet) UpdateNeeds(params []*parameter.Parameter, provenance string) {
	if _, ok := ps[ParamMinimumNeeds]; !ok {
		return
	}

	ps[ParamMinimumNeeds] = params
	ps[ParamProvenance] = provenance
}

// AddNeedsParameters sets the minimum needs parameters of the manager's
// current profile on ps, whether or not ps declared them before.
func AddNeedsParameters(ps ParameterSet, m *Manager) error {
	params, err := m.Parameters()
	if err != nil {
		return err
	}

	provenance, err := m.Provenance()
	if err != nil {
		return err
	}

	ps[ParamMinimumNeeds] = params
	ps[ParamProvenance] = provenance

	return nil
}
