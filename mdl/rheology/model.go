// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rheology implements time-dependent non-Newtonian (Herschel-Bulkley type) models
// computing the effective kinematic viscosity of cement grouts and slurries
//  References:
//   [1] Herschel WH and Bulkley R (1926) Konsistenzmessungen von Gummi-Benzollösungen,
//       Kolloid-Zeitschrift, 39(4), 291-300
//   [2] Papanastasiou TC (1987) Flows of materials with yield, Journal of Rheology, 31(5), 385-404,
//       http://dx.doi.org/10.1122/1.549926
package rheology

import (
	"sort"

	"github.com/cpmech/gorheo/fld"
	"github.com/cpmech/gorheo/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/sirupsen/logrus"
)

// constants
const (
	VSMALL    = 1e-300        // floor of strain rate in denominators
	SMALL     = 1e-15         // floor of strain rate (timeVaryingHerschelBulkley) and time threshold
	PapM      = 1000.0        // Papanastasiou regularisation parameter m [s]
	PhaseName = "alpha.grout" // name of phase-indicator field
)

// Kind enumerates the available laws
type Kind int

// kinds of laws
const (
	EasyTimeKind Kind = iota
	TimeSlurryKind
	TimeSlurryPowerKind
	TimeVaryingGroutKind
	TimeVaryingHerschelBulkleyKind
)

// String returns the registered name corresponding to a kind
func (k Kind) String() string {
	switch k {
	case EasyTimeKind:
		return "easyTime"
	case TimeSlurryKind:
		return "timeSlurry"
	case TimeSlurryPowerKind:
		return "timeSlurryPower"
	case TimeVaryingGroutKind:
		return "timeVaryingGrout"
	case TimeVaryingHerschelBulkleyKind:
		return "timeVaryingHerschelBulkley"
	}
	return "unknown"
}

// Flow provides the quantities derived from the velocity field
type Flow interface {
	Layout() fld.Layout     // number of cells and boundary patches
	StrainRate() *fld.Field // magnitude of the strain rate [1/s]
}

// Args holds the arguments to allocate and initialise models
type Args struct {
	Name   string             // name of viscosity field; default = "nu"
	U      Flow               // velocity field
	Phi    *fld.Field         // volumetric flux; not used by the current laws
	Dict   inp.Dict           // viscosity dictionary
	Time   float64            // time of initial evaluation
	Fields *fld.Registry      // registry of fields used in the initial evaluation; may be nil
	Log    logrus.FieldLogger // logger; default = logrus.StandardLogger()
	Ndeg   int                // parallel degree; default = 1
	Reduce fld.Reducer        // global reduction; default = fld.Serial
}

// Model defines viscosity models
type Model interface {
	Init(args *Args) error                         // initialises model and computes the viscosity at args.Time
	Viscosity() *fld.Field                         // returns the viscosity field computed by the last Recompute/Reconfigure
	ViscosityOnPatch(patch int) ([]float64, error) // returns the viscosity on a boundary patch
	Recompute(t float64, reg *fld.Registry) error  // computes viscosity (and diagnostics) at time t
	Reconfigure(dict inp.Dict) error               // reads parameters again and recomputes viscosity
	GetPrms(example bool) dbf.Params               // gets (an example) of parameters
	Kind() Kind                                    // returns the kind of law
	Name() string                                  // returns the name of the viscosity field
	Type() string                                  // returns the registered name of the model
}

// Diagnosed is implemented by models that compute diagnostic fields masked by the phase indicator
type Diagnosed interface {
	Diagnostics() []*fld.Field // diagnostic fields
	ActiveCells() float64      // global number of cells with phase above threshold (last evaluation)
}

// Consistent is implemented by models whose consistency varies in time
type Consistent interface {
	Consistency(t float64) float64 // consistency (limited, if applicable) at time t
}

// Worded is implemented by models with non-numeric parameters
type Worded interface {
	GetWords(example bool) map[string]string // gets (an example) of keywords
}

// New allocates and initialises a viscosity model
//  Note: nil is returned if Init fails
func New(name string, args *Args) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'rheology' database", name)
	}
	model = allocator()
	err = model.Init(args)
	if err != nil {
		return nil, err
	}
	return
}

// FromDict allocates the model named by the transportModel keyword of args.Dict
func FromDict(args *Args) (Model, error) {
	if args == nil || args.Dict == nil {
		return nil, chk.Err("viscosity dictionary is required")
	}
	name, err := args.Dict.Model()
	if err != nil {
		return nil, err
	}
	return New(name, args)
}

// Names returns the sorted names of all available models
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Example returns an example of parameters of a model without initialising it
func Example(name string) (dbf.Params, error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'rheology' database", name)
	}
	return allocator().GetPrms(true), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}
