package apimodel

import "encoding/json"

// Arguments is an insertion-ordered mapping from argument name to definition.
// A nil *Arguments means the declaration had no argument text at all.
type Arguments struct {
	order  []string
	byName map[string]*ArgumentDef
}

// NewArguments returns an empty argument mapping.
func NewArguments() *Arguments {
	return &Arguments{byName: make(map[string]*ArgumentDef)}
}

// Set stores arg under its name. Re-setting a known name replaces the value
// and keeps its original position.
func (a *Arguments) Set(arg *ArgumentDef) {
	if _, ok := a.byName[arg.Name]; !ok {
		a.order = append(a.order, arg.Name)
	}
	a.byName[arg.Name] = arg
}

// Get returns the argument with the given name.
func (a *Arguments) Get(name string) (*ArgumentDef, bool) {
	if a == nil {
		return nil, false
	}
	arg, ok := a.byName[name]
	return arg, ok
}

// Len returns the number of distinct argument names. Safe on nil.
func (a *Arguments) Len() int {
	if a == nil {
		return 0
	}
	return len(a.order)
}

// Names returns the argument names in insertion order.
func (a *Arguments) Names() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.order...)
}

// List returns the arguments in insertion order. Safe on nil.
func (a *Arguments) List() []*ArgumentDef {
	if a == nil {
		return nil
	}
	out := make([]*ArgumentDef, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, a.byName[name])
	}
	return out
}

// MarshalJSON encodes the arguments as an ordered list.
func (a *Arguments) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.List())
}

// MarshalYAML encodes the arguments as an ordered list.
func (a *Arguments) MarshalYAML() (any, error) {
	return a.List(), nil
}

// MethodSet groups overloads by member name. Names keep the order of their
// first declaration and overloads keep declaration order.
type MethodSet struct {
	order  []string
	byName map[string][]*MethodDef
}

// NewMethodSet returns an empty method set.
func NewMethodSet() *MethodSet {
	return &MethodSet{byName: make(map[string][]*MethodDef)}
}

// Add appends m to the overload sequence for its name.
func (s *MethodSet) Add(m *MethodDef) {
	if _, ok := s.byName[m.Name]; !ok {
		s.order = append(s.order, m.Name)
	}
	s.byName[m.Name] = append(s.byName[m.Name], m)
}

// Names returns the member names in first-declaration order.
func (s *MethodSet) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Overloads returns the overload sequence for name.
func (s *MethodSet) Overloads(name string) []*MethodDef {
	if s == nil {
		return nil
	}
	return s.byName[name]
}

// All returns every method, grouped by name, in declaration order.
func (s *MethodSet) All() []*MethodDef {
	if s == nil {
		return nil
	}
	var out []*MethodDef
	for _, name := range s.order {
		out = append(out, s.byName[name]...)
	}
	return out
}

// Len returns the total number of overloads.
func (s *MethodSet) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, ms := range s.byName {
		n += len(ms)
	}
	return n
}

type overloadGroup struct {
	Name      string       `json:"name" yaml:"name"`
	Overloads []*MethodDef `json:"overloads" yaml:"overloads"`
}

func (s *MethodSet) groups() []overloadGroup {
	if s == nil {
		return []overloadGroup{}
	}
	out := make([]overloadGroup, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, overloadGroup{Name: name, Overloads: s.byName[name]})
	}
	return out
}

// MarshalJSON encodes the set as an ordered list of overload groups.
func (s *MethodSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.groups())
}

// MarshalYAML encodes the set as an ordered list of overload groups.
func (s *MethodSet) MarshalYAML() (any, error) {
	return s.groups(), nil
}
