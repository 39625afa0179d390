package framelearn

import (
	"fmt"
	"strconv"

	"github.com/wdm0006/framelearn/pkg/frame"
)

// Member is a named union member. The name identifies the member; it only
// becomes a column name when needed to keep output names unique.
type Member struct {
	Name string
	Step Step
}

// Union applies every member to the same input and joins their outputs
// column-wise in member order.
type Union struct {
	members []Member
}

// NewUnion checks that member names are present and unique.
func NewUnion(members ...Member) (*Union, error) {
	if len(members) == 0 {
		return nil, ErrEmptyUnion
	}
	seen := make(map[string]struct{}, len(members))
	for i, m := range members {
		if m.Name == "" {
			return nil, fmt.Errorf("union member %d has no name", i)
		}
		if m.Step == nil {
			return nil, fmt.Errorf("union member %s has no step", m.Name)
		}
		if _, dup := seen[m.Name]; dup {
			return nil, &DuplicateMemberError{Name: m.Name}
		}
		seen[m.Name] = struct{}{}
	}
	out := make([]Member, len(members))
	copy(out, members)
	return &Union{members: out}, nil
}

// Add joins a, b and more into a union. Operands that are unions are
// spliced in with their member names; a spliced name already used earlier
// in the result, and every operand that is not a union, is named by its
// position in the result ("i", or "i_k" when "i" is taken).
func Add(a, b Step, more ...Step) *Union {
	var members []Member
	taken := map[string]struct{}{}
	for _, s := range append([]Step{a, b}, more...) {
		switch v := s.(type) {
		case nil:
			panic("framelearn: Add of nil step")
		case *Union:
			for _, m := range v.members {
				if _, dup := taken[m.Name]; dup {
					m.Name = ""
				} else {
					taken[m.Name] = struct{}{}
				}
				members = append(members, m)
			}
		default:
			members = append(members, Member{Step: s})
		}
	}
	for i := range members {
		if members[i].Name != "" {
			continue
		}
		name := strconv.Itoa(i)
		for k := 1; ; k++ {
			if _, dup := taken[name]; !dup {
				break
			}
			name = fmt.Sprintf("%d_%d", i, k)
		}
		members[i].Name = name
		taken[name] = struct{}{}
	}
	return &Union{members: members}
}

// Members returns a copy of the member list.
func (u *Union) Members() []Member {
	out := make([]Member, len(u.members))
	copy(out, u.members)
	return out
}

// Fit fits every member on the same (x, y).
func (u *Union) Fit(x *frame.Frame, y *frame.Series) error {
	if len(u.members) == 0 {
		return ErrEmptyUnion
	}
	for _, m := range u.members {
		if err := m.Step.Fit(x, y); err != nil {
			return fmt.Errorf("union member %s: %w", m.Name, err)
		}
	}
	return nil
}

func (u *Union) FitTransform(x *frame.Frame, y *frame.Series) (*frame.Frame, error) {
	outs := make([]*frame.Frame, len(u.members))
	for i, m := range u.members {
		out, err := m.Step.FitTransform(x, y)
		if err != nil {
			return nil, fmt.Errorf("union member %s: %w", m.Name, err)
		}
		outs[i] = out
	}
	return u.combine(outs)
}

func (u *Union) Transform(x *frame.Frame) (*frame.Frame, error) {
	outs := make([]*frame.Frame, len(u.members))
	for i, m := range u.members {
		out, err := m.Step.Transform(x)
		if err != nil {
			return nil, fmt.Errorf("union member %s: %w", m.Name, err)
		}
		outs[i] = out
	}
	return u.combine(outs)
}

// GetParams flattens members' params under "<member>__<param>".
func (u *Union) GetParams() map[string]any {
	out := map[string]any{}
	for _, m := range u.members {
		nestParams(out, m.Name, m.Step)
	}
	return out
}

// SetParams routes "<member>__<param>" keys to the named member. Every
// member is resolved before any params are applied, and members are set in
// member order.
func (u *Union) SetParams(params map[string]any) error {
	byMember, err := splitParams(params)
	if err != nil {
		return err
	}
	for name := range byMember {
		m, ok := u.member(name)
		if !ok {
			return fmt.Errorf("union: %w: no member %q", ErrUnknownParam, name)
		}
		if !settable(m.Step) {
			return fmt.Errorf("union member %s: %T: %w", name, m.Step, ErrNoParams)
		}
	}
	for _, m := range u.members {
		p, ok := byMember[m.Name]
		if !ok {
			continue
		}
		if err := setParams(m.Step, p); err != nil {
			return fmt.Errorf("union member %s: %w", m.Name, err)
		}
	}
	return nil
}

// EstimatorKind is always KindTransformer.
func (u *Union) EstimatorKind() EstimatorKind { return KindTransformer }

func (u *Union) Pipe(next Step, more ...Step) *Chain { return Pipe(u, next, more...) }
func (u *Union) Add(other Step, more ...Step) *Union { return Add(u, other, more...) }

func (u *Union) member(name string) (Member, bool) {
	for _, m := range u.members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// combine checks row identity across member outputs and renames repeated
// column names before concatenating. A repeated name becomes the member
// name when the member produced a single column, otherwise
// "<member>__<column>".
func (u *Union) combine(outs []*frame.Frame) (*frame.Frame, error) {
	if len(outs) == 0 {
		return nil, ErrEmptyUnion
	}
	want := outs[0].Index()
	taken := map[string]struct{}{}
	for i, out := range outs {
		m := u.members[i]
		if !out.Index().Equal(want) {
			return nil, &IndexMismatchError{Member: m.Name}
		}
		own := map[string]struct{}{}
		for _, name := range out.Names() {
			own[name] = struct{}{}
		}
		free := func(name string) bool {
			_, t := taken[name]
			_, o := own[name]
			return !t && !o
		}
		for _, name := range out.Names() {
			if _, dup := taken[name]; !dup {
				taken[name] = struct{}{}
				continue
			}
			fresh := m.Name
			if out.Cols() != 1 || !free(fresh) {
				fresh = m.Name + paramSep + name
			}
			for k := 1; !free(fresh); k++ {
				fresh = fmt.Sprintf("%s%s%s_%d", m.Name, paramSep, name, k)
			}
			renamed, err := out.Rename(name, fresh)
			if err != nil {
				return nil, fmt.Errorf("union member %s: %w", m.Name, err)
			}
			out = renamed
			taken[fresh] = struct{}{}
			own[fresh] = struct{}{}
		}
		outs[i] = out
	}
	return frame.Concat(outs...)
}
