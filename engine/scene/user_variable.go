package scene

import (
	"github.com/jinzhu/copier"
)

// UserVariableType tags the value held by a UserVariable.
type UserVariableType int

const (
	UserVariableUnknown UserVariableType = iota
	UserVariableInt
	UserVariableUint
	UserVariableInt64
	UserVariableUint64
	UserVariableDouble
	UserVariableString
	UserVariableVec2
	UserVariableVec3
	UserVariableVec4
	UserVariableBool
	UserVariableVector
)

func (t UserVariableType) String() string {
	switch t {
	case UserVariableInt:
		return "int"
	case UserVariableUint:
		return "uint"
	case UserVariableInt64:
		return "int64"
	case UserVariableUint64:
		return "uint64"
	case UserVariableDouble:
		return "double"
	case UserVariableString:
		return "string"
	case UserVariableVec2:
		return "vec2"
	case UserVariableVec3:
		return "vec3"
	case UserVariableVec4:
		return "vec4"
	case UserVariableBool:
		return "bool"
	case UserVariableVector:
		return "vector"
	}
	return "unknown"
}

// UserVariable is a typed value stored on a scene under a unique name. Only the
// field matching Type is meaningful. A lookup of a missing name returns a value
// with Type UserVariableUnknown, so callers check the tag before reading.
type UserVariable struct {
	Type   UserVariableType
	Int    int64
	Uint   uint64
	Double float64
	String string
	Vec    [4]float32
	Bool   bool
	Vector []float32
}

// NewIntVariable creates an int variable.
func NewIntVariable(v int32) UserVariable {
	return UserVariable{Type: UserVariableInt, Int: int64(v)}
}

// NewUintVariable creates a uint variable.
func NewUintVariable(v uint32) UserVariable {
	return UserVariable{Type: UserVariableUint, Uint: uint64(v)}
}

// NewInt64Variable creates an int64 variable.
func NewInt64Variable(v int64) UserVariable {
	return UserVariable{Type: UserVariableInt64, Int: v}
}

// NewUint64Variable creates a uint64 variable.
func NewUint64Variable(v uint64) UserVariable {
	return UserVariable{Type: UserVariableUint64, Uint: v}
}

// NewDoubleVariable creates a double variable.
func NewDoubleVariable(v float64) UserVariable {
	return UserVariable{Type: UserVariableDouble, Double: v}
}

// NewStringVariable creates a string variable.
func NewStringVariable(v string) UserVariable {
	return UserVariable{Type: UserVariableString, String: v}
}

// NewVec2Variable creates a two component vector variable.
func NewVec2Variable(v [2]float32) UserVariable {
	return UserVariable{Type: UserVariableVec2, Vec: [4]float32{v[0], v[1]}}
}

// NewVec3Variable creates a three component vector variable.
func NewVec3Variable(v [3]float32) UserVariable {
	return UserVariable{Type: UserVariableVec3, Vec: [4]float32{v[0], v[1], v[2]}}
}

// NewVec4Variable creates a four component vector variable.
func NewVec4Variable(v [4]float32) UserVariable {
	return UserVariable{Type: UserVariableVec4, Vec: v}
}

// NewBoolVariable creates a bool variable.
func NewBoolVariable(v bool) UserVariable {
	return UserVariable{Type: UserVariableBool, Bool: v}
}

// NewVectorVariable creates a float array variable. The slice is copied.
func NewVectorVariable(v []float32) UserVariable {
	return UserVariable{Type: UserVariableVector, Vector: append([]float32(nil), v...)}
}

// Valid reports whether the variable holds a value.
func (v UserVariable) Valid() bool {
	return v.Type != UserVariableUnknown
}

// clone deep-copies v so the Vector payload is not shared between scenes.
func (v UserVariable) clone() UserVariable {
	var out UserVariable
	if err := copier.CopyWithOption(&out, &v, copier.Option{DeepCopy: true}); err != nil {
		out = v
		out.Vector = append([]float32(nil), v.Vector...)
	}
	return out
}
