package checker

import "math/big"

// DecimalPlaces is the fixed number of fractional digits carried by the
// decimal type.
const DecimalPlaces = 10

// Type represents a type in the Covenant type system. The type set is
// closed: there is no subtyping and no implicit widening between any
// two distinct types.
type Type struct {
	Name    string
	Numeric bool     // bounded numeric: int128, uint256, decimal
	Min     *big.Rat // non-nil iff Numeric
	Max     *big.Rat // non-nil iff Numeric
	Size    int      // byte width for fixed-size byte types (bytes32, address)
}

func pow2(n uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), n)
}

func ratFromInt(i *big.Int) *big.Rat {
	return new(big.Rat).SetInt(i)
}

// Builtin types. The bounds are exact: int128 covers [-2^127, 2^127-1],
// uint256 covers [0, 2^256-1], decimal covers the int128 range with
// DecimalPlaces fractional digits.
var (
	TypeInt128 = &Type{
		Name:    "int128",
		Numeric: true,
		Min:     ratFromInt(new(big.Int).Neg(pow2(127))),
		Max:     ratFromInt(new(big.Int).Sub(pow2(127), big.NewInt(1))),
	}
	TypeUint256 = &Type{
		Name:    "uint256",
		Numeric: true,
		Min:     new(big.Rat),
		Max:     ratFromInt(new(big.Int).Sub(pow2(256), big.NewInt(1))),
	}
	TypeDecimal = &Type{
		Name:    "decimal",
		Numeric: true,
		Min:     ratFromInt(new(big.Int).Neg(pow2(127))),
		Max:     ratFromInt(new(big.Int).Sub(pow2(127), big.NewInt(1))),
	}
	TypeBytes32 = &Type{Name: "bytes32", Size: 32}
	TypeBytes   = &Type{Name: "bytes"}
	TypeBool    = &Type{Name: "bool"}
	TypeAddress = &Type{Name: "address", Size: 20}

	// TypeVoid marks the absence of a return value. It is not declarable.
	TypeVoid = &Type{Name: "void"}
)

// declaredTypes is the full declarable type set, keyed by source name
var declaredTypes = map[string]*Type{
	"int128":  TypeInt128,
	"uint256": TypeUint256,
	"decimal": TypeDecimal,
	"bytes32": TypeBytes32,
	"bytes":   TypeBytes,
	"bool":    TypeBool,
	"address": TypeAddress,
}

// ByName resolves a type name to its Type, or nil for an unknown name
func ByName(name string) *Type {
	return declaredTypes[name]
}

// DeclaredTypes returns the full declarable type set
func DeclaredTypes() []*Type {
	return []*Type{TypeInt128, TypeUint256, TypeDecimal, TypeBytes32, TypeBytes, TypeBool, TypeAddress}
}

// Equal checks if two types are equal. With a flat closed type set,
// name identity is type identity.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.Name == other.Name
}

// String returns the source-level name of the type
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.Name
}

// InRange reports whether v lies within the type's declared bounds.
// Non-numeric types have no bounds and always report true.
func (t *Type) InRange(v *big.Rat) bool {
	if !t.Numeric {
		return true
	}
	return v.Cmp(t.Min) >= 0 && v.Cmp(t.Max) <= 0
}
