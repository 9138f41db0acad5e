package ast

// SimpleType is one of the built-in type literals.
type SimpleType int

const (
	SimpleTypeBool SimpleType = iota
	SimpleTypeInt
	SimpleTypeString
	SimpleTypeUri
	SimpleTypeByteArray
)

func (t SimpleType) String() string {
	switch t {
	case SimpleTypeBool:
		return "Bool"
	case SimpleTypeInt:
		return "Int"
	case SimpleTypeString:
		return "String"
	case SimpleTypeUri:
		return "Uri"
	case SimpleTypeByteArray:
		return "ByteArray"
	}
	return "SimpleType(?)"
}

// UnaryExpOp is a prefix process operator.
type UnaryExpOp int

const (
	UnaryOpNot UnaryExpOp = iota
	UnaryOpNeg
	UnaryOpNegation
)

func (op UnaryExpOp) String() string {
	switch op {
	case UnaryOpNot:
		return "not"
	case UnaryOpNeg:
		return "-"
	case UnaryOpNegation:
		return "~"
	}
	return "UnaryExpOp(?)"
}

// BinaryExpOp is an infix process operator.
type BinaryExpOp int

const (
	BinaryOpOr BinaryExpOp = iota
	BinaryOpAnd
	BinaryOpMatches
	BinaryOpEq
	BinaryOpNeq
	BinaryOpLt
	BinaryOpLte
	BinaryOpGt
	BinaryOpGte
	BinaryOpConcat
	BinaryOpDiff
	BinaryOpAdd
	BinaryOpSub
	BinaryOpInterpolation
	BinaryOpMult
	BinaryOpDiv
	BinaryOpMod
	BinaryOpDisjunction
	BinaryOpConjunction
)

func (op BinaryExpOp) String() string {
	switch op {
	case BinaryOpOr:
		return "or"
	case BinaryOpAnd:
		return "and"
	case BinaryOpMatches:
		return "matches"
	case BinaryOpEq:
		return "=="
	case BinaryOpNeq:
		return "!="
	case BinaryOpLt:
		return "<"
	case BinaryOpLte:
		return "<="
	case BinaryOpGt:
		return ">"
	case BinaryOpGte:
		return ">="
	case BinaryOpConcat:
		return "++"
	case BinaryOpDiff:
		return "--"
	case BinaryOpAdd:
		return "+"
	case BinaryOpSub:
		return "-"
	case BinaryOpInterpolation:
		return "%%"
	case BinaryOpMult:
		return "*"
	case BinaryOpDiv:
		return "/"
	case BinaryOpMod:
		return "%"
	case BinaryOpDisjunction:
		return "\\/"
	case BinaryOpConjunction:
		return "/\\"
	}
	return "BinaryExpOp(?)"
}

// SendType distinguishes single from persistent sends.
type SendType int

const (
	SendSingle SendType = iota
	SendMultiple
)

func (t SendType) String() string {
	if t == SendMultiple {
		return "!!"
	}
	return "!"
}

// BundleType is one of the four bundle constructors.
type BundleType int

const (
	BundleEquiv BundleType = iota
	BundleWrite
	BundleRead
	BundleReadWrite
)

func (t BundleType) String() string {
	switch t {
	case BundleEquiv:
		return "bundle0"
	case BundleWrite:
		return "bundle+"
	case BundleRead:
		return "bundle-"
	case BundleReadWrite:
		return "bundle"
	}
	return "BundleType(?)"
}

// VarRefKind distinguishes =x from =*x.
type VarRefKind int

const (
	VarRefProc VarRefKind = iota
	VarRefName
)

func (k VarRefKind) String() string {
	if k == VarRefName {
		return "=*"
	}
	return "="
}
