package semantic

// Namespace and builtin-registry diagnostic codes (spec §4.6, §6).
const (
	CodeNSUnknownNamespace   = "E_NS_001"
	CodeNSUnknownMember      = "E_NS_002"
	CodeNSAmbiguous          = "E_NS_003"
	CodeNSDuplicateAlias     = "E_NS_004"
	CodeNSUsingAfterDecl     = "E_NS_005"
	CodeNSUnresolvableType   = "E_NS_006"
	CodeNSAliasConflict      = "E_NS_007"
	CodeNSReservedNamespace  = "E_NS_009"
	CodeBuiltinShadow        = "E_VIPER_BUILTIN_SHADOW"
)

// ReservedRootNamespace is the one root namespace name user code may never
// declare or import (spec §4.6).
const ReservedRootNamespace = "Viper"
