package iltext

// Error codes for spec §7's "IL" taxonomy: duplicate version/block/
// parameter/result, unknown block/calling-convention, malformed header,
// missing brace.
const (
	CodeDuplicateVersion    = "IL0001"
	CodeDuplicateTarget     = "IL0002"
	CodeTrailingTargetJunk  = "IL0003"
	CodeMalformedHeader     = "IL0004"
	CodeDuplicateParam      = "IL0005"
	CodeEmptyParamSlot      = "IL0006"
	CodeUnknownConvention   = "IL0007"
	CodeMissingLabel        = "IL0008"
	CodeDuplicateBlock      = "IL0009"
	CodeDuplicateResult     = "IL0010"
	CodeMalformedCall       = "IL0011"
	CodeUnknownBlockTarget  = "IL0012"
	CodeUnexpectedToken     = "IL0013"
	CodeMissingCloseBrace   = "IL0014"
)
