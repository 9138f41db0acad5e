package cst

// FieldID tags a child node with the grammar field it fills in its parent.
type FieldID uint8

const (
	FieldNone FieldID = iota

	FieldChannel
	FieldSendType
	FieldInputs
	FieldDecls
	FieldProc
	FieldName
	FieldFormals
	FieldCont
	FieldCondition
	FieldConsequence
	FieldAlternative
	FieldReceipts
	FieldExpression
	FieldCases
	FieldPattern
	FieldBundleType
	FieldReceiver
	FieldArgs
	FieldRemainder
	FieldKey
	FieldValue
	FieldUri
)

var fieldNames = [...]string{
	FieldNone:        "",
	FieldChannel:     "channel",
	FieldSendType:    "send_type",
	FieldInputs:      "inputs",
	FieldDecls:       "decls",
	FieldProc:        "proc",
	FieldName:        "name",
	FieldFormals:     "formals",
	FieldCont:        "cont",
	FieldCondition:   "condition",
	FieldConsequence: "consequence",
	FieldAlternative: "alternative",
	FieldReceipts:    "receipts",
	FieldExpression:  "expression",
	FieldCases:       "cases",
	FieldPattern:     "pattern",
	FieldBundleType:  "bundle_type",
	FieldReceiver:    "receiver",
	FieldArgs:        "args",
	FieldRemainder:   "remainder",
	FieldKey:         "key",
	FieldValue:       "value",
	FieldUri:         "uri",
}

func (f FieldID) Name() string {
	return fieldNames[f]
}
