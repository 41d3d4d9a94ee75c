package goatlas

import "errors"

// Errors
var (
	ErrUnmarshal        = errors.New("unmarshal failed")
	ErrBadCatalogParam  = errors.New("bad catalog param")
	ErrBadResultSpec    = errors.New("bad result certificate encoding")
	ErrUnknownOperation = errors.New("unknown categorical operation")
	ErrBadVertexID      = errors.New("vertex index out of range")
	ErrBadMirrorPair    = errors.New("mirror pairing out of range")
	ErrBadAtlasExpr     = errors.New("bad atlas expression")
	ErrNilAtlas         = errors.New("nil atlas")
)

// OperationByName returns the Operation with the given display name.
func OperationByName(name string) (Operation, error) {
	for _, op := range AllOperations {
		if op.Name() == name {
			return op, nil
		}
	}
	return 0, ErrUnknownOperation
}
