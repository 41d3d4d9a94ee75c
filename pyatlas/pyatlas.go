package pyatlas

// Copyright 2018 The go-python Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

import (
	"os"
	"strings"

	"github.com/go-python/gpython/py"

	"github.com/atlas-structures/atlas.SDK/goatlas"
	"github.com/atlas-structures/atlas.SDK/libatlas"
	_ "github.com/atlas-structures/atlas.SDK/libatlas/catalog"
)

var (
	pyAtlasType     = py.NewType("Atlas", "an Atlas measurement profile (vertex degrees, mirror involution, unity positions)")
	pyResultType    = py.NewType("OperationResult", "outcome record of one categorical-operation verification")
	pyCatalogType   = py.NewType("Catalog", "goatlas.Catalog")
	pyWorkspaceType = py.NewType("Workspace", "collects active session resources and catalogs")
)

type pyAtlas struct {
	*libatlas.Atlas
}

func (at pyAtlas) Type() *py.Type {
	return pyAtlasType
}

func (at pyAtlas) M__str__() (py.Object, error) {
	return py.String(at.Atlas.String()), nil
}

func (at pyAtlas) M__repr__() (py.Object, error) {
	return at.M__str__()
}

func py_NewAtlas(module py.Object, args py.Tuple) (py.Object, error) {
	at := pyAtlas{libatlas.NewAtlas()}
	if len(args) > 0 {
		expr, ok := args[0].(py.String)
		if !ok {
			return nil, py.ExceptionNewf(py.TypeError, "NewAtlas expects an atlas expression string")
		}
		if err := at.InitFromExpr(string(expr)); err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
	}
	return py.Object(at), nil
}

func py_CanonicalAtlas(module py.Object, args py.Tuple) (py.Object, error) {
	return py.Object(pyAtlas{libatlas.CanonicalAtlas()}), nil
}

func py_Atlas_InitFromExpr(self py.Object, args py.Tuple) (py.Object, error) {
	at := self.(pyAtlas)
	var expr string
	err := py.LoadTuple(args, []interface{}{&expr})
	if err != nil {
		return nil, err
	}
	if err := at.InitFromExpr(expr); err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.Object(at), nil
}

func py_Atlas_NumVerts(self py.Object, args py.Tuple) (py.Object, error) {
	at := self.(pyAtlas)
	return py.Object(py.Int(at.VertexCount())), nil
}

func py_Atlas_Degree(self py.Object, args py.Tuple) (py.Object, error) {
	at := self.(pyAtlas)
	var v py.Object
	err := py.ParseTuple(args, "i", &v)
	if err != nil {
		return nil, err
	}
	return py.Object(py.Int(at.Degree(int(v.(py.Int))))), nil
}

func py_Atlas_MirrorPair(self py.Object, args py.Tuple) (py.Object, error) {
	at := self.(pyAtlas)
	var v py.Object
	err := py.ParseTuple(args, "i", &v)
	if err != nil {
		return nil, err
	}
	return py.Object(py.Int(at.MirrorPair(int(v.(py.Int))))), nil
}

func py_Atlas_UnityPositions(self py.Object, args py.Tuple) (py.Object, error) {
	at := self.(pyAtlas)
	unity := at.UnityPositions()
	out := make(py.Tuple, len(unity))
	for i, u := range unity {
		out[i] = py.Int(u)
	}
	return py.Object(out), nil
}

func py_Atlas_Verify(self py.Object, args py.Tuple) (py.Object, error) {
	at := self.(pyAtlas)
	var opName string
	err := py.LoadTuple(args, []interface{}{&opName})
	if err != nil {
		return nil, err
	}
	op, err := goatlas.OperationByName(opName)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "unknown operation %q", opName)
	}
	res := libatlas.VerifyOperation(op, at.Atlas)
	return py.Object(pyResult{res}), nil
}

func py_Atlas_VerifyAll(self py.Object, args py.Tuple) (py.Object, error) {
	at := self.(pyAtlas)
	results := libatlas.VerifyAll(at.Atlas)
	out := make(py.Tuple, len(results))
	for i, res := range results {
		out[i] = pyResult{res}
	}
	return py.Object(out), nil
}

type pyResult struct {
	res goatlas.OperationResult
}

func (r pyResult) Type() *py.Type {
	return pyResultType
}

func (r pyResult) M__str__() (py.Object, error) {
	b := strings.Builder{}
	r.res.WriteAsString(&b, goatlas.DefaultPrintOpts)
	return py.String(strings.TrimRight(b.String(), "\n")), nil
}

func (r pyResult) M__repr__() (py.Object, error) {
	return r.M__str__()
}

func py_Result_GroupName(self py.Object, args py.Tuple) (py.Object, error) {
	return py.String(self.(pyResult).res.GroupName), nil
}

func py_Result_OpType(self py.Object, args py.Tuple) (py.Object, error) {
	return py.String(self.(pyResult).res.OperationType), nil
}

func py_Result_ExpectedRoots(self py.Object, args py.Tuple) (py.Object, error) {
	return py.Int(self.(pyResult).res.ExpectedRoots), nil
}

func py_Result_ActualCount(self py.Object, args py.Tuple) (py.Object, error) {
	return py.Int(self.(pyResult).res.ActualCount), nil
}

func py_Result_Verified(self py.Object, args py.Tuple) (py.Object, error) {
	if self.(pyResult).res.Verified {
		return py.True, nil
	}
	return py.False, nil
}

func py_Result_Details(self py.Object, args py.Tuple) (py.Object, error) {
	return py.String(self.(pyResult).res.Details), nil
}

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

type pyWorkspace struct {
	*libatlas.Workspace
}

func (ws pyWorkspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		wsObj = pyWorkspace{libatlas.NewWorkspace()}
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

func py_Workspace_CatalogExists(self py.Object, args py.Tuple) (py.Object, error) {
	_ = self.(pyWorkspace)

	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(pathname)
	if os.IsNotExist(err) {
		return py.False, nil
	}
	return py.True, nil
}

func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(pyWorkspace)

	var pathname string
	var flags int32
	err := py.LoadTuple(args, []interface{}{&pathname, &flags})
	if err != nil {
		return nil, err
	}

	opts := goatlas.CatalogOpts{
		DbPathName: pathname,
		ReadOnly:   (flags & READ_ONLY) != 0,
	}
	cat, err := ws.OpenCatalog(opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return pyCatalog{cat}, nil
}

type pyCatalog struct {
	goatlas.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_Catalog_AddResult(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "AddResult expects an OperationResult")
	}
	r, ok := args[0].(pyResult)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected OperationResult object (got %v)", args[0].Type().Name)
	}
	if cat.TryAddResult(r.res) {
		return py.True, nil
	}
	return py.False, nil
}

func py_Catalog_NumResults(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	var opName string
	err := py.LoadTuple(args, []interface{}{&opName})
	if err != nil {
		return nil, err
	}
	op, err := goatlas.OperationByName(opName)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "unknown operation %q", opName)
	}
	return py.Int(cat.NumResults(op)), nil
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	cat.Close()
	return py.None, nil
}

func init() {

	/////////////////////////////////
	// Atlas
	{
		pyAtlasType.Dict["InitFromExpr"] = py.MustNewMethod("InitFromExpr", py_Atlas_InitFromExpr, 0, "reinitializes this Atlas from a profile expression")
		pyAtlasType.Dict["NumVerts"] = py.MustNewMethod("NumVerts", py_Atlas_NumVerts, 0, "")
		pyAtlasType.Dict["Degree"] = py.MustNewMethod("Degree", py_Atlas_Degree, 0, "")
		pyAtlasType.Dict["MirrorPair"] = py.MustNewMethod("MirrorPair", py_Atlas_MirrorPair, 0, "")
		pyAtlasType.Dict["UnityPositions"] = py.MustNewMethod("UnityPositions", py_Atlas_UnityPositions, 0, "")
		pyAtlasType.Dict["Verify"] = py.MustNewMethod("Verify", py_Atlas_Verify, 0, "applies one categorical operation by name")
		pyAtlasType.Dict["VerifyAll"] = py.MustNewMethod("VerifyAll", py_Atlas_VerifyAll, 0, "applies all five categorical operations in taxonomy order")
	}

	/////////////////////////////////
	// OperationResult
	{
		pyResultType.Dict["GroupName"] = py.MustNewMethod("GroupName", py_Result_GroupName, 0, "")
		pyResultType.Dict["OpType"] = py.MustNewMethod("OpType", py_Result_OpType, 0, "")
		pyResultType.Dict["ExpectedRoots"] = py.MustNewMethod("ExpectedRoots", py_Result_ExpectedRoots, 0, "")
		pyResultType.Dict["ActualCount"] = py.MustNewMethod("ActualCount", py_Result_ActualCount, 0, "")
		pyResultType.Dict["Verified"] = py.MustNewMethod("Verified", py_Result_Verified, 0, "")
		pyResultType.Dict["Details"] = py.MustNewMethod("Details", py_Result_Details, 0, "")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["AddResult"] = py.MustNewMethod("AddResult", py_Catalog_AddResult, 0, "")
		pyCatalogType.Dict["NumResults"] = py.MustNewMethod("NumResults", py_Catalog_NumResults, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
		pyWorkspaceType.Dict["CatalogExists"] = py.MustNewMethod("CatalogExists", py_Workspace_CatalogExists, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("NewAtlas", py_NewAtlas, 0, ""),
			py.MustNewMethod("CanonicalAtlas", py_CanonicalAtlas, 0, ""),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		opNames := make(py.Tuple, 0, goatlas.NumOperations)
		for _, op := range goatlas.AllOperations {
			opNames = append(opNames, py.String(op.Name()))
		}

		globals := py.StringDict{
			"LIB_VERSION":     py.String(libatlas.LIB_VERSION),
			"ATLAS_VERTS":     py.Int(goatlas.AtlasVertexCount),
			"CANONICAL_ATLAS": py.String(libatlas.CanonicalAtlasExpr),
			"OP_NAMES":        opNames,
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_pyatlas",
				Doc:  "Atlas categorical-operation verification gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(pyWorkspace).Close()
				}
			},
		})
	}
}
