package csv

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// BuildAST enumerates buf and returns it as a Shape AST: an
// *ast.ArrayDataNode of records, each an *ast.ArrayDataNode of
// *ast.LiteralNode string fields. The header row, when Options.HasHeader is
// set, is the first record. Positions carry the byte offset, 1-based line and
// 1-based column of each field. With Options.SkipEmptyFields, empty fields
// are left out of their record.
func BuildAST(buf []byte, opts Options) (*ast.ArrayDataNode, error) {
	rows, err := Enumerate(buf, opts)
	if err != nil {
		return nil, err
	}

	var records []ast.SchemaNode
	if h, ok := rows.Header(); ok {
		records = append(records, recordNode(h))
	}
	for rows.Next() {
		records = append(records, recordNode(rows.Row()))
	}
	if records == nil {
		records = []ast.SchemaNode{}
	}
	return ast.NewArrayDataNode(records, ast.NewPosition(0, 1, 1)), rows.Err()
}

func recordNode(r *Row) *ast.ArrayDataNode {
	lineOffset := r.Offset()
	fields := make([]ast.SchemaNode, 0, r.FieldCount())
	for i, sp := range r.spans() {
		f := r.field(sp, i)
		if r.cfg.skipEmpty && f.IsEmpty() {
			continue
		}
		pos := ast.NewPosition(lineOffset+sp.Start, r.Line(), sp.Start+1)
		fields = append(fields, ast.NewLiteralNode(f.materializeInto(r.cfg.pool, &r.scratch), pos))
	}
	return ast.NewArrayDataNode(fields, ast.NewPosition(lineOffset, r.Line(), 1))
}

// ASTRecords converts a tree produced by BuildAST back into records.
// Literal values that are not strings are formatted with %v.
func ASTRecords(node ast.SchemaNode) ([][]string, error) {
	file, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("%w: want *ast.ArrayDataNode, got %T", ErrNodeShape, node)
	}
	records := make([][]string, 0, len(file.Elements()))
	for i, elem := range file.Elements() {
		rec, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("%w: record %d is %T", ErrNodeShape, i, elem)
		}
		fields := make([]string, 0, len(rec.Elements()))
		for j, f := range rec.Elements() {
			lit, ok := f.(*ast.LiteralNode)
			if !ok {
				return nil, fmt.Errorf("%w: record %d field %d is %T", ErrNodeShape, i, j, f)
			}
			if s, ok := lit.Value().(string); ok {
				fields = append(fields, s)
			} else {
				fields = append(fields, fmt.Sprintf("%v", lit.Value()))
			}
		}
		records = append(records, fields)
	}
	return records, nil
}
