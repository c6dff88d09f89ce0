package seed

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/itemstore/internal/record"
)

// schemaCUE constrains seed documents. Definitions are closed, so unknown
// fields in a record are errors.
const schemaCUE = `
#Record: {
	id?:      string
	name:     string & =~"\\S"
	category: string & =~"\\S"
}

records: [...#Record]
`

// LoadCUE reads a CUE seed file and validates it against the record schema.
func LoadCUE(path string) ([]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Code: ErrCodeRead, Path: path, Message: "failed to read seed file", Err: err}
	}
	return ParseCUE(path, data)
}

// ParseCUE compiles CUE seed data, unifies it with the schema and extracts
// the records. name is used as the CUE filename in positions.
func ParseCUE(name string, data []byte) ([]record.Record, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("seed-schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, &Error{Code: ErrCodeSchema, Path: name, Message: fmt.Sprintf("compiling schema: %v", err), Err: err}
	}

	doc := ctx.CompileBytes(data, cue.Filename(name))
	if err := doc.Err(); err != nil {
		return nil, cueError(ErrCodeParse, name, err)
	}

	value := schema.Unify(doc)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(ErrCodeSchema, name, err)
	}

	recordsVal := value.LookupPath(cue.ParsePath("records"))
	if !recordsVal.Exists() {
		return []record.Record{}, nil
	}

	iter, err := recordsVal.List()
	if err != nil {
		return nil, cueError(ErrCodeSchema, name, err)
	}

	out := []record.Record{}
	for iter.Next() {
		v := iter.Value()
		rec := record.Record{}

		if rec.Name, err = v.LookupPath(cue.ParsePath("name")).String(); err != nil {
			return nil, cueError(ErrCodeSchema, name, err)
		}
		if rec.Category, err = v.LookupPath(cue.ParsePath("category")).String(); err != nil {
			return nil, cueError(ErrCodeSchema, name, err)
		}
		if idVal := v.LookupPath(cue.ParsePath("id")); idVal.Exists() {
			if rec.ID, err = idVal.String(); err != nil {
				return nil, cueError(ErrCodeSchema, name, err)
			}
		}
		out = append(out, rec)
	}

	return out, nil
}

// cueError converts a CUE error into an *Error, keeping the first position.
func cueError(code, path string, err error) *Error {
	msg := err.Error()
	var pos token.Pos
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		msg = errs[0].Error()
		if positions := cueerrors.Positions(errs[0]); len(positions) > 0 {
			pos = positions[0]
		}
	}
	if pos.IsValid() {
		msg = fmt.Sprintf("%d:%d: %s", pos.Line(), pos.Column(), msg)
	}
	return &Error{Code: code, Path: path, Message: msg, Err: err}
}
