package dhcpc

import (
	"errors"
	"fmt"
)

type ValidateFlags uint64

const (
	validateReserved ValidateFlags = 1 << iota
	// ValidateAllowMultiErrors accumulates every error added instead of
	// keeping only the first one.
	ValidateAllowMultiErrors
)

func (vf ValidateFlags) has(v ValidateFlags) bool {
	return vf&v == v
}

// Validator accumulates configuration errors. The zero value keeps the first
// error added and drops the rest.
type Validator struct {
	accum []error
	flags ValidateFlags
}

func NewValidator(flags ValidateFlags) Validator {
	return Validator{flags: flags}
}

func (v *Validator) Flags() ValidateFlags {
	return v.flags
}

func (v *Validator) ResetErr() {
	v.accum = v.accum[:0]
}

func (v *Validator) HasError() bool {
	if v.flags.has(validateReserved) {
		panic("reserved bit set")
	}
	return len(v.accum) != 0
}

func (v *Validator) Err() error {
	if len(v.accum) == 1 {
		return v.accum[0]
	} else if len(v.accum) == 0 {
		return nil
	}
	return errors.Join(v.accum...)
}

func (v *Validator) AddError(err error) {
	if err == nil {
		panic("error argument to AddError cannot be nil")
	} else if len(v.accum) != 0 && !v.flags.has(ValidateAllowMultiErrors) {
		return
	}
	v.accum = append(v.accum, err)
}

// AddFieldErr adds an error annotated with the name of the offending
// configuration field.
func (v *Validator) AddFieldErr(field string, err error) {
	if err == nil {
		panic("err argument to AddFieldErr cannot be nil")
	}
	v.AddError(&FieldErr{Field: field, Err: err})
}

type FieldErr struct {
	Field string
	Err   error
}

func (fe *FieldErr) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Err.Error())
}

func (fe *FieldErr) Unwrap() error { return fe.Err }
