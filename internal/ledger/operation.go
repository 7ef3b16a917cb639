package ledger

import "github.com/shopspring/decimal"

// Operation is one requested action on the ledger. The set of
// implementations is closed: Punch, Print, Annotate, Repair, Undo, List
// and QuittingTime.
type Operation interface {
	operation()
}

// Punch records the current clock on today's line, creating it if needed.
type Punch struct{}

// Print returns the lines whose date matches Date.
// An empty Date means today.
type Print struct {
	Date string
}

// Annotate sets the message of today's line, creating it if needed.
type Annotate struct {
	Message string
}

// Repair recomputes the hours of every line.
type Repair struct{}

// Undo removes the most recent punch from the last line.
type Undo struct{}

// List returns the most recent Count lines. Zero means all of them.
type List struct {
	Count int
}

// QuittingTime computes when today reaches Hours worked.
type QuittingTime struct {
	Hours decimal.Decimal
}

func (Punch) operation()        {}
func (Print) operation()        {}
func (Annotate) operation()     {}
func (Repair) operation()       {}
func (Undo) operation()         {}
func (List) operation()         {}
func (QuittingTime) operation() {}

// Request is an operation plus the modifiers that apply to any of them.
type Request struct {
	Op     Operation
	DryRun bool
}

// Flags is the parsed command line. A nil pointer means the flag was
// not given.
type Flags struct {
	Print        *string
	QuittingTime *decimal.Decimal
	Message      *string
	Repair       bool
	Undo         bool
	List         bool
	Count        int
	DryRun       bool
}

// FromFlags picks the single operation to run. When several flags are
// set the first one in this order wins: print, quitting time, message,
// repair, undo, list. With none set the operation is a punch.
func FromFlags(f Flags) Request {
	// list never saves, even when it loses to another operation
	req := Request{DryRun: f.DryRun || f.List}
	switch {
	case f.Print != nil:
		req.Op = Print{Date: *f.Print}
	case f.QuittingTime != nil:
		req.Op = QuittingTime{Hours: *f.QuittingTime}
	case f.Message != nil:
		req.Op = Annotate{Message: *f.Message}
	case f.Repair:
		req.Op = Repair{}
	case f.Undo:
		req.Op = Undo{}
	case f.List:
		req.Op = List{Count: f.Count}
	default:
		req.Op = Punch{}
	}
	return req
}
