package ledger

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFromFlags(t *testing.T) {
	date := "2024-01-01"
	message := "notes"
	hours := decimal.NewFromInt(8)

	tests := []struct {
		name       string
		flags      Flags
		expectedOp Operation
		dryRun     bool
	}{
		{"no flags punches", Flags{}, Punch{}, false},
		{"print", Flags{Print: &date}, Print{Date: date}, false},
		{"quitting time", Flags{QuittingTime: &hours}, QuittingTime{Hours: hours}, false},
		{"message", Flags{Message: &message}, Annotate{Message: message}, false},
		{"repair", Flags{Repair: true}, Repair{}, false},
		{"undo", Flags{Undo: true}, Undo{}, false},
		{"list", Flags{List: true, Count: 3}, List{Count: 3}, true},
		{"dry run punch", Flags{DryRun: true}, Punch{}, true},
		{"print beats everything", Flags{Print: &date, QuittingTime: &hours, Message: &message, Repair: true, Undo: true}, Print{Date: date}, false},
		{"quitting time beats message", Flags{QuittingTime: &hours, Message: &message}, QuittingTime{Hours: hours}, false},
		{"message beats repair", Flags{Message: &message, Repair: true}, Annotate{Message: message}, false},
		{"repair beats undo", Flags{Repair: true, Undo: true}, Repair{}, false},
		{"undo beats list", Flags{Undo: true, List: true}, Undo{}, true},
		{"list still blocks saving a message", Flags{Message: &message, List: true}, Annotate{Message: message}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := FromFlags(tt.flags)
			if !reflect.DeepEqual(req.Op, tt.expectedOp) {
				t.Errorf("FromFlags().Op = %#v, expected %#v", req.Op, tt.expectedOp)
			}
			if req.DryRun != tt.dryRun {
				t.Errorf("FromFlags().DryRun = %v, expected %v", req.DryRun, tt.dryRun)
			}
		})
	}
}
