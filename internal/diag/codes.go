package diag

import (
	"fmt"
)

type Code uint16

const (
	// Unknown fallback code.
	UnknownCode Code = 0

	// Inductive collection
	CollectInfo            Code = 1000
	CollectNotInductive    Code = 1001
	CollectArityMismatch   Code = 1002
	CollectNonSimple       Code = 1003
	CollectGroupPoisoned   Code = 1004
	CollectClassSkipped    Code = 1005
	CollectDuplicate       Code = 1006
	CollectDependentBinder Code = 1007
	CollectLambdaSkipped   Code = 1008
	CollectClassifyFailed  Code = 1009

	// Inhabitation extraction
	InhabInfo            Code = 2000
	InhabProofSkipped    Code = 2001
	InhabConnectiveHead  Code = 2002
	InhabDependentBinder Code = 2003
	InhabDuplicate       Code = 2004
	InhabInferFailed     Code = 2005

	// Atom matching
	MatchInfo             Code = 3000
	MatchPositionFailed   Code = 3001
	MatchUnresolvedParams Code = 3002
	MatchResidualBinder   Code = 3003

	// Pipeline / driver
	PipeInfo        Code = 4000
	PipeParseFailed Code = 4001
	PipeDiagLimit   Code = 4002
)

func (c Code) String() string {
	switch {
	case c >= 1000 && c < 2000:
		return fmt.Sprintf("COL%04d", uint16(c))
	case c >= 2000 && c < 3000:
		return fmt.Sprintf("INH%04d", uint16(c))
	case c >= 3000 && c < 4000:
		return fmt.Sprintf("MAT%04d", uint16(c))
	case c >= 4000 && c < 5000:
		return fmt.Sprintf("RUN%04d", uint16(c))
	default:
		return fmt.Sprintf("GEN%04d", uint16(c))
	}
}
