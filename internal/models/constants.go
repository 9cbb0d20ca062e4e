package models

// BoardKind selects the default column set. The engine logic is identical for
// both kinds.
type BoardKind string

const (
	KindRetro    BoardKind = "retro"
	KindPlanning BoardKind = "planning"
)

// VotingMode is the active vote-aggregation rule.
type VotingMode string

const (
	VotingSimpleApproval   VotingMode = "SIMPLE_APPROVAL"
	VotingTernary          VotingMode = "TERNARY"
	VotingBudgetedPoints   VotingMode = "BUDGETED_POINTS"
	VotingMajorityJudgment VotingMode = "MAJORITY_JUDGMENT"
)

// VotingPhase gates vote visibility. Transitions are moderator-only and
// explicit; there is no forced ordering between phases.
type VotingPhase string

const (
	PhaseIdle     VotingPhase = "IDLE"
	PhaseOpen     VotingPhase = "OPEN"
	PhaseRevealed VotingPhase = "REVEALED"
)

// DefaultMaxPointsPerUser is the BUDGETED_POINTS budget when the board does
// not override it.
const DefaultMaxPointsPerUser = 10

// Majority-judgment grades: six fixed ordered labels, ordinal -1..4.
const (
	GradeReject       = -1
	GradeInsufficient = 0
	GradePassable     = 1
	GradeFair         = 2
	GradeGood         = 3
	GradeExcellent    = 4
)

// MajorityGradeLabels maps each majority-judgment ordinal to its display label.
var MajorityGradeLabels = map[int]string{
	GradeReject:       "reject",
	GradeInsufficient: "insufficient",
	GradePassable:     "passable",
	GradeFair:         "fair",
	GradeGood:         "good",
	GradeExcellent:    "excellent",
}

// Column identity sets, fixed per board kind.
const (
	ColumnStart    = "start"
	ColumnStop     = "stop"
	ColumnContinue = "continue"

	ColumnIdeas    = "ideas"
	ColumnSelected = "selected"
	ColumnDone     = "done"
)

// Default column colors (hex).
const (
	ColorStart    = "#9ECE6A"
	ColorStop     = "#F7768E"
	ColorContinue = "#7AA2F7"

	ColorIdeas    = "#E0AF68"
	ColorSelected = "#7AA2F7"
	ColorDone     = "#9ECE6A"
)
