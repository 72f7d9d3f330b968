package game

// Match log entry types. This vocabulary is the de-facto wire format for
// every external consumer (UI, debugger, analytics); add types, never rename.
const (
	LogMatchStart      = "match_start"
	LogEmotionChange   = "emotion_change"
	LogMistake         = "mistake"
	LogMoveHit         = "move_hit"
	LogMoveMiss        = "move_miss"
	LogReversal        = "reversal"
	LogKnockdown       = "knockdown"
	LogComebackTrigger = "comeback_trigger"
	LogComebackEnd     = "comeback_end"
	LogComboStart      = "combo_start"
	LogComboHit        = "combo_hit"
	LogComboComplete   = "combo_complete"
	LogComboBreak      = "combo_break"
	LogFinisherStart   = "finisher_start"
	LogFinisherCounter = "finisher_counter"
	LogFinisherImpact  = "finisher_impact"
	LogMatchEnd        = "match_end"
)

// MatchLogEntry is one append-only audit record. Data carries type-specific
// structured payload (damage numbers, move ids, combo names).
type MatchLogEntry struct {
	Tick    int                    `json:"tick"`
	Elapsed float64                `json:"elapsed"`
	Type    string                 `json:"type"`
	Detail  string                 `json:"detail"`
	Data    map[string]interface{} `json:"data,omitempty"`
}
