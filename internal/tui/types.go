package tui

type stage int

const (
	stageIdle stage = iota
	stageExporting
	stageReview
	stageEdit
	stageDone
)

func (s stage) String() string {
	switch s {
	case stageExporting:
		return "EXPORTING"
	case stageReview:
		return "REVIEW"
	case stageEdit:
		return "EDIT"
	case stageDone:
		return "DONE"
	default:
		return "IDLE"
	}
}

const heroTagline = "Rewrite your document to B1 level, one sentence at a time."

const doneMessage = "The document is at B1 level! Please proofread it yourself before sending."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	editorPlaceholder         = "Rewrite the suggestion…"
)
