package brackets

import (
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
)

var (
	ErrTiedScore       = fmt.Errorf("%w: tied scores are not allowed", models.ErrValidation)
	ErrNegativeScore   = fmt.Errorf("%w: scores must be non-negative", models.ErrValidation)
	ErrMatchNotFound   = fmt.Errorf("%w: match not found", models.ErrValidation)
	ErrUnsupportedMode = fmt.Errorf("%w: unsupported tournament mode", models.ErrValidation)

	ErrRosterNotFull       = fmt.Errorf("%w: roster is not full", models.ErrState)
	ErrBracketNotGenerated = fmt.Errorf("%w: bracket has not been generated", models.ErrState)
	ErrMatchNotPlayable    = fmt.Errorf("%w: match has no two opponents to score", models.ErrState)
)
