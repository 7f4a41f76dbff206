package roster

import (
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
)

var (
	ErrTeamNameRequired = fmt.Errorf("%w: team name is required", models.ErrValidation)
	ErrTeamNameConflict = fmt.Errorf("%w: team name is already registered", models.ErrValidation)
	ErrTeamNameReserved = fmt.Errorf("%w: team name %q is reserved", models.ErrValidation, models.ByeTeam)
	ErrIndexOutOfRange  = fmt.Errorf("%w: team index is out of range", models.ErrValidation)
	ErrInvalidCapacity  = fmt.Errorf("%w: capacity must be at least %d", models.ErrValidation, models.MinCapacity)
)
