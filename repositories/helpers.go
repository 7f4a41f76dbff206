package repositories

import (
	"database/sql"
	"fmt"
)

func checkAffectedRows(result sql.Result, notWrittenErr error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notWrittenErr
	}
	return nil
}
