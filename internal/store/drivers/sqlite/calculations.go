package sqlite

import (
	"context"
	"time"

	"github.com/hajorau/saveenergy/internal/domain"
)

type calculationsRepo struct {
	db dbtx
}

func (r *calculationsRepo) CreateCalculation(
	ctx context.Context,
	userID int64,
	inputsJSON, outputsJSON []byte,
) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO calculations (user_id, created_at, inputs_json, outputs_json)
		VALUES (?, ?, ?, ?)`,
		userID,
		time.Now().UTC(),
		string(inputsJSON),
		string(outputsJSON),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *calculationsRepo) ListCalculationsByUser(
	ctx context.Context,
	userID int64,
) ([]domain.Calculation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, created_at, inputs_json, outputs_json
		FROM calculations
		WHERE user_id = ?
		ORDER BY id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Calculation
	for rows.Next() {
		var (
			id, uid               int64
			createdAt             time.Time
			inputsRaw, outputsRaw []byte
		)
		if err := rows.Scan(&id, &uid, &createdAt, &inputsRaw, &outputsRaw); err != nil {
			return nil, err
		}

		c, err := mapCalculation(id, uid, createdAt, inputsRaw, outputsRaw)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *calculationsRepo) GetCalculationForUser(
	ctx context.Context,
	id, userID int64,
) (domain.Calculation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at, inputs_json, outputs_json
		FROM calculations
		WHERE id = ? AND user_id = ?`,
		id, userID,
	)

	var (
		cid, uid              int64
		createdAt             time.Time
		inputsRaw, outputsRaw []byte
	)
	if err := row.Scan(&cid, &uid, &createdAt, &inputsRaw, &outputsRaw); err != nil {
		return domain.Calculation{}, mapNotFound(err)
	}
	return mapCalculation(cid, uid, createdAt, inputsRaw, outputsRaw)
}

func (r *calculationsRepo) DeleteAllCalculations(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM calculations`)
	return err
}
